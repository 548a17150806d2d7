package service

import (
	"context"
	"sync"
	"time"

	"github.com/campusdesk/student-api/internal/dto"
	apperrors "github.com/campusdesk/student-api/internal/errors"
	"github.com/campusdesk/student-api/internal/model"
	"github.com/campusdesk/student-api/pkg/sessionstore"
)

type fakeAdminStore struct {
	admins map[uint]*model.Admin
}

func newFakeAdminStore(admins ...*model.Admin) *fakeAdminStore {
	s := &fakeAdminStore{admins: make(map[uint]*model.Admin)}
	for _, a := range admins {
		s.admins[a.ID] = a
	}
	return s
}

func (s *fakeAdminStore) GetByUsernameOrEmail(_ context.Context, identifier string) (*model.Admin, error) {
	for _, a := range s.admins {
		if a.Username == identifier || a.Email == identifier {
			copied := *a
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeAdminStore) GetByID(_ context.Context, id uint) (*model.Admin, error) {
	a, ok := s.admins[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *fakeAdminStore) UpdatePassword(_ context.Context, id uint, hash string) error {
	a, ok := s.admins[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	a.Password = hash
	return nil
}

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func newFakeUserStore(users ...*model.User) *fakeUserStore {
	s := &fakeUserStore{nextID: 1, users: make(map[uint]*model.User)}
	for _, u := range users {
		if u.ID == 0 {
			u.ID = s.nextID
		}
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.Email != nil {
		for _, u := range s.users {
			if u.Email != nil && *u.Email == *user.Email {
				return apperrors.ErrEmailTaken
			}
		}
	}
	user.ID = s.nextID
	s.nextID++
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email != nil && *u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Phone == phone {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) UpdateLastLogin(_ context.Context, id uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.LastLogin = at
	}
	return nil
}

func (s *fakeUserStore) MarkPhoneVerified(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.PhoneVerified = true
	}
	return nil
}

func (s *fakeUserStore) MarkEmailVerified(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email != nil && *u.Email == email {
			u.EmailVerified = true
		}
	}
	return nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id uint, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

type fakeOTPStore struct {
	mu      sync.Mutex
	nextID  uint
	records map[string]*model.OTPVerification
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{nextID: 1, records: make(map[string]*model.OTPVerification)}
}

func (s *fakeOTPStore) Replace(_ context.Context, record *model.OTPVerification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.nextID
	s.nextID++
	copied := *record
	s.records[record.Phone] = &copied
	return nil
}

func (s *fakeOTPStore) GetByPhoneAndCode(_ context.Context, phone, code string) (*model.OTPVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[phone]
	if !ok || r.OTP != code {
		return nil, apperrors.ErrInvalidChallenge
	}
	copied := *r
	return &copied, nil
}

func (s *fakeOTPStore) GetVerified(_ context.Context, phone, code string) (*model.OTPVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[phone]
	if !ok || r.OTP != code || !r.Verified {
		return nil, apperrors.ErrInvalidChallenge
	}
	copied := *r
	return &copied, nil
}

func (s *fakeOTPStore) MarkVerified(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			r.Verified = true
		}
	}
	return nil
}

func (s *fakeOTPStore) DeleteByPhone(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, phone)
	return nil
}

func (s *fakeOTPStore) expire(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[phone]; ok {
		r.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

type fakeEmailTokenStore struct {
	mu      sync.Mutex
	nextID  uint
	records map[string]*model.EmailVerification
}

func newFakeEmailTokenStore() *fakeEmailTokenStore {
	return &fakeEmailTokenStore{nextID: 1, records: make(map[string]*model.EmailVerification)}
}

func (s *fakeEmailTokenStore) Replace(_ context.Context, record *model.EmailVerification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.nextID
	s.nextID++
	copied := *record
	s.records[record.Email] = &copied
	return nil
}

func (s *fakeEmailTokenStore) GetByEmailAndToken(_ context.Context, email, token string) (*model.EmailVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[email]
	if !ok || r.Token != token {
		return nil, apperrors.ErrInvalidChallenge
	}
	copied := *r
	return &copied, nil
}

func (s *fakeEmailTokenStore) MarkVerified(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			r.Verified = true
		}
	}
	return nil
}

type fakeSessionRows struct {
	mu      sync.Mutex
	created []model.Session
	deleted []string
}

func (s *fakeSessionRows) Create(_ context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, *session)
	return nil
}

func (s *fakeSessionRows) DeleteByToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, token)
	return nil
}

type recordedActivity struct {
	Action      string
	Description string
	Metadata    map[string]any
}

type fakeActivity struct {
	mu      sync.Mutex
	entries []recordedActivity
}

func (a *fakeActivity) Record(_ context.Context, action, description string, metadata map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, recordedActivity{Action: action, Description: description, Metadata: metadata})
}

func (a *fakeActivity) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeNotifier struct {
	otps   []string
	emails []string
}

func (n *fakeNotifier) SendOTP(phone, code string, _ int) {
	n.otps = append(n.otps, phone+":"+code)
}

func (n *fakeNotifier) SendVerificationEmail(email, _, _ string, _ int) {
	n.emails = append(n.emails, email)
}

type fakeStudentStore struct {
	mu       sync.Mutex
	nextID   uint
	students map[uint]*model.Student
}

func newFakeStudentStore(students ...*model.Student) *fakeStudentStore {
	s := &fakeStudentStore{nextID: 1, students: make(map[uint]*model.Student)}
	for _, st := range students {
		if st.ID == 0 {
			st.ID = s.nextID
		}
		if st.ID >= s.nextID {
			s.nextID = st.ID + 1
		}
		s.students[st.ID] = st
	}
	return s
}

func (s *fakeStudentStore) List(_ context.Context, filter dto.StudentListFilter) ([]model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Student
	for _, st := range s.students {
		if filter.Department != "" && st.Department != filter.Department {
			continue
		}
		if filter.Year > 0 && st.Year != filter.Year {
			continue
		}
		out = append(out, *st)
	}
	return out, nil
}

func (s *fakeStudentStore) GetByID(_ context.Context, id uint) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *st
	return &copied, nil
}

func (s *fakeStudentStore) Create(_ context.Context, student *model.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.students {
		if st.RegisterNumber == student.RegisterNumber || st.Email == student.Email {
			return apperrors.ErrDuplicateKey
		}
	}
	student.ID = s.nextID
	s.nextID++
	copied := *student
	s.students[student.ID] = &copied
	return nil
}

func (s *fakeStudentStore) Update(_ context.Context, student *model.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	s.students[student.ID] = &copied
	return nil
}

func (s *fakeStudentStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(s.students, id)
	return nil
}

type fakeMarkStore struct {
	mu     sync.Mutex
	nextID uint
	marks  map[uint]*model.Mark
}

func newFakeMarkStore() *fakeMarkStore {
	return &fakeMarkStore{nextID: 1, marks: make(map[uint]*model.Mark)}
}

func (s *fakeMarkStore) ListByStudent(_ context.Context, studentID uint) ([]model.Mark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Mark
	for _, m := range s.marks {
		if m.StudentID == studentID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *fakeMarkStore) GetByID(_ context.Context, id uint) (*model.Mark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.marks[id]
	if !ok {
		return nil, apperrors.ErrMarkNotFound
	}
	copied := *m
	return &copied, nil
}

func (s *fakeMarkStore) Create(_ context.Context, mark *model.Mark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mark.ID = s.nextID
	s.nextID++
	copied := *mark
	s.marks[mark.ID] = &copied
	return nil
}

func (s *fakeMarkStore) Update(_ context.Context, mark *model.Mark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.marks[mark.ID]; !ok {
		return apperrors.ErrMarkNotFound
	}
	copied := *mark
	s.marks[mark.ID] = &copied
	return nil
}

func (s *fakeMarkStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.marks[id]; !ok {
		return apperrors.ErrMarkNotFound
	}
	delete(s.marks, id)
	return nil
}

func (s *fakeMarkStore) Summary(_ context.Context) ([]dto.MarksSummaryRow, error) {
	return nil, nil
}

func (s *fakeMarkStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.marks)), nil
}

type fakeAttendanceStore struct {
	mu      sync.Mutex
	nextID  uint
	records map[uint]*model.Attendance
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{nextID: 1, records: make(map[uint]*model.Attendance)}
}

func (s *fakeAttendanceStore) GetByStudentAndDate(_ context.Context, studentID uint, date string) (*model.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.StudentID == studentID && r.Date == date {
			copied := *r
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeAttendanceStore) Create(_ context.Context, record *model.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.nextID
	s.nextID++
	copied := *record
	s.records[record.ID] = &copied
	return nil
}

func (s *fakeAttendanceStore) UpdateStatus(_ context.Context, id uint, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	r.Status = status
	return nil
}

func (s *fakeAttendanceStore) ListByStudent(_ context.Context, studentID uint, filter dto.AttendanceListFilter) ([]model.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Attendance
	for _, r := range s.records {
		if r.StudentID != studentID {
			continue
		}
		if filter.From != "" && r.Date < filter.From {
			continue
		}
		if filter.To != "" && r.Date > filter.To {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *fakeAttendanceStore) Summary(_ context.Context) ([]dto.AttendanceSummaryRow, error) {
	return nil, nil
}

func (s *fakeAttendanceStore) CountByDateAndStatus(_ context.Context, date, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.records {
		if r.Date == date && r.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *fakeAttendanceStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.records)), nil
}

func (s *fakeAttendanceStore) AveragePresentPercentage(_ context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		return 0, nil
	}
	var present int
	for _, r := range s.records {
		if r.Status == "Present" {
			present++
		}
	}
	return round2(float64(present) * 100 / float64(len(s.records))), nil
}

func newTestSessionService() (*SessionService, *fakeSessionRows, sessionstore.Store) {
	rows := &fakeSessionRows{}
	store := sessionstore.NewMemoryStore()
	return NewSessionService(store, rows, time.Hour), rows, store
}
