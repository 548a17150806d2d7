package service

import (
	"context"
	"fmt"

	"github.com/campusdesk/student-api/internal/constants"
	"github.com/campusdesk/student-api/internal/dto"
	"github.com/campusdesk/student-api/internal/model"
	"github.com/campusdesk/student-api/pkg/logger"
)

type studentStore interface {
	List(ctx context.Context, filter dto.StudentListFilter) ([]model.Student, error)
	GetByID(ctx context.Context, id uint) (*model.Student, error)
	Create(ctx context.Context, student *model.Student) error
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id uint) error
}

// StudentService manages student records. Register number and email
// uniqueness is delegated to the storage layer.
type StudentService struct {
	students studentStore
	activity activityRecorder
}

func NewStudentService(students studentStore, activity activityRecorder) *StudentService {
	return &StudentService{students: students, activity: activity}
}

func (s *StudentService) List(ctx context.Context, filter dto.StudentListFilter) ([]model.Student, error) {
	return s.students.List(ctx, filter)
}

func (s *StudentService) Get(ctx context.Context, id uint) (*model.Student, error) {
	return s.students.GetByID(ctx, id)
}

func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		Name:           req.Name,
		RegisterNumber: req.RegisterNumber,
		Email:          req.Email,
		Phone:          req.Phone,
		Department:     req.Department,
		Year:           req.Year,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "Student created").
		Uint("student_id", student.ID).
		String("register_number", student.RegisterNumber).
		Log()
	s.activity.Record(ctx, constants.ActionAddStudent,
		fmt.Sprintf("Added student: %s (%s)", student.Name, student.RegisterNumber),
		map[string]any{"student_id": student.ID})
	return student, nil
}

// Update applies only the fields present in the request.
func (s *StudentService) Update(ctx context.Context, id uint, req dto.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.RegisterNumber != nil {
		student.RegisterNumber = *req.RegisterNumber
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Department != nil {
		student.Department = *req.Department
	}
	if req.Year != nil {
		student.Year = *req.Year
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, constants.ActionUpdateStudent,
		fmt.Sprintf("Updated student: %s (%s)", student.Name, student.RegisterNumber),
		map[string]any{"student_id": student.ID})
	return student, nil
}

// Delete removes the student together with dependent marks and
// attendance.
func (s *StudentService) Delete(ctx context.Context, id uint) error {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}

	logger.InfoWithContext(ctx, "Student deleted").
		Uint("student_id", id).
		String("register_number", student.RegisterNumber).
		Log()
	s.activity.Record(ctx, constants.ActionDeleteStudent,
		fmt.Sprintf("Deleted student: %s (%s)", student.Name, student.RegisterNumber),
		map[string]any{"student_id": id})
	return nil
}
