package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/campusdesk/student-api/internal/dto"
	apperrors "github.com/campusdesk/student-api/internal/errors"
	"github.com/campusdesk/student-api/internal/model"
)

// AttendanceRepository manages daily attendance rows. Dates are stored
// as ISO yyyy-mm-dd strings, so lexical comparison is chronological.
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) GetByStudentAndDate(ctx context.Context, studentID uint, date string) (*model.Attendance, error) {
	var record model.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND date = ?", studentID, date).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return &record, nil
}

func (r *AttendanceRepository) Create(ctx context.Context, record *model.Attendance) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}

func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}

func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID uint, filter dto.AttendanceListFilter) ([]model.Attendance, error) {
	query := r.db.WithContext(ctx).Where("student_id = ?", studentID)
	if filter.From != "" {
		query = query.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("date <= ?", filter.To)
	}

	var records []model.Attendance
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return records, nil
}

// ListAll returns every attendance row, newest date first. Used by the
// admin inspection endpoint.
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return records, nil
}

func (r *AttendanceRepository) CountByDateAndStatus(ctx context.Context, date, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("date = ? AND status = ?", date, status).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return count, nil
}

func (r *AttendanceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Attendance{}).Count(&count).Error; err != nil {
		return 0, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return count, nil
}

// AveragePresentPercentage is the share of Present rows across the
// whole attendance table, rounded to two decimals and zero when the
// table is empty.
func (r *AttendanceRepository) AveragePresentPercentage(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(ROUND(
		    AVG(CASE WHEN status = 'Present' THEN 1 ELSE 0 END)::numeric * 100, 2), 0)
		FROM attendance`).
		Scan(&avg).Error
	if err != nil {
		return 0, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return avg, nil
}

// Summary joins students with their attendance aggregates, best
// percentage first. Students without attendance rows appear with zero
// totals.
func (r *AttendanceRepository) Summary(ctx context.Context) ([]dto.AttendanceSummaryRow, error) {
	var rows []dto.AttendanceSummaryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.id AS student_id,
		       s.name,
		       s.register_number,
		       s.department,
		       COUNT(a.id) AS total_days,
		       COUNT(a.id) FILTER (WHERE a.status = 'Present') AS present_days,
		       COUNT(a.id) FILTER (WHERE a.status = 'Absent') AS absent_days,
		       COUNT(a.id) FILTER (WHERE a.status = 'Leave') AS leave_days,
		       COALESCE(ROUND(
		           COUNT(a.id) FILTER (WHERE a.status = 'Present')::numeric * 100
		           / NULLIF(COUNT(a.id), 0), 2), 0) AS percentage
		FROM students s
		LEFT JOIN attendance a ON a.student_id = s.id
		GROUP BY s.id, s.name, s.register_number, s.department
		ORDER BY percentage DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return rows, nil
}
