package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/campusdesk/student-api/internal/dto"
	apperrors "github.com/campusdesk/student-api/internal/errors"
	"github.com/campusdesk/student-api/internal/model"
)

// StudentRepository manages student records and their cascading
// dependents.
type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) List(ctx context.Context, filter dto.StudentListFilter) ([]model.Student, error) {
	query := r.db.WithContext(ctx).Model(&model.Student{})
	// Search matches name and register number only.
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"name ILIKE ? OR register_number ILIKE ?",
			pattern, pattern,
		)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Year > 0 {
		query = query.Where("year = ?", filter.Year)
	}

	var students []model.Student
	if err := query.Order("created_at DESC").Find(&students).Error; err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return students, nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).First(&student, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return &student, nil
}

func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	err := r.db.WithContext(ctx).Create(student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateKey
		}
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}

func (r *StudentRepository) Update(ctx context.Context, student *model.Student) error {
	err := r.db.WithContext(ctx).Save(student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateKey
		}
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}

// Delete removes the student together with all marks and attendance
// rows in one transaction.
func (r *StudentRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&model.Mark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&model.Attendance{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Student{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrStudentNotFound
		}
		return nil
	})
	if err != nil {
		if apperrors.IsDomainError(err) {
			return err
		}
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}

func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).Count(&count).Error
	if err != nil {
		return 0, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return count, nil
}

func (r *StudentRepository) CountDepartments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).
		Distinct("department").
		Count(&count).Error
	if err != nil {
		return 0, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return count, nil
}

func (r *StudentRepository) DepartmentCounts(ctx context.Context) ([]dto.DepartmentCount, error) {
	var rows []dto.DepartmentCount
	err := r.db.WithContext(ctx).Model(&model.Student{}).
		Select("department, COUNT(*) AS count").
		Group("department").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return rows, nil
}

func (r *StudentRepository) YearCounts(ctx context.Context) ([]dto.YearCount, error) {
	var rows []dto.YearCount
	err := r.db.WithContext(ctx).Model(&model.Student{}).
		Select("year, COUNT(*) AS count").
		Group("year").
		Order("year ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return rows, nil
}
