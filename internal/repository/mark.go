package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/campusdesk/student-api/internal/dto"
	apperrors "github.com/campusdesk/student-api/internal/errors"
	"github.com/campusdesk/student-api/internal/model"
)

// MarkRepository manages subject marks per student.
type MarkRepository struct {
	db *gorm.DB
}

func NewMarkRepository(db *gorm.DB) *MarkRepository {
	return &MarkRepository{db: db}
}

func (r *MarkRepository) ListByStudent(ctx context.Context, studentID uint) ([]model.Mark, error) {
	var marks []model.Mark
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&marks).Error
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return marks, nil
}

// ListAll returns every mark row, newest first. Used by the admin
// inspection endpoint.
func (r *MarkRepository) ListAll(ctx context.Context) ([]model.Mark, error) {
	var marks []model.Mark
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&marks).Error
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return marks, nil
}

func (r *MarkRepository) GetByID(ctx context.Context, id uint) (*model.Mark, error) {
	var mark model.Mark
	err := r.db.WithContext(ctx).First(&mark, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMarkNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return &mark, nil
}

func (r *MarkRepository) Create(ctx context.Context, mark *model.Mark) error {
	if err := r.db.WithContext(ctx).Create(mark).Error; err != nil {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}

func (r *MarkRepository) Update(ctx context.Context, mark *model.Mark) error {
	if err := r.db.WithContext(ctx).Save(mark).Error; err != nil {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}

func (r *MarkRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Mark{}, id)
	if result.Error != nil {
		return apperrors.WrapError(apperrors.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrMarkNotFound
	}
	return nil
}

func (r *MarkRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Mark{}).Count(&count).Error; err != nil {
		return 0, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return count, nil
}

// Summary joins students with their mark aggregates, best average
// first. Students without marks appear with zero counts.
func (r *MarkRepository) Summary(ctx context.Context) ([]dto.MarksSummaryRow, error) {
	var rows []dto.MarksSummaryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.id AS student_id,
		       s.name,
		       s.register_number,
		       s.department,
		       COUNT(m.id) AS subject_count,
		       COALESCE(SUM(m.marks), 0) AS total,
		       COALESCE(SUM(m.max_marks), 0) AS max_total,
		       COALESCE(ROUND(AVG(m.marks)::numeric, 2), 0) AS average
		FROM students s
		LEFT JOIN marks m ON m.student_id = s.id
		GROUP BY s.id, s.name, s.register_number, s.department
		ORDER BY average DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return rows, nil
}
