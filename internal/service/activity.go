package service

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/campusdesk/student-api/internal/model"
	"github.com/campusdesk/student-api/pkg/logger"
)

type activityStore interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
	Recent(ctx context.Context, limit int) ([]model.ActivityLog, error)
}

// ActivityService writes the audit trail. Record is best-effort: a
// failed write is logged and swallowed so the operation it describes
// still succeeds.
type ActivityService struct {
	store activityStore
}

func NewActivityService(store activityStore) *ActivityService {
	return &ActivityService{store: store}
}

func (s *ActivityService) Record(ctx context.Context, action, description string, metadata map[string]any) {
	entry := &model.ActivityLog{
		Action:      action,
		Description: description,
	}
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}
	if err := s.store.Create(ctx, entry); err != nil {
		logger.WarnWithContext(ctx, "Failed to record activity").
			String("action", action).
			Err(err).
			Log()
	}
}

func (s *ActivityService) Recent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	return s.store.Recent(ctx, limit)
}
