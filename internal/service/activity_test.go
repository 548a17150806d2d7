package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campusdesk/student-api/internal/model"
)

type fakeActivityEntries struct {
	entries []model.ActivityLog
	err     error
}

func (s *fakeActivityEntries) Create(_ context.Context, entry *model.ActivityLog) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *fakeActivityEntries) Recent(_ context.Context, limit int) ([]model.ActivityLog, error) {
	if len(s.entries) > limit {
		return s.entries[:limit], nil
	}
	return s.entries, nil
}

func TestActivityRecordWithMetadata(t *testing.T) {
	store := &fakeActivityEntries{}
	svc := NewActivityService(store)

	svc.Record(context.Background(), "LOGIN", "Admin logged in", map[string]any{"role": "admin"})

	if len(store.entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(store.entries))
	}
	if len(store.entries[0].Metadata) == 0 {
		t.Fatal("expected serialized metadata")
	}
}

func TestActivityRecordSwallowsStorageError(t *testing.T) {
	svc := NewActivityService(&fakeActivityEntries{err: errors.New("down")})

	// Must not panic or surface the failure.
	svc.Record(context.Background(), "LOGIN", "Admin logged in", nil)
}
