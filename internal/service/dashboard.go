package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/campusdesk/student-api/internal/constants"
	"github.com/campusdesk/student-api/internal/dto"
	"github.com/campusdesk/student-api/internal/model"
)

type studentStatsStore interface {
	Count(ctx context.Context) (int64, error)
	CountDepartments(ctx context.Context) (int64, error)
	DepartmentCounts(ctx context.Context) ([]dto.DepartmentCount, error)
	YearCounts(ctx context.Context) ([]dto.YearCount, error)
}

type userCounter interface {
	Count(ctx context.Context) (int64, error)
}

type markCounter interface {
	Count(ctx context.Context) (int64, error)
}

type attendanceCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByDateAndStatus(ctx context.Context, date, status string) (int64, error)
	AveragePresentPercentage(ctx context.Context) (float64, error)
}

type activityReader interface {
	Recent(ctx context.Context, limit int) ([]model.ActivityLog, error)
}

// DashboardService assembles the stats snapshot. The independent
// queries run concurrently and the first error wins.
type DashboardService struct {
	students   studentStatsStore
	users      userCounter
	marks      markCounter
	attendance attendanceCounter
	activity   activityReader
}

func NewDashboardService(
	students studentStatsStore,
	users userCounter,
	marks markCounter,
	attendance attendanceCounter,
	activity activityReader,
) *DashboardService {
	return &DashboardService{
		students:   students,
		users:      users,
		marks:      marks,
		attendance: attendance,
		activity:   activity,
	}
}

func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}
	today := time.Now().UTC().Format(constants.DateLayout)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				fail(err)
			}
		}()
	}

	run(func() error {
		n, err := s.students.Count(ctx)
		stats.TotalStudents = n
		return err
	})
	run(func() error {
		n, err := s.users.Count(ctx)
		stats.TotalUsers = n
		return err
	})
	run(func() error {
		n, err := s.students.CountDepartments(ctx)
		stats.TotalDepartments = n
		return err
	})
	run(func() error {
		n, err := s.marks.Count(ctx)
		stats.TotalMarks = n
		return err
	})
	run(func() error {
		n, err := s.attendance.Count(ctx)
		stats.TotalAttendance = n
		return err
	})
	var presentToday int64
	run(func() error {
		n, err := s.attendance.CountByDateAndStatus(ctx, today, constants.AttendancePresent)
		presentToday = n
		return err
	})
	run(func() error {
		avg, err := s.attendance.AveragePresentPercentage(ctx)
		stats.AverageAttendance = avg
		return err
	})
	run(func() error {
		rows, err := s.students.DepartmentCounts(ctx)
		stats.Departments = rows
		return err
	})
	run(func() error {
		rows, err := s.students.YearCounts(ctx)
		stats.Years = rows
		return err
	})
	run(func() error {
		entries, err := s.activity.Recent(ctx, constants.RecentActivityLimit)
		stats.RecentActivities = entries
		return err
	})

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	stats.TodayAttendance = fmt.Sprintf("%d/%d", presentToday, stats.TotalStudents)
	if stats.Departments == nil {
		stats.Departments = []dto.DepartmentCount{}
	}
	if stats.Years == nil {
		stats.Years = []dto.YearCount{}
	}
	if stats.RecentActivities == nil {
		stats.RecentActivities = []model.ActivityLog{}
	}
	return stats, nil
}

// DepartmentChart returns the per-department student counts on their
// own, for the chart endpoint.
func (s *DashboardService) DepartmentChart(ctx context.Context) ([]dto.DepartmentCount, error) {
	rows, err := s.students.DepartmentCounts(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.DepartmentCount{}
	}
	return rows, nil
}

// YearChart returns the per-year student counts.
func (s *DashboardService) YearChart(ctx context.Context) ([]dto.YearCount, error) {
	rows, err := s.students.YearCounts(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.YearCount{}
	}
	return rows, nil
}

// RecentActivities returns the newest audit entries.
func (s *DashboardService) RecentActivities(ctx context.Context) ([]model.ActivityLog, error) {
	entries, err := s.activity.Recent(ctx, constants.RecentActivityLimit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.ActivityLog{}
	}
	return entries, nil
}
