package repo

import (
	"context"

	"github.com/fieldops/wa-attendance-bot/internal/biz/domain"
)

// AttendanceRepo is the attendance-record repository interface
type AttendanceRepo interface {
	// TodaysAttendance returns today's attendance rows for the given
	// supervisor names
	TodaysAttendance(ctx context.Context, supervisors []string) ([]domain.AttendanceRow, error)

	Close() error
}
