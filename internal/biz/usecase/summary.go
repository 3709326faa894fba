package usecase

import (
	"context"
	"fmt"

	"github.com/fieldops/wa-attendance-bot/internal/biz/domain"
	"github.com/fieldops/wa-attendance-bot/internal/biz/repo"
	"github.com/fieldops/wa-attendance-bot/internal/conf"
)

// SummaryUsecase aggregates raw attendance rows into per-supervisor
// stats and a rollup
type SummaryUsecase struct {
	attendanceRepo repo.AttendanceRepo
	messages       *conf.Messages
}

// NewSummaryUsecase creates a new summary usecase
func NewSummaryUsecase(attendanceRepo repo.AttendanceRepo, messages *conf.Messages) *SummaryUsecase {
	return &SummaryUsecase{
		attendanceRepo: attendanceRepo,
		messages:       messages,
	}
}

// Summarize fetches today's attendance for the given supervisors in one
// query and aggregates it. Every requested supervisor gets a stats entry
// even with zero rows, so breakdowns and the rollup always come from the
// same snapshot. A store failure degrades to an empty snapshot rather
// than failing the flow.
func (uc *SummaryUsecase) Summarize(ctx context.Context, supervisors []string) *domain.AttendanceSummary {
	summary := &domain.AttendanceSummary{
		PerSupervisor: make(map[string]*domain.TeamStats, len(supervisors)),
	}
	if len(supervisors) == 0 {
		summary.Text = uc.messages.Reports.NoSupervisors
		return summary
	}

	for _, name := range supervisors {
		summary.PerSupervisor[name] = &domain.TeamStats{}
	}

	rows, err := uc.attendanceRepo.TodaysAttendance(ctx, supervisors)
	if err != nil {
		fmt.Printf("[Summary] Attendance query failed: %v\n", err)
		summary.Text = uc.messages.Errors.AttendanceError
		return summary
	}
	if len(rows) == 0 {
		summary.Text = uc.messages.Reports.NoAttendanceToday
		return summary
	}

	for _, row := range rows {
		stats, ok := summary.PerSupervisor[row.Supervisor]
		if !ok {
			// Row outside the requested set, dropped
			continue
		}
		stats.Record(row)
	}

	for _, name := range supervisors {
		summary.Total.Add(summary.PerSupervisor[name])
	}

	summary.Text = uc.messages.FormatSummary(summary.Total.Present, summary.Total.Absent, summary.Total.Rate())
	return summary
}
