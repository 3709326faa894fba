package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldops/wa-attendance-bot/internal/biz/domain"
	"github.com/fieldops/wa-attendance-bot/internal/biz/repo"
	"github.com/fieldops/wa-attendance-bot/internal/conf"
)

// ReportUsecase navigates the role hierarchy: it decides, from the
// sender's role and an optional decoded selection, which aggregation to
// run and which menu to present next
type ReportUsecase struct {
	directoryRepo repo.DirectoryRepo
	summaryUC     *SummaryUsecase
	composerUC    *ComposerUsecase
	messages      *conf.Messages
}

// NewReportUsecase creates a new report usecase
func NewReportUsecase(
	directoryRepo repo.DirectoryRepo,
	summaryUC *SummaryUsecase,
	composerUC *ComposerUsecase,
	messages *conf.Messages,
) *ReportUsecase {
	return &ReportUsecase{
		directoryRepo: directoryRepo,
		summaryUC:     summaryUC,
		composerUC:    composerUC,
		messages:      messages,
	}
}

// Run executes the flow for user, replying to the phone number `to`.
// Drill-down selections re-enter the flow for the target user's actual
// role with no selection attached, so the target's full default output
// is produced.
func (uc *ReportUsecase) Run(ctx context.Context, to string, user *domain.User, sel domain.Selection) error {
	switch sel.Action {
	case domain.ActionViewTeam, domain.ActionViewSup:
		target, err := uc.directoryRepo.UserByID(ctx, sel.TargetID)
		if err != nil {
			return fmt.Errorf("drill-down lookup: %w", err)
		}
		if target == nil {
			return uc.composerUC.SendText(ctx, to, uc.messages.Errors.InvalidSelection)
		}
		return uc.Run(ctx, to, target, domain.Selection{})

	case domain.ActionViewPresent, domain.ActionViewAbsent:
		return uc.roster(ctx, to, sel)
	}

	switch user.Role {
	case domain.RoleExecutive:
		if sel.Action == domain.ActionViewReport {
			return uc.executiveReport(ctx, to)
		}
		return uc.executiveMenu(ctx, to, user)
	case domain.RolePM:
		return uc.pmReport(ctx, to, user)
	case domain.RoleSupervisor:
		return uc.supervisorReport(ctx, to, user)
	default:
		// RoleUnknown and any role value outside the hierarchy
		return uc.composerUC.SendText(ctx, to, uc.messages.FormatNoFlow(string(user.Role)))
	}
}

// executiveMenu presents the executive root menu
func (uc *ReportUsecase) executiveMenu(ctx context.Context, to string, user *domain.User) error {
	rows := []repo.Row{{
		ID:    domain.Selection{Action: domain.ActionViewReport}.Encode(),
		Title: uc.messages.Menus.ExecReportOption,
	}}
	return uc.composerUC.SendMenu(ctx, to,
		uc.messages.FormatExecHeader(user.Name),
		uc.messages.Menus.ExecBody,
		uc.messages.Menus.ExecButton,
		uc.messages.Menus.ExecSection,
		rows)
}

// executiveReport aggregates across every supervisor in the
// organization, with a per-team-lead breakdown derived from the same
// snapshot, then offers a team-lead drill-down list
func (uc *ReportUsecase) executiveReport(ctx context.Context, to string) error {
	supervisors, err := uc.directoryRepo.AllSupervisors(ctx)
	if err != nil {
		fmt.Printf("[Report] All-supervisors lookup failed: %v\n", err)
	}
	if len(supervisors) == 0 {
		return uc.composerUC.SendText(ctx, to, uc.messages.Reports.NoReportData)
	}

	summary := uc.summaryUC.Summarize(ctx, userNames(supervisors))

	leads, err := uc.directoryRepo.TeamLeads(ctx)
	if err != nil {
		fmt.Printf("[Report] Team-leads lookup failed: %v\n", err)
	}

	var breakdown strings.Builder
	breakdown.WriteString(uc.messages.Reports.CompanyHeader + "\n")
	for _, lead := range leads {
		leadSups, err := uc.directoryRepo.SubordinatesByRole(ctx, lead.ID, domain.RoleSupervisor)
		if err != nil {
			fmt.Printf("[Report] Subordinates lookup failed for %d: %v\n", lead.ID, err)
			continue
		}
		if len(leadSups) == 0 {
			continue
		}
		var leadStats domain.TeamStats
		for _, sup := range leadSups {
			if stats, ok := summary.PerSupervisor[sup.Name]; ok {
				leadStats.Add(stats)
			}
		}
		fmt.Fprintf(&breakdown, "\n👨‍💼 *%s (%s)*\n✅ Present: %d | ❌ Absent: %d",
			lead.Name, lead.Role, leadStats.Present, leadStats.Absent)
	}

	if err := uc.composerUC.SendChartReport(ctx, to, "NFL Attendance Report", breakdown.String(), &summary.Total); err != nil {
		return err
	}

	if len(leads) == 0 {
		return nil
	}
	rows := make([]repo.Row, len(leads))
	for i, lead := range leads {
		rows[i] = repo.Row{
			ID:    domain.Selection{Action: domain.ActionViewTeam, TargetID: lead.ID}.Encode(),
			Title: lead.Name,
		}
	}
	return uc.composerUC.SendMenu(ctx, to,
		uc.messages.Menus.DrillHeader,
		uc.messages.Menus.TeamBody,
		uc.messages.Menus.TeamButton,
		uc.messages.Menus.TeamSection,
		rows)
}

// pmReport aggregates across the PM's direct supervisors, with a
// per-supervisor breakdown from the same snapshot, then offers a
// supervisor drill-down list
func (uc *ReportUsecase) pmReport(ctx context.Context, to string, pm *domain.User) error {
	supervisors, err := uc.directoryRepo.SubordinatesByRole(ctx, pm.ID, domain.RoleSupervisor)
	if err != nil {
		return fmt.Errorf("subordinates lookup: %w", err)
	}
	if len(supervisors) == 0 {
		return uc.composerUC.SendText(ctx, to, uc.messages.Reports.NoSupervisorsAssigned)
	}

	summary := uc.summaryUC.Summarize(ctx, userNames(supervisors))

	var caption strings.Builder
	fmt.Fprintf(&caption, "👨‍💼 *Team Report for %s*\n\n", pm.Name)
	caption.WriteString(summary.Text)
	caption.WriteString("\n\n*Breakdown by Supervisor:*")
	for _, sup := range supervisors {
		stats := summary.PerSupervisor[sup.Name]
		fmt.Fprintf(&caption, "\n\n👤 *%s*\n✅ Present: %d | ❌ Absent: %d",
			sup.Name, stats.Present, stats.Absent)
	}

	title := fmt.Sprintf("Team Attendance for %s", pm.Name)
	if err := uc.composerUC.SendChartReport(ctx, to, title, caption.String(), &summary.Total); err != nil {
		return err
	}

	rows := make([]repo.Row, len(supervisors))
	for i, sup := range supervisors {
		rows[i] = repo.Row{
			ID:    domain.Selection{Action: domain.ActionViewSup, TargetID: sup.ID}.Encode(),
			Title: sup.Name,
		}
	}
	return uc.composerUC.SendMenu(ctx, to,
		uc.messages.Menus.DrillHeader,
		uc.messages.Menus.SupBody,
		uc.messages.Menus.SupButton,
		uc.messages.Menus.SupSection,
		rows)
}

// supervisorReport aggregates for a single supervisor and offers the
// present/absent roster buttons for nonzero counts
func (uc *ReportUsecase) supervisorReport(ctx context.Context, to string, sup *domain.User) error {
	summary := uc.summaryUC.Summarize(ctx, []string{sup.Name})

	caption := fmt.Sprintf("📋 *Report for %s*\n\n%s", sup.Name, summary.Text)
	title := fmt.Sprintf("Attendance for %s", sup.Name)
	if err := uc.composerUC.SendChartReport(ctx, to, title, caption, &summary.Total); err != nil {
		return err
	}

	var buttons []repo.Button
	if summary.Total.Present > 0 {
		buttons = append(buttons, repo.Button{
			ID:    domain.Selection{Action: domain.ActionViewPresent, TargetID: sup.ID}.Encode(),
			Title: uc.messages.Menus.PresentButton,
		})
	}
	if summary.Total.Absent > 0 {
		buttons = append(buttons, repo.Button{
			ID:    domain.Selection{Action: domain.ActionViewAbsent, TargetID: sup.ID}.Encode(),
			Title: uc.messages.Menus.AbsentButton,
		})
	}
	return uc.composerUC.SendButtons(ctx, to, uc.messages.Menus.RosterPrompt, buttons)
}

// roster resolves a single supervisor's stats and replies with the
// requested roster, sorted by BA name
func (uc *ReportUsecase) roster(ctx context.Context, to string, sel domain.Selection) error {
	sup, err := uc.directoryRepo.UserByID(ctx, sel.TargetID)
	if err != nil {
		return fmt.Errorf("roster lookup: %w", err)
	}
	if sup == nil {
		return uc.composerUC.SendText(ctx, to, uc.messages.Errors.SupervisorNotFound)
	}

	summary := uc.summaryUC.Summarize(ctx, []string{sup.Name})
	stats := summary.PerSupervisor[sup.Name]
	if stats == nil {
		stats = &domain.TeamStats{}
	}

	label := "Present"
	emoji := "✅"
	entries := stats.PresentRoster
	if sel.Action == domain.ActionViewAbsent {
		label = "Absent"
		emoji = "❌"
		entries = stats.AbsentRoster
	}

	if len(entries) == 0 {
		return uc.composerUC.SendText(ctx, to,
			fmt.Sprintf("No %s BAs found for %s.", strings.ToLower(label), sup.Name))
	}

	parts := []string{fmt.Sprintf("%s *%s BAs for %s:*", emoji, label, sup.Name)}
	for _, entry := range domain.SortedRoster(entries) {
		parts = append(parts, fmt.Sprintf("\n👤 *%s*\n🏬 _%s_", entry.Name, entry.Store))
	}
	return uc.composerUC.SendText(ctx, to, strings.Join(parts, "\n"))
}

func userNames(users []domain.User) []string {
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name
	}
	return names
}
