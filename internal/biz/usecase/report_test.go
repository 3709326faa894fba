package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/fieldops/wa-attendance-bot/internal/biz/domain"
	"github.com/fieldops/wa-attendance-bot/internal/conf"
)

func newReportFixture(attendance *mockAttendanceRepo, directory *mockDirectoryRepo) (*ReportUsecase, *mockGateway) {
	gateway := &mockGateway{}
	messages := conf.DefaultMessages()
	summaryUC := NewSummaryUsecase(attendance, messages)
	composerUC := NewComposerUsecase(gateway, messages)
	composerUC.renderChart = stubChart
	return NewReportUsecase(directory, summaryUC, composerUC, messages), gateway
}

func ashaRows() []domain.AttendanceRow {
	return []domain.AttendanceRow{
		{Supervisor: "Asha", BAName: "Ravi", StoreName: "Store 1", Status: "Active"},
		{Supervisor: "Asha", BAName: "Meera", StoreName: "Store 2", Status: "Active"},
		{Supervisor: "Asha", BAName: "Kiran", StoreName: "Store 3", Status: "Active"},
		{Supervisor: "Asha", BAName: "Dev", StoreName: "Store 4", Status: "Inactive"},
		{Supervisor: "Asha", BAName: "Tara", StoreName: "Store 5", Status: "Inactive"},
	}
}

func TestSupervisorFlow(t *testing.T) {
	asha := &domain.User{ID: 7, Name: "Asha", Role: domain.RoleSupervisor}
	directory := &mockDirectoryRepo{users: map[int64]*domain.User{7: asha}}
	uc, gateway := newReportFixture(&mockAttendanceRepo{rows: ashaRows()}, directory)

	if err := uc.Run(context.Background(), "15550001111", asha, domain.Selection{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(gateway.captions) != 1 {
		t.Fatalf("Expected 1 chart report, got %d", len(gateway.captions))
	}
	caption := gateway.captions[0]
	for _, want := range []string{"Report for Asha", "Present: *3*", "Absent: *2*", "Total BAs: *5*", "Attendance Rate: *60%*"} {
		if !strings.Contains(caption, want) {
			t.Errorf("Expected caption to contain %q, got %q", want, caption)
		}
	}

	if len(gateway.buttons) != 1 {
		t.Fatalf("Expected 1 button message, got %d", len(gateway.buttons))
	}
	sent := gateway.buttons[0].buttons
	if len(sent) != 2 {
		t.Fatalf("Expected 2 buttons, got %d", len(sent))
	}
	if sent[0].ID != "view_present-7" || sent[1].ID != "view_absent-7" {
		t.Errorf("Unexpected button ids: %s, %s", sent[0].ID, sent[1].ID)
	}
}

func TestSupervisorFlow_OnlyNonzeroButtons(t *testing.T) {
	asha := &domain.User{ID: 7, Name: "Asha", Role: domain.RoleSupervisor}
	rows := []domain.AttendanceRow{
		{Supervisor: "Asha", BAName: "Ravi", StoreName: "Store 1", Status: "Active"},
	}
	directory := &mockDirectoryRepo{users: map[int64]*domain.User{7: asha}}
	uc, gateway := newReportFixture(&mockAttendanceRepo{rows: rows}, directory)

	if err := uc.Run(context.Background(), "15550001111", asha, domain.Selection{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(gateway.buttons) != 1 {
		t.Fatalf("Expected 1 button message, got %d", len(gateway.buttons))
	}
	sent := gateway.buttons[0].buttons
	if len(sent) != 1 || sent[0].ID != "view_present-7" {
		t.Errorf("Expected only the present button, got %+v", sent)
	}
}

func TestSupervisorFlow_NoRowsSendsNoButtons(t *testing.T) {
	asha := &domain.User{ID: 7, Name: "Asha", Role: domain.RoleSupervisor}
	directory := &mockDirectoryRepo{users: map[int64]*domain.User{7: asha}}
	uc, gateway := newReportFixture(&mockAttendanceRepo{}, directory)

	if err := uc.Run(context.Background(), "15550001111", asha, domain.Selection{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Zero-data chart falls back to text; no buttons apply
	if len(gateway.buttons) != 0 {
		t.Errorf("Expected no button message, got %+v", gateway.buttons)
	}
	if len(gateway.texts) != 1 {
		t.Fatalf("Expected text fallback, got %d", len(gateway.texts))
	}
}

func TestPMFlow_ListsZeroRowSupervisor(t *testing.T) {
	pm := &domain.User{ID: 1, Name: "Priya", Role: domain.RolePM}
	asha := domain.User{ID: 7, Name: "Asha", Role: domain.RoleSupervisor, ManagerID: 1}
	ben := domain.User{ID: 8, Name: "Ben", Role: domain.RoleSupervisor, ManagerID: 1}
	directory := &mockDirectoryRepo{
		users:        map[int64]*domain.User{1: pm, 7: &asha, 8: &ben},
		subordinates: map[int64][]domain.User{1: {asha, ben}},
	}
	uc, gateway := newReportFixture(&mockAttendanceRepo{rows: ashaRows()}, directory)

	if err := uc.Run(context.Background(), "15550001111", pm, domain.Selection{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(gateway.captions) != 1 {
		t.Fatalf("Expected 1 chart report, got %d", len(gateway.captions))
	}
	caption := gateway.captions[0]
	for _, want := range []string{
		"Team Report for Priya",
		"Breakdown by Supervisor",
		"*Asha*\n✅ Present: 3 | ❌ Absent: 2",
		"*Ben*\n✅ Present: 0 | ❌ Absent: 0",
	} {
		if !strings.Contains(caption, want) {
			t.Errorf("Expected caption to contain %q, got %q", want, caption)
		}
	}

	if len(gateway.lists) != 1 {
		t.Fatalf("Expected 1 drill-down list, got %d", len(gateway.lists))
	}
	rows := gateway.lists[0].sections[0].Rows
	if len(rows) != 2 || rows[0].ID != "view_sup-7" || rows[1].ID != "view_sup-8" {
		t.Errorf("Unexpected drill-down rows: %+v", rows)
	}
}

func TestPMFlow_NoSupervisors(t *testing.T) {
	pm := &domain.User{ID: 1, Name: "Priya", Role: domain.RolePM}
	directory := &mockDirectoryRepo{users: map[int64]*domain.User{1: pm}}
	attendance := &mockAttendanceRepo{}
	uc, gateway := newReportFixture(attendance, directory)

	if err := uc.Run(context.Background(), "15550001111", pm, domain.Selection{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if attendance.calls != 0 {
		t.Errorf("Expected no attendance query, got %d", attendance.calls)
	}
	if len(gateway.texts) != 1 || gateway.texts[0] != conf.DefaultMessages().Reports.NoSupervisorsAssigned {
		t.Errorf("Expected no-supervisors reply, got %+v", gateway.texts)
	}
}

func TestDrillDown_ReproducesSupervisorFlow(t *testing.T) {
	pm := &domain.User{ID: 1, Name: "Priya", Role: domain.RolePM}
	asha := &domain.User{ID: 7, Name: "Asha", Role: domain.RoleSupervisor, ManagerID: 1}
	directory := &mockDirectoryRepo{users: map[int64]*domain.User{1: pm, 7: asha}}

	// Direct supervisor flow output
	ucDirect, gatewayDirect := newReportFixture(&mockAttendanceRepo{rows: ashaRows()}, directory)
	if err := ucDirect.Run(context.Background(), "15550001111", asha, domain.Selection{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Same flow reached through the PM's drill-down selection
	ucDrill, gatewayDrill := newReportFixture(&mockAttendanceRepo{rows: ashaRows()}, directory)
	sel := domain.ParseSelection("view_sup-7")
	if err := ucDrill.Run(context.Background(), "15550001111", pm, sel); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(gatewayDrill.captions) != 1 || gatewayDrill.captions[0] != gatewayDirect.captions[0] {
		t.Errorf("Expected drill-down caption to match direct flow")
	}
	if len(gatewayDrill.buttons) != 1 || len(gatewayDirect.buttons) != 1 {
		t.Fatal("Expected button messages from both flows")
	}
	for i := range gatewayDirect.buttons[0].buttons {
		if gatewayDrill.buttons[0].buttons[i] != gatewayDirect.buttons[0].buttons[i] {
			t.Errorf("Expected identical buttons, got %+v vs %+v",
				gatewayDrill.buttons[0].buttons, gatewayDirect.buttons[0].buttons)
		}
	}
}

func TestDrillDown_MissingTarget(t *testing.T) {
	pm := &domain.User{ID: 1, Name: "Priya", Role: domain.RolePM}
	directory := &mockDirectoryRepo{users: map[int64]*domain.User{1: pm}}
	uc, gateway := newReportFixture(&mockAttendanceRepo{}, directory)

	sel := domain.ParseSelection("view_sup-99")
	if err := uc.Run(context.Background(), "15550001111", pm, sel); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(gateway.texts) != 1 || gateway.texts[0] != conf.DefaultMessages().Errors.InvalidSelection {
		t.Errorf("Expected invalid-selection reply, got %+v", gateway.texts)
	}
}

func TestExecutiveRootMenu(t *testing.T) {
	exec := &domain.User{ID: 2, Name: "Elena", Role: domain.RoleExecutive}
	directory := &mockDirectoryRepo{users: map[int64]*domain.User{2: exec}}
	uc, gateway := newReportFixture(&mockAttendanceRepo{}, directory)

	if err := uc.Run(context.Background(), "15550001111", exec, domain.Selection{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(gateway.lists) != 1 {
		t.Fatalf("Expected root menu list, got %d", len(gateway.lists))
	}
	menu := gateway.lists[0]
	if !strings.Contains(menu.header, "Elena") {
		t.Errorf("Expected personalized header, got %q", menu.header)
	}
	rows := menu.sections[0].Rows
	if len(rows) != 1 || rows[0].ID != "view_report" {
		t.Errorf("Expected single view_report row, got %+v", rows)
	}
}

func TestExecutiveReport(t *testing.T) {
	exec := &domain.User{ID: 2, Name: "Elena", Role: domain.RoleExecutive}
	priya := domain.User{ID: 1, Name: "Priya", Role: domain.RolePM}
	asha := domain.User{ID: 7, Name: "Asha", Role: domain.RoleSupervisor, ManagerID: 1}
	ben := domain.User{ID: 8, Name: "Ben", Role: domain.RoleSupervisor, ManagerID: 1}
	directory := &mockDirectoryRepo{
		users:        map[int64]*domain.User{1: &priya, 2: exec, 7: &asha, 8: &ben},
		subordinates: map[int64][]domain.User{1: {asha, ben}},
		supervisors:  []domain.User{asha, ben},
		leads:        []domain.User{priya},
	}
	uc, gateway := newReportFixture(&mockAttendanceRepo{rows: ashaRows()}, directory)

	sel := domain.ParseSelection("view_report")
	if err := uc.Run(context.Background(), "15550001111", exec, sel); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(gateway.captions) != 1 {
		t.Fatalf("Expected 1 chart report, got %d", len(gateway.captions))
	}
	caption := gateway.captions[0]
	for _, want := range []string{"Company-Wide Attendance Summary", "Priya (PM)", "Present: 3 | ❌ Absent: 2"} {
		if !strings.Contains(caption, want) {
			t.Errorf("Expected caption to contain %q, got %q", want, caption)
		}
	}

	if len(gateway.lists) != 1 {
		t.Fatalf("Expected team-lead drill-down list, got %d", len(gateway.lists))
	}
	rows := gateway.lists[0].sections[0].Rows
	if len(rows) != 1 || rows[0].ID != "view_team-1" {
		t.Errorf("Expected view_team-1 row, got %+v", rows)
	}
}

func TestExecutiveReport_NoSupervisors(t *testing.T) {
	exec := &domain.User{ID: 2, Name: "Elena", Role: domain.RoleExecutive}
	directory := &mockDirectoryRepo{users: map[int64]*domain.User{2: exec}}
	uc, gateway := newReportFixture(&mockAttendanceRepo{}, directory)

	sel := domain.Selection{Action: domain.ActionViewReport}
	if err := uc.Run(context.Background(), "15550001111", exec, sel); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(gateway.texts) != 1 || gateway.texts[0] != conf.DefaultMessages().Reports.NoReportData {
		t.Errorf("Expected no-report-data reply, got %+v", gateway.texts)
	}
}

func TestRoster_SortedByName(t *testing.T) {
	asha := &domain.User{ID: 7, Name: "Asha", Role: domain.RoleSupervisor}
	rows := []domain.AttendanceRow{
		{Supervisor: "Asha", BAName: "Zoya", StoreName: "Store 9", Status: "Active"},
		{Supervisor: "Asha", BAName: "Amit", StoreName: "Store 1", Status: "Active"},
	}
	directory := &mockDirectoryRepo{users: map[int64]*domain.User{7: asha}}
	uc, gateway := newReportFixture(&mockAttendanceRepo{rows: rows}, directory)

	sel := domain.ParseSelection("view_present-7")
	sender := &domain.User{ID: 1, Name: "Priya", Role: domain.RolePM}
	if err := uc.Run(context.Background(), "15550001111", sender, sel); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(gateway.texts) != 1 {
		t.Fatalf("Expected 1 roster reply, got %d", len(gateway.texts))
	}
	text := gateway.texts[0]
	if !strings.Contains(text, "Present BAs for Asha") {
		t.Errorf("Expected roster header, got %q", text)
	}
	if strings.Index(text, "Amit") > strings.Index(text, "Zoya") {
		t.Errorf("Expected roster sorted by name, got %q", text)
	}
	if !strings.Contains(text, "_Store 1_") {
		t.Errorf("Expected store names in roster, got %q", text)
	}
}

func TestRoster_EmptyList(t *testing.T) {
	asha := &domain.User{ID: 7, Name: "Asha", Role: domain.RoleSupervisor}
	rows := []domain.AttendanceRow{
		{Supervisor: "Asha", BAName: "Ravi", StoreName: "Store 1", Status: "Active"},
	}
	directory := &mockDirectoryRepo{users: map[int64]*domain.User{7: asha}}
	uc, gateway := newReportFixture(&mockAttendanceRepo{rows: rows}, directory)

	sel := domain.ParseSelection("view_absent-7")
	if err := uc.Run(context.Background(), "15550001111", asha, sel); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(gateway.texts) != 1 || gateway.texts[0] != "No absent BAs found for Asha." {
		t.Errorf("Expected empty-roster reply, got %+v", gateway.texts)
	}
}

func TestRoster_UnknownSupervisor(t *testing.T) {
	directory := &mockDirectoryRepo{users: map[int64]*domain.User{}}
	uc, gateway := newReportFixture(&mockAttendanceRepo{}, directory)

	sel := domain.ParseSelection("view_present-404")
	sender := &domain.User{ID: 1, Name: "Priya", Role: domain.RolePM}
	if err := uc.Run(context.Background(), "15550001111", sender, sel); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(gateway.texts) != 1 || gateway.texts[0] != conf.DefaultMessages().Errors.SupervisorNotFound {
		t.Errorf("Expected supervisor-not-found reply, got %+v", gateway.texts)
	}
}

func TestUnknownRole_NoFlowReply(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleUnknown, domain.Role("Analyst")} {
		user := &domain.User{ID: 3, Name: "Noor", Role: role}
		directory := &mockDirectoryRepo{users: map[int64]*domain.User{3: user}}
		uc, gateway := newReportFixture(&mockAttendanceRepo{}, directory)

		if err := uc.Run(context.Background(), "15550001111", user, domain.Selection{}); err != nil {
			t.Fatalf("Unexpected error for role %q: %v", role, err)
		}

		if len(gateway.texts) != 1 || !strings.Contains(gateway.texts[0], "does not have a defined report flow") {
			t.Errorf("Expected no-flow reply for role %q, got %+v", role, gateway.texts)
		}
	}
}
