package usecase

import (
	"context"
	"sync"

	"github.com/fieldops/wa-attendance-bot/internal/biz/domain"
	"github.com/fieldops/wa-attendance-bot/internal/biz/repo"
)

// Mock implementations

type mockAttendanceRepo struct {
	rows  []domain.AttendanceRow
	err   error
	calls int
}

func (m *mockAttendanceRepo) TodaysAttendance(ctx context.Context, supervisors []string) ([]domain.AttendanceRow, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

func (m *mockAttendanceRepo) Close() error { return nil }

type mockDirectoryRepo struct {
	users        map[int64]*domain.User
	byPhone      map[string]*domain.User
	subordinates map[int64][]domain.User
	supervisors  []domain.User
	leads        []domain.User
}

func (m *mockDirectoryRepo) UserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return m.byPhone[phone], nil
}

func (m *mockDirectoryRepo) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.users[id], nil
}

func (m *mockDirectoryRepo) SubordinatesByRole(ctx context.Context, managerID int64, role domain.Role) ([]domain.User, error) {
	var result []domain.User
	for _, u := range m.subordinates[managerID] {
		if u.Role == role {
			result = append(result, u)
		}
	}
	return result, nil
}

func (m *mockDirectoryRepo) AllSupervisors(ctx context.Context) ([]domain.User, error) {
	return m.supervisors, nil
}

func (m *mockDirectoryRepo) TeamLeads(ctx context.Context) ([]domain.User, error) {
	return m.leads, nil
}

func (m *mockDirectoryRepo) Close() error { return nil }

type sentList struct {
	header      string
	body        string
	buttonLabel string
	sections    []repo.Section
}

type sentButtons struct {
	body    string
	buttons []repo.Button
}

type mockGateway struct {
	mu        sync.Mutex
	texts     []string
	captions  []string
	lists     []sentList
	buttons   []sentButtons
	uploads   int
	uploadErr error
}

func (m *mockGateway) SendText(ctx context.Context, to, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, body)
	return nil
}

func (m *mockGateway) SendImage(ctx context.Context, to, mediaID, caption string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.captions = append(m.captions, caption)
	return nil
}

func (m *mockGateway) SendList(ctx context.Context, to, header, body, buttonLabel string, sections []repo.Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists = append(m.lists, sentList{header: header, body: body, buttonLabel: buttonLabel, sections: sections})
	return nil
}

func (m *mockGateway) SendButtons(ctx context.Context, to, body string, buttons []repo.Button) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buttons = append(m.buttons, sentButtons{body: body, buttons: buttons})
	return nil
}

func (m *mockGateway) UploadMedia(ctx context.Context, png []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	m.uploads++
	return "media-1", nil
}

// stubChart makes chart output deterministic in flow tests
func stubChart(title string, present, absent int) ([]byte, error) {
	if present+absent == 0 {
		return nil, nil
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}
