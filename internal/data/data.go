package data

import (
	"github.com/fieldops/wa-attendance-bot/internal/biz/repo"
	"github.com/fieldops/wa-attendance-bot/internal/conf"
)

// Repositories contains all repositories
type Repositories struct {
	Directory  repo.DirectoryRepo
	Attendance repo.AttendanceRepo
	Gateway    repo.GatewayRepo
}

// NewRepositories creates all repositories
func NewRepositories(cfg *conf.Config) (*Repositories, error) {
	directoryRepo, err := NewDirectoryRepo(cfg.Store.HierarchyDBPath)
	if err != nil {
		return nil, err
	}

	attendanceRepo, err := NewAttendanceRepo(cfg.Store.AttendanceDBPath)
	if err != nil {
		directoryRepo.Close()
		return nil, err
	}

	return &Repositories{
		Directory:  directoryRepo,
		Attendance: attendanceRepo,
		Gateway:    NewWhatsAppRepo(cfg.WhatsApp.APIBase, cfg.WhatsApp.AccessToken, cfg.WhatsApp.PhoneNumberID),
	}, nil
}

// Close closes all repositories
func (r *Repositories) Close() {
	if r.Directory != nil {
		r.Directory.Close()
	}
	if r.Attendance != nil {
		r.Attendance.Close()
	}
}
