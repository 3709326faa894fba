package repo

import (
	"context"

	"github.com/fieldops/wa-attendance-bot/internal/biz/domain"
)

// DirectoryRepo is the organizational-directory repository interface.
// Lookups that find nothing return (nil, nil).
type DirectoryRepo interface {
	// UserByPhone finds a user by phone number, matching on the last
	// 10 digits with separators stripped
	UserByPhone(ctx context.Context, phone string) (*domain.User, error)

	// UserByID finds a user by directory id
	UserByID(ctx context.Context, id int64) (*domain.User, error)

	// SubordinatesByRole lists a manager's direct subordinates holding
	// the given role
	SubordinatesByRole(ctx context.Context, managerID int64, role domain.Role) ([]domain.User, error)

	// AllSupervisors lists every supervisor in the organization
	AllSupervisors(ctx context.Context) ([]domain.User, error)

	// TeamLeads lists every manager with at least one direct
	// Supervisor subordinate
	TeamLeads(ctx context.Context) ([]domain.User, error)

	Close() error
}
