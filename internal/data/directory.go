package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fieldops/wa-attendance-bot/internal/biz/domain"
	"github.com/fieldops/wa-attendance-bot/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// directoryRepo implements the organizational-directory repository
type directoryRepo struct {
	db *sql.DB
}

// NewDirectoryRepo creates a new directory repository
func NewDirectoryRepo(dbPath string) (repo.DirectoryRepo, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS user (
			user_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			manager_id INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_user_manager_id ON user(manager_id)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &directoryRepo{db: db}, nil
}

// UserByPhone finds a user by phone number. Matching compares the last
// 10 digits with dash separators stripped, so stored and inbound numbers
// may differ in country code or formatting.
func (r *directoryRepo) UserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, role, phone, manager_id
		FROM user
		WHERE substr(replace(phone, '-', ''), -10) = substr(?, -10)
	`, phone)
	return scanUser(row)
}

// UserByID finds a user by directory id
func (r *directoryRepo) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, role, phone, manager_id
		FROM user
		WHERE user_id = ?
	`, id)
	return scanUser(row)
}

// SubordinatesByRole lists a manager's direct subordinates with the
// given role
func (r *directoryRepo) SubordinatesByRole(ctx context.Context, managerID int64, role domain.Role) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, name, role, phone, manager_id
		FROM user
		WHERE manager_id = ? AND role = ?
		ORDER BY name
	`, managerID, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to query subordinates: %w", err)
	}
	return scanUsers(rows)
}

// AllSupervisors lists every supervisor
func (r *directoryRepo) AllSupervisors(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, name, role, phone, manager_id
		FROM user
		WHERE role = ?
		ORDER BY name
	`, string(domain.RoleSupervisor))
	if err != nil {
		return nil, fmt.Errorf("failed to query supervisors: %w", err)
	}
	return scanUsers(rows)
}

// TeamLeads lists every manager with at least one direct Supervisor
// subordinate
func (r *directoryRepo) TeamLeads(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT m.user_id, m.name, m.role, m.phone, m.manager_id
		FROM user m
		JOIN user s ON m.user_id = s.manager_id
		WHERE s.role = ?
		ORDER BY m.name
	`, string(domain.RoleSupervisor))
	if err != nil {
		return nil, fmt.Errorf("failed to query team leads: %w", err)
	}
	return scanUsers(rows)
}

// Close closes the database connection
func (r *directoryRepo) Close() error {
	return r.db.Close()
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(&user.ID, &user.Name, &role, &user.Phone, &user.ManagerID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	user.Role = domain.ParseRole(role)
	return &user, nil
}

func scanUsers(rows *sql.Rows) ([]domain.User, error) {
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		var role string
		if err := rows.Scan(&user.ID, &user.Name, &role, &user.Phone, &user.ManagerID); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Role = domain.ParseRole(role)
		users = append(users, user)
	}
	return users, rows.Err()
}
