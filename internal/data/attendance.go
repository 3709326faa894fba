package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fieldops/wa-attendance-bot/internal/biz/domain"
	"github.com/fieldops/wa-attendance-bot/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// attendanceRepo implements the attendance-record repository
type attendanceRepo struct {
	db *sql.DB
}

// NewAttendanceRepo creates a new attendance repository
func NewAttendanceRepo(dbPath string) (repo.AttendanceRepo, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS ba_attendance (
			supervisor TEXT NOT NULL,
			ba_name TEXT NOT NULL,
			store_name TEXT NOT NULL DEFAULT '',
			ba_status TEXT NOT NULL,
			date TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_ba_attendance_date ON ba_attendance(date, supervisor)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &attendanceRepo{db: db}, nil
}

// TodaysAttendance returns today's rows for the given supervisor names
func (r *attendanceRepo) TodaysAttendance(ctx context.Context, supervisors []string) ([]domain.AttendanceRow, error) {
	if len(supervisors) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(supervisors)), ", ")
	args := make([]any, 0, len(supervisors))
	for _, name := range supervisors {
		args = append(args, name)
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT supervisor, ba_name, store_name, ba_status, date
		FROM ba_attendance
		WHERE supervisor IN (%s) AND date = date('now', 'localtime')
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var result []domain.AttendanceRow
	for rows.Next() {
		var row domain.AttendanceRow
		if err := rows.Scan(&row.Supervisor, &row.BAName, &row.StoreName, &row.Status, &row.Date); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Close closes the database connection
func (r *attendanceRepo) Close() error {
	return r.db.Close()
}
