package domain

import (
	"math"
	"sort"
)

// StatusActive is the attendance status counted as present.
// Any other status counts as absent.
const StatusActive = "Active"

// AttendanceRow is one BA attendance record for a given day
type AttendanceRow struct {
	Supervisor string
	BAName     string
	StoreName  string
	Status     string
	Date       string
}

// RosterEntry is a (BA name, store) pair in a roster
type RosterEntry struct {
	Name  string
	Store string
}

// TeamStats holds attendance counts and rosters for one supervisor,
// or a rollup across several
type TeamStats struct {
	Present       int
	Absent        int
	PresentRoster []RosterEntry
	AbsentRoster  []RosterEntry
}

// Record classifies a row and appends it to the matching roster
func (s *TeamStats) Record(row AttendanceRow) {
	entry := RosterEntry{Name: row.BAName, Store: row.StoreName}
	if row.Status == StatusActive {
		s.Present++
		s.PresentRoster = append(s.PresentRoster, entry)
	} else {
		s.Absent++
		s.AbsentRoster = append(s.AbsentRoster, entry)
	}
}

// Add folds other into s
func (s *TeamStats) Add(other *TeamStats) {
	s.Present += other.Present
	s.Absent += other.Absent
	s.PresentRoster = append(s.PresentRoster, other.PresentRoster...)
	s.AbsentRoster = append(s.AbsentRoster, other.AbsentRoster...)
}

// Total returns the number of rows recorded
func (s *TeamStats) Total() int {
	return s.Present + s.Absent
}

// Rate returns the attendance rate as a whole percentage.
// Halves round to even (12.5% reports as 12%). Zero when no rows
// were recorded.
func (s *TeamStats) Rate() int {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(s.Present) / float64(total) * 100))
}

// SortedRoster returns a copy of a roster ordered by BA name
func SortedRoster(entries []RosterEntry) []RosterEntry {
	out := make([]RosterEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AttendanceSummary is the result of aggregating one attendance snapshot.
// PerSupervisor has an entry for every requested supervisor, including
// those with no rows today; Total is the rollup across all of them.
type AttendanceSummary struct {
	Text          string
	PerSupervisor map[string]*TeamStats
	Total         TeamStats
}
