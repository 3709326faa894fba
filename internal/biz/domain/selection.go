package domain

import (
	"strconv"
	"strings"
)

// Action is an interactive menu action decoded from a selection id
type Action int

const (
	// ActionNone means no selection, or one that failed to decode
	ActionNone Action = iota
	// ActionViewReport requests the organization-wide report (Executive menu entry)
	ActionViewReport
	// ActionViewTeam drills down into a team lead's report
	ActionViewTeam
	// ActionViewSup drills down into a single supervisor's report
	ActionViewSup
	// ActionViewPresent requests a supervisor's present-BA roster
	ActionViewPresent
	// ActionViewAbsent requests a supervisor's absent-BA roster
	ActionViewAbsent
)

var actionTokens = map[Action]string{
	ActionViewReport:  "view_report",
	ActionViewTeam:    "view_team",
	ActionViewSup:     "view_sup",
	ActionViewPresent: "view_present",
	ActionViewAbsent:  "view_absent",
}

var tokenActions = map[string]Action{
	"view_report":  ActionViewReport,
	"view_team":    ActionViewTeam,
	"view_sup":     ActionViewSup,
	"view_present": ActionViewPresent,
	"view_absent":  ActionViewAbsent,
}

func (a Action) String() string {
	if tok, ok := actionTokens[a]; ok {
		return tok
	}
	return "none"
}

// Selection is a decoded interactive selection. The zero value means
// "no selection".
type Selection struct {
	Action   Action
	TargetID int64
}

// IsZero reports whether no usable selection was decoded
func (s Selection) IsZero() bool {
	return s.Action == ActionNone
}

// Encode renders the selection in its wire form: "<action>-<target_id>",
// or the bare action token when it carries no target (view_report).
func (s Selection) Encode() string {
	tok, ok := actionTokens[s.Action]
	if !ok {
		return ""
	}
	if s.Action == ActionViewReport {
		return tok
	}
	return tok + "-" + strconv.FormatInt(s.TargetID, 10)
}

// ParseSelection decodes a raw selection id. It is the exact inverse of
// Encode for every valid (action, id) pair and fails soft: unknown
// prefixes, missing ids and unparseable ids all decode to the zero
// Selection, never an error.
func ParseSelection(raw string) Selection {
	if raw == "" {
		return Selection{}
	}
	if raw == actionTokens[ActionViewReport] {
		return Selection{Action: ActionViewReport}
	}
	prefix, rest, found := strings.Cut(raw, "-")
	if !found {
		return Selection{}
	}
	action, ok := tokenActions[prefix]
	if !ok || action == ActionViewReport {
		return Selection{}
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return Selection{}
	}
	return Selection{Action: action, TargetID: id}
}
