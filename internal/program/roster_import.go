package program

import (
	"strings"

	"github.com/google/uuid"
)

// looksLikeHeader reports whether the first line of a bulk import is a column
// header rather than a player row.
func looksLikeHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "name") || strings.Contains(lower, "player")
}

// ParseRosterImport turns a pasted or uploaded CSV/TSV blob into roster
// entries. Per line: tab-separated when a tab is present, comma-separated
// otherwise; fields map 0..3 to name/position/grade/jersey number. Rows whose
// name is empty after trimming are dropped. Each parsed entry gets a fresh id.
func ParseRosterImport(input string) []Player {
	lines := strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")

	players := make([]Player, 0, len(lines))
	for i, line := range lines {
		if i == 0 && looksLikeHeader(line) {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		sep := ","
		if strings.Contains(line, "\t") {
			sep = "\t"
		}
		fields := strings.Split(line, sep)
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}

		p := Player{ID: uuid.NewString()}
		if len(fields) > 0 {
			p.Name = fields[0]
		}
		if len(fields) > 1 {
			p.Position = fields[1]
		}
		if len(fields) > 2 {
			p.Grade = fields[2]
		}
		if len(fields) > 3 {
			p.JerseyNumber = fields[3]
		}

		if p.Name == "" {
			continue
		}
		players = append(players, p)
	}
	return players
}
