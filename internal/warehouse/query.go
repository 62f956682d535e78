package warehouse

import (
	"strings"

	"civicsync/internal/rating"
)

// BuildQuery emits the fixed extraction query for a dialect. Both shapes
// return (politician_name, issue_col, issue_value) with one row per
// candidate-issue pair.
func BuildQuery(dialect Dialect, view, nameCol string) string {
	if dialect == DialectSQLite {
		// Local snapshots are stored long-format already.
		return "SELECT politician_name, issue_col, issue_value FROM " + view
	}
	return buildUnpivotQuery(view, nameCol)
}

// buildUnpivotQuery rotates the wide rating view (one column per issue) into
// long format server-side, pairing each issue column with its canonical
// upper-case label.
func buildUnpivotQuery(view, nameCol string) string {
	var b strings.Builder
	b.WriteString("SELECT\n")
	b.WriteString("  " + nameCol + " AS politician_name,\n")
	b.WriteString("  u.issue_col,\n")
	b.WriteString("  u.issue_value\n")
	b.WriteString("FROM " + view + "\n")
	b.WriteString("CROSS JOIN LATERAL (\n  VALUES\n")
	cols := rating.Columns()
	for i, col := range cols {
		b.WriteString("    ('" + col + "', " + strings.ToLower(col) + "::text)")
		if i < len(cols)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(") AS u(issue_col, issue_value)")
	return b.String()
}
