// Package warehouse extracts candidate issue ratings from the analytics
// warehouse. The production warehouse speaks the postgres protocol; a
// sqlite driver covers local snapshot runs and tests.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver
)

// Dialect selects the extraction query shape for a backend.
type Dialect string

const (
	// DialectPostgres unpivots the wide rating view server-side.
	DialectPostgres Dialect = "postgres"
	// DialectSQLite reads an already-long local snapshot table.
	DialectSQLite Dialect = "sqlite"
)

// Row is one candidate/issue/value cell from the rating view. RawValue
// carries whatever the driver produced (string, number, nil); normalization
// happens downstream.
type Row struct {
	CandidateName string
	IssueColumn   string
	RawValue      any
}

// Client wraps the warehouse connection and its fixed extraction query.
type Client struct {
	db      *sql.DB
	dialect Dialect
	view    string
	nameCol string
}

// Environment variables:
//
//	CIVICSYNC_WAREHOUSE_DRIVER: postgres|sqlite (default postgres)
//	CIVICSYNC_WAREHOUSE_DSN: connection string (required)
//	CIVICSYNC_WAREHOUSE_VIEW: rating view name (default candidate_issue_ratings_current)
//	CIVICSYNC_WAREHOUSE_NAME_COLUMN: candidate name column (default candidate_name_first_last)

// DefaultView holds current issue ratings; the known variant
// candidate_issue_ratings_needed lists candidates still missing them.
const DefaultView = "candidate_issue_ratings_current"

const defaultNameColumn = "candidate_name_first_last"

// Open connects to the warehouse and verifies the connection.
func Open(ctx context.Context, dialect Dialect, dsn, view, nameCol string) (*Client, error) {
	var driverName string
	switch dialect {
	case DialectPostgres:
		driverName = "pgx"
	case DialectSQLite:
		driverName = "sqlite"
	default:
		return nil, fmt.Errorf("unknown warehouse dialect %s", dialect)
	}
	if dsn == "" {
		return nil, fmt.Errorf("warehouse dsn required")
	}
	if view == "" {
		view = DefaultView
	}
	if nameCol == "" {
		nameCol = defaultNameColumn
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping warehouse: %w", err)
	}
	return &Client{db: db, dialect: dialect, view: view, nameCol: nameCol}, nil
}

// OpenFromEnv connects using process environment.
func OpenFromEnv(ctx context.Context) (*Client, error) {
	dialect := Dialect(os.Getenv("CIVICSYNC_WAREHOUSE_DRIVER"))
	if dialect == "" {
		dialect = DialectPostgres
	}
	return Open(ctx,
		dialect,
		os.Getenv("CIVICSYNC_WAREHOUSE_DSN"),
		os.Getenv("CIVICSYNC_WAREHOUSE_VIEW"),
		os.Getenv("CIVICSYNC_WAREHOUSE_NAME_COLUMN"),
	)
}

// FetchIssueRatings runs the fixed extraction query and returns one row per
// candidate-issue pair.
func (c *Client) FetchIssueRatings(ctx context.Context) ([]Row, error) {
	query := BuildQuery(c.dialect, c.view, c.nameCol)
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", c.view, err)
	}
	defer func() { _ = rows.Close() }()

	var out []Row
	for rows.Next() {
		var name sql.NullString
		var issueCol string
		var raw any
		if err := rows.Scan(&name, &issueCol, &raw); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		out = append(out, Row{CandidateName: name.String, IssueColumn: issueCol, RawValue: raw})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}
	return out, nil
}

// View reports the configured rating view.
func (c *Client) View() string { return c.view }

// Close releases the warehouse connection.
func (c *Client) Close() error { return c.db.Close() }
