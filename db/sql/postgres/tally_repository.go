package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/adeilh/go-rakh-status/httpx/statusclass"
)

var (
	ErrMissingSource      = errors.New("postgres: tally source is required")
	ErrInvalidClass       = errors.New("postgres: invalid status class")
	ErrCountOverflow      = errors.New("postgres: tally count exceeds bigint")
	ErrTallySchemaMissing = errors.New("postgres: status_class_tallies table does not exist")
)

// DefaultTallyTableSchema stores one row per (snapshot, class).
var DefaultTallyTableSchema = `CREATE TABLE IF NOT EXISTS status_class_tallies (
	id BIGSERIAL PRIMARY KEY,
	source TEXT NOT NULL,
	class TEXT NOT NULL CHECK (class IN (` + quotedLabels() + `)),
	count BIGINT NOT NULL CHECK (count >= 0),
	taken_at TIMESTAMPTZ NOT NULL
)`

const DefaultTallyIndexSchema = `CREATE INDEX IF NOT EXISTS status_class_tallies_source_idx
	ON status_class_tallies (source, taken_at)`

func quotedLabels() string {
	labels := make([]string, 0, 6)
	for _, c := range statusclass.All() {
		labels = append(labels, "'"+c.Label()+"'")
	}
	return strings.Join(labels, ", ")
}

// TallyRepository persists per-class response counts inside PostgreSQL.
type TallyRepository struct {
	db *sql.DB
}

// NewTallyRepository wraps an existing *sql.DB connection.
func NewTallyRepository(db *sql.DB) *TallyRepository {
	return &TallyRepository{db: db}
}

// Save stores a snapshot of counts taken at takenAt under source. Classes
// with a zero count are skipped; an empty snapshot is a no-op.
func (r *TallyRepository) Save(ctx context.Context, source string, takenAt time.Time, counts map[statusclass.Class]uint64) error {
	if r == nil || r.db == nil {
		return ErrNilDB
	}
	source = strings.TrimSpace(source)
	if source == "" {
		return ErrMissingSource
	}

	labels := make([]string, 0, len(counts))
	values := make([]int64, 0, len(counts))
	for class, n := range counts {
		if !class.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidClass, class)
		}
		if n > math.MaxInt64 {
			return fmt.Errorf("%w: %s=%d", ErrCountOverflow, class.Label(), n)
		}
	}
	for _, class := range statusclass.All() {
		if n := counts[class]; n > 0 {
			labels = append(labels, class.Label())
			values = append(values, int64(n))
		}
	}
	if len(labels) == 0 {
		return nil
	}

	const query = `INSERT INTO status_class_tallies (source, class, count, taken_at)
                   SELECT $1, t.class, t.count, $4
                   FROM unnest($2::text[], $3::bigint[]) AS t(class, count)`
	_, err := r.db.ExecContext(ctx, query, source, pq.Array(labels), pq.Array(values), takenAt.UTC())
	return translateTallyError(err)
}

// Totals sums every stored snapshot of source per class.
func (r *TallyRepository) Totals(ctx context.Context, source string) (map[statusclass.Class]uint64, error) {
	if r == nil || r.db == nil {
		return nil, ErrNilDB
	}
	const query = `SELECT class, SUM(count)::bigint FROM status_class_tallies WHERE source = $1 GROUP BY class`
	rows, err := r.db.QueryContext(ctx, query, source)
	if err != nil {
		return nil, translateTallyError(err)
	}
	defer rows.Close()

	totals := make(map[statusclass.Class]uint64)
	for rows.Next() {
		var (
			label string
			n     int64
		)
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		class, ok := statusclass.ParseLabel(label)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidClass, label)
		}
		totals[class] = uint64(n)
	}
	if err := rows.Err(); err != nil {
		return nil, translateTallyError(err)
	}
	return totals, nil
}

// Sources lists every source with at least one stored snapshot.
func (r *TallyRepository) Sources(ctx context.Context) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, ErrNilDB
	}
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT source FROM status_class_tallies ORDER BY source`)
	if err != nil {
		return nil, translateTallyError(err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		return nil, translateTallyError(err)
	}
	return sources, nil
}

func translateTallyError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "42P01":
			return fmt.Errorf("%w: %v", ErrTallySchemaMissing, err)
		case "23514":
			return fmt.Errorf("%w: %v", ErrInvalidClass, err)
		}
	}
	return err
}
