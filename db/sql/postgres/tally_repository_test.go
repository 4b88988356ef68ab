package postgres

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"

	"github.com/adeilh/go-rakh-status/httpx/statusclass"
	testpg "github.com/adeilh/go-rakh-status/internal/testutil/postgrescontainer"
)

const testTimeout = 5 * time.Second

var containerErr error

func TestMain(m *testing.M) {
	containerErr = testpg.Setup()
	code := m.Run()
	_ = testpg.Teardown()
	os.Exit(code)
}

func TestTallyRepositoryRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ensureSchema(t, db)
	repo := NewTallyRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	first := map[statusclass.Class]uint64{
		statusclass.Success:     10,
		statusclass.ClientError: 2,
		statusclass.ServerError: 0,
	}
	second := map[statusclass.Class]uint64{
		statusclass.Success: 5,
		statusclass.Unknown: 1,
	}
	if err := repo.Save(ctx, "edge-a", time.Now(), first); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := repo.Save(ctx, "edge-a", time.Now(), second); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := repo.Save(ctx, "edge-b", time.Now(), map[statusclass.Class]uint64{statusclass.Redirection: 3}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	totals, err := repo.Totals(ctx, "edge-a")
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}
	want := map[statusclass.Class]uint64{
		statusclass.Success:     15,
		statusclass.ClientError: 2,
		statusclass.Unknown:     1,
	}
	if len(totals) != len(want) {
		t.Fatalf("expected %d classes got %v", len(want), totals)
	}
	for class, n := range want {
		if totals[class] != n {
			t.Fatalf("%v: expected %d got %d", class, n, totals[class])
		}
	}

	sources, err := repo.Sources(ctx)
	if err != nil {
		t.Fatalf("Sources error: %v", err)
	}
	if len(sources) != 2 || sources[0] != "edge-a" || sources[1] != "edge-b" {
		t.Fatalf("unexpected sources: %v", sources)
	}

	empty, err := repo.Totals(ctx, "missing")
	if err != nil {
		t.Fatalf("Totals for missing source error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no totals got %v", empty)
	}
}

func TestTallyRepositoryMissingSchema(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Exec("DROP TABLE IF EXISTS status_class_tallies"); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	repo := NewTallyRepository(db)

	err := repo.Save(context.Background(), "edge", time.Now(), map[statusclass.Class]uint64{statusclass.Success: 1})
	if !errors.Is(err, ErrTallySchemaMissing) {
		t.Fatalf("expected ErrTallySchemaMissing got %v", err)
	}
}

func TestTallyCheckConstraint(t *testing.T) {
	db := openTestDB(t)
	ensureSchema(t, db)

	_, err := db.Exec(`INSERT INTO status_class_tallies (source, class, count, taken_at) VALUES ('x', 'Teapot', 1, now())`)
	if !errors.Is(translateTallyError(err), ErrInvalidClass) {
		t.Fatalf("expected check violation to map to ErrInvalidClass, got %v", err)
	}
}

func TestSaveValidatesBeforeQuerying(t *testing.T) {
	// sql.Open does not dial, so any query attempt would surface a
	// connection error instead of the sentinel.
	db, err := sql.Open("postgres", "postgres://nobody@127.0.0.1:1/none?sslmode=disable")
	if err != nil {
		t.Fatalf("sql.Open error: %v", err)
	}
	defer db.Close()
	repo := NewTallyRepository(db)
	ctx := context.Background()

	if err := repo.Save(ctx, "  ", time.Now(), map[statusclass.Class]uint64{statusclass.Success: 1}); !errors.Is(err, ErrMissingSource) {
		t.Fatalf("expected ErrMissingSource got %v", err)
	}
	if err := repo.Save(ctx, "edge", time.Now(), map[statusclass.Class]uint64{statusclass.Class(9): 1}); !errors.Is(err, ErrInvalidClass) {
		t.Fatalf("expected ErrInvalidClass got %v", err)
	}
	if err := repo.Save(ctx, "edge", time.Now(), map[statusclass.Class]uint64{statusclass.Success: math.MaxUint64}); !errors.Is(err, ErrCountOverflow) {
		t.Fatalf("expected ErrCountOverflow got %v", err)
	}
	if err := repo.Save(ctx, "edge", time.Now(), map[statusclass.Class]uint64{statusclass.Success: 0}); err != nil {
		t.Fatalf("empty snapshot should be a no-op, got %v", err)
	}
}

func TestNilDB(t *testing.T) {
	var repo *TallyRepository
	if err := repo.Save(context.Background(), "edge", time.Now(), nil); !errors.Is(err, ErrNilDB) {
		t.Fatalf("expected ErrNilDB got %v", err)
	}
	if _, err := NewTallyRepository(nil).Totals(context.Background(), "edge"); !errors.Is(err, ErrNilDB) {
		t.Fatalf("expected ErrNilDB got %v", err)
	}
	if err := ApplyMigrations(context.Background(), nil, "SELECT 1"); !errors.Is(err, ErrNilDB) {
		t.Fatalf("expected ErrNilDB got %v", err)
	}
}

func TestOpenRequiresDSN(t *testing.T) {
	if _, err := Open(context.Background()); !errors.Is(err, ErrMissingDSN) {
		t.Fatalf("expected ErrMissingDSN got %v", err)
	}
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if containerErr != nil {
		t.Skipf("postgres container unavailable: %v", containerErr)
	}
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	db, err := Connect(ctx, WithDSN(testpg.DSN()), WithMaxOpenConns(2))
	if err != nil {
		t.Fatalf("Connect error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func ensureSchema(t *testing.T, db *sql.DB) {
	t.Helper()
	if _, err := db.Exec("DROP TABLE IF EXISTS status_class_tallies"); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate error: %v", err)
	}
}
