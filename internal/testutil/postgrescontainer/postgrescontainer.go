// Package postgrescontainer runs a throwaway PostgreSQL server in docker for
// integration tests.
package postgrescontainer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

const (
	image         = "postgres:16-alpine"
	containerName = "rakh-status-postgres-test"
	hostPort      = "55432"
	user          = "rakh"
	password      = "secret"
	dbName        = "rakh_status_test"
)

// ErrDockerUnavailable is returned by Setup when no docker executable is on PATH.
var ErrDockerUnavailable = errors.New("postgrescontainer: docker executable not found")

var (
	mu       sync.Mutex
	started  bool
	setupErr error
)

// Addr returns host:port for connecting to the test Postgres instance.
func Addr() string { return "127.0.0.1:" + hostPort }

// DSN returns a lib/pq formatted connection string.
func DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", user, password, Addr(), dbName)
}

// Setup launches the Postgres container unless it is already running and
// waits until it accepts connections.
func Setup() error {
	mu.Lock()
	defer mu.Unlock()
	if started || setupErr != nil {
		return setupErr
	}
	if _, err := exec.LookPath("docker"); err != nil {
		setupErr = ErrDockerUnavailable
		return setupErr
	}
	_ = stopContainer()
	if err := runDocker(
		"run", "-d", "--rm",
		"--name", containerName,
		"-e", "POSTGRES_USER="+user,
		"-e", "POSTGRES_PASSWORD="+password,
		"-e", "POSTGRES_DB="+dbName,
		"-p", hostPort+":5432",
		image,
	); err != nil {
		setupErr = err
		return setupErr
	}
	if err := waitForPostgres(DSN(), 30*time.Second); err != nil {
		_ = stopContainer()
		setupErr = err
		return setupErr
	}
	started = true
	return nil
}

// Teardown stops the container launched by Setup.
func Teardown() error {
	mu.Lock()
	defer mu.Unlock()
	if !started {
		return setupErr
	}
	started = false
	return stopContainer()
}

func stopContainer() error {
	output, err := exec.Command("docker", "stop", containerName).CombinedOutput()
	if err != nil {
		if strings.Contains(string(output), "No such container") {
			return nil
		}
		return fmt.Errorf("docker stop failed: %w: %s", err, output)
	}
	return nil
}

func runDocker(args ...string) error {
	output, err := exec.Command("docker", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("docker %s failed: %w: %s", args[0], err, output)
	}
	return nil
}

func waitForPostgres(dsn string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		err := func() error {
			db, err := sql.Open("postgres", dsn)
			if err != nil {
				return err
			}
			defer db.Close()
			return db.PingContext(ctx)
		}()
		cancel()
		if err == nil {
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	return errors.New("postgres container did not become ready in time")
}
