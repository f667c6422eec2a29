package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ErrNotFound is returned by graph queries that expect at least one record
// but find none. Entity repositories do not return it; their lookups report
// a miss as a nil entity or an empty slice.
var ErrNotFound = errors.New("record not found")

// Runner executes a Cypher query with parameters and returns a fully
// buffered result. Repositories depend on this interface rather than the
// driver so they can be exercised against a stub in tests.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
}

// DB wraps the Neo4j driver and the target database name. It is the single
// concrete Runner in the module; one instance is shared by all repositories.
type DB struct {
	driver neo4j.DriverWithContext
	name   string
}

// New creates a driver for the given Bolt URI and verifies connectivity
// before returning. The caller owns the returned DB and must Close it.
func New(ctx context.Context, uri, username, password, name string) (*DB, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to neo4j at %s: %w", uri, err)
	}

	return &DB{driver: driver, name: name}, nil
}

// Run executes a single Cypher query through neo4j.ExecuteQuery, which
// manages the session and transaction per call. Results are buffered in
// memory before returning.
func (d *DB) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(d.name),
	)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return result, nil
}

// Close closes the underlying driver and releases its connection pool.
func (d *DB) Close(ctx context.Context) error {
	return d.driver.Close(ctx)
}
