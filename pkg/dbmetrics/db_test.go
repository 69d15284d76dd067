package dbmetrics

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubTx struct{ DBExecutor }

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubDB struct{ DBExecutor }

func TestGetExecutor(t *testing.T) {
	fallback := &stubDB{}
	tx := &stubTx{}

	assert.Same(t, fallback, GetExecutor(context.Background(), fallback))
	assert.False(t, IsInTransaction(context.Background()))

	ctx := WithTx(context.Background(), tx)
	assert.Same(t, tx, GetExecutor(ctx, fallback))
	assert.True(t, IsInTransaction(ctx))
}

func TestOperationName(t *testing.T) {
	tests := map[string]string{
		"SELECT id FROM users":                   "select",
		"  insert INTO appointments VALUES ($1)": "insert",
		"UPDATE appointment_requests SET":        "update",
		"DELETE FROM x":                          "delete",
		"WITH cte AS (SELECT 1) SELECT *":        "other",
		"":                                       "unknown",
	}

	for query, want := range tests {
		assert.Equal(t, want, operationName(query), query)
	}
}

func TestObserve_NilMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		observe(nil, "SELECT 1", time.Time{}, sql.ErrNoRows)
	})
}
