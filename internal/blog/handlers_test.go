package blog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// txRecorder captures every statement issued on the transaction so tests can
// assert that a mutation and its audit row travel together.
type txRecorder struct {
	pgx.Tx
	sqls        []string
	deletedRows int64
}

func (f *txRecorder) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sqls = append(f.sqls, sql)
	if strings.HasPrefix(strings.TrimSpace(sql), "DELETE") {
		return pgconn.NewCommandTag(fmt.Sprintf("DELETE %d", f.deletedRows)), nil
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestDeletePost_AuditsInSameTx(t *testing.T) {
	tx := &txRecorder{deletedRows: 1}

	found, err := deletePost(context.Background(), tx, "abc", "admin@example.com")
	require.NoError(t, err)
	assert.True(t, found)

	require.Len(t, tx.sqls, 2)
	assert.Contains(t, tx.sqls[0], "DELETE FROM posts")
	assert.Contains(t, tx.sqls[1], "INSERT INTO audit_logs")
}

func TestDeletePost_MissingRowSkipsAudit(t *testing.T) {
	tx := &txRecorder{deletedRows: 0}

	found, err := deletePost(context.Background(), tx, "abc", "admin@example.com")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Len(t, tx.sqls, 1, "no audit row for a delete that removed nothing")
}
