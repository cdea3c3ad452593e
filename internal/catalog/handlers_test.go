package catalog

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

func TestDeletePackage_AuditsInSameTx(t *testing.T) {
	tx := &txRecorder{deletedRows: 1}

	found, err := deletePackage(context.Background(), tx, "abc", "admin@example.com")
	require.NoError(t, err)
	assert.True(t, found)

	require.Len(t, tx.sqls, 2)
	assert.Contains(t, tx.sqls[0], "DELETE FROM packages")
	assert.Contains(t, tx.sqls[1], "INSERT INTO audit_logs")
}

func TestDeletePackage_MissingRowSkipsAudit(t *testing.T) {
	tx := &txRecorder{deletedRows: 0}

	found, err := deletePackage(context.Background(), tx, "abc", "admin@example.com")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Len(t, tx.sqls, 1, "no audit row for a delete that removed nothing")
}
