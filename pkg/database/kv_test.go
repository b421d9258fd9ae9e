package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"art-shop/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseKV runs the same contract against every backend.
func exerciseKV(t *testing.T, kv KVStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "artShopCart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "artShopCart", `[{"id":"a"}]`))
	v, ok, err := kv.Get(ctx, "artShopCart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, v)

	require.NoError(t, kv.Set(ctx, "artShopCart", `[]`))
	v, _, err = kv.Get(ctx, "artShopCart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	require.NoError(t, kv.Delete(ctx, "artShopCart"))
	_, ok, err = kv.Get(ctx, "artShopCart")
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting a missing key is fine
	require.NoError(t, kv.Delete(ctx, "missing"))
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestSQLiteKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shop.db")
	kv, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer kv.Close()

	exerciseKV(t, kv)
}

func TestSQLiteKVSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shop.db")

	kv, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "deliveryPreference", "express"))
	require.NoError(t, kv.Close())

	kv, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer kv.Close()

	v, ok, err := kv.Get(ctx, "deliveryPreference")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "express", v)
}

func TestPostgresKV(t *testing.T) {
	db := newFakePgx()
	kv, err := NewPostgresKV(context.Background(), db)
	require.NoError(t, err)
	assert.True(t, db.tableCreated)

	exerciseKV(t, kv)

	require.NoError(t, kv.Close())
	assert.True(t, db.closed)
}

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()

	kv, err := Open(ctx, utils.StorageConfig{Driver: "memory"}, utils.DatabaseConfig{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	kv, err = Open(ctx, utils.StorageConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "a.db")}, utils.DatabaseConfig{})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteKV{}, kv)
	require.NoError(t, kv.Close())

	_, err = Open(ctx, utils.StorageConfig{Driver: "mongo"}, utils.DatabaseConfig{})
	assert.Error(t, err)
}

// fakePgx is an in-memory PgxIface that understands the three kv_store
// statements.
type fakePgx struct {
	data         map[string]string
	tableCreated bool
	closed       bool
}

func newFakePgx() *fakePgx {
	return &fakePgx{data: make(map[string]string)}
}

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

func (f *fakePgx) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	v, ok := f.data[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: v}
}

func (f *fakePgx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	stmt := strings.TrimSpace(sql)
	switch {
	case strings.HasPrefix(stmt, "CREATE TABLE"):
		f.tableCreated = true
		return pgconn.NewCommandTag("CREATE TABLE"), nil
	case strings.HasPrefix(stmt, "INSERT"):
		f.data[args[0].(string)] = args[1].(string)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.HasPrefix(stmt, "DELETE"):
		delete(f.data, args[0].(string))
		return pgconn.NewCommandTag("DELETE 1"), nil
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakePgx) Ping(context.Context) error { return nil }

func (f *fakePgx) Close() { f.closed = true }
