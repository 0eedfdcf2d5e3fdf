package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingKV struct {
	*MemoryKV
	getErr error
	setErr error
	delErr error
}

func (f *failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f *failingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryKV.Set(ctx, key, value)
}

func (f *failingKV) Delete(ctx context.Context, key string) error {
	if f.delErr != nil {
		return f.delErr
	}
	return f.MemoryKV.Delete(ctx, key)
}

func sampleSession() Session {
	return Session{
		Token: "tok1",
		User:  &UserProfile{Name: "Ana", Role: "gestor", CompanyID: NewNumericCompanyID(7)},
	}
}

func TestStoreLoadMissingKey(t *testing.T) {
	store := NewStore(NewMemoryKV(), nil)
	got := store.Load(context.Background())
	assert.Equal(t, Session{}, got)
	assert.False(t, got.IsAuthenticated())
}

func TestStoreLoadCorruptValueIsCleared(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, Key, []byte("{not json")))

	store := NewStore(kv, nil)
	assert.Equal(t, Session{}, store.Load(ctx))

	_, err := kv.Get(ctx, Key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreLoadBackendErrorYieldsEmpty(t *testing.T) {
	kv := &failingKV{MemoryKV: NewMemoryKV(), getErr: errors.New("connection refused")}
	store := NewStore(kv, nil)
	assert.Equal(t, Session{}, store.Load(context.Background()))
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	want := sampleSession()

	require.NoError(t, NewStore(kv, nil).Save(ctx, want))

	fresh := NewStore(kv, nil)
	assert.Equal(t, want, fresh.Load(ctx))
	assert.Equal(t, want, fresh.Current())
	assert.Equal(t, "tok1", fresh.CurrentToken())
}

func TestStoreSaveOverwritesWholeRecord(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	store := NewStore(kv, nil)
	require.NoError(t, store.Save(ctx, sampleSession()))
	require.NoError(t, store.Save(ctx, Session{Token: "tok2"}))

	raw, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"tok2","user":null}`, string(raw))
}

func TestStoreSaveFailureKeepsState(t *testing.T) {
	kv := &failingKV{MemoryKV: NewMemoryKV(), setErr: errors.New("disk full")}
	store := NewStore(kv, nil)
	err := store.Save(context.Background(), sampleSession())
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, Session{}, store.Current())
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	store := NewStore(kv, nil)
	require.NoError(t, store.Save(ctx, sampleSession()))
	require.NoError(t, store.Clear(ctx))

	assert.Equal(t, Session{}, store.Current())
	_, err := kv.Get(ctx, Key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreClearFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{MemoryKV: NewMemoryKV(), delErr: errors.New("read-only")}
	store := NewStore(kv, nil)
	require.NoError(t, store.Save(ctx, sampleSession()))

	assert.ErrorContains(t, store.Clear(ctx), "read-only")
	assert.Equal(t, sampleSession(), store.Current())
	assert.Equal(t, sampleSession(), NewStore(kv, nil).Load(ctx))
}

func TestStoreCurrentReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryKV(), nil)
	require.NoError(t, store.Save(ctx, sampleSession()))

	snap := store.Current()
	snap.User.Name = "changed"
	assert.Equal(t, "Ana", store.Current().User.Name)
}

func TestFileKV(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	kv, err := NewFileKV(root, "https://localhost:7105")
	require.NoError(t, err)

	_, err = kv.Get(ctx, Key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, Key, []byte(`{"token":"a"}`)))
	got, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	assert.Equal(t, `{"token":"a"}`, string(got))

	_, err = os.Stat(filepath.Join(root, "https___localhost_7105", Key+".json"))
	assert.NoError(t, err)

	require.NoError(t, kv.Delete(ctx, Key))
	require.NoError(t, kv.Delete(ctx, Key))
	_, err = kv.Get(ctx, Key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileKVOriginsAreIsolated(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	a, err := NewFileKV(root, "https://a.example")
	require.NoError(t, err)
	b, err := NewFileKV(root, "https://b.example")
	require.NoError(t, err)

	require.NoError(t, NewStore(a, nil).Save(ctx, sampleSession()))
	assert.Equal(t, Session{}, NewStore(b, nil).Load(ctx))
}

func TestRedisKVKeyLayout(t *testing.T) {
	kv := NewRedisKV(nil, "", "https://localhost:7105")
	assert.Equal(t, "fleet-console:https://localhost:7105:gc_auth_v1", kv.key(Key))
}

func TestPostgresKV(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	kv := NewPostgresKV(db, "https://localhost:7105")

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS kv_store")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, kv.EnsureSchema(ctx))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value")).
		WithArgs("https://localhost:7105", Key).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	_, err = kv.Get(ctx, Key)
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store")).
		WithArgs("https://localhost:7105", Key, `{"token":"a"}`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, kv.Set(ctx, Key, []byte(`{"token":"a"}`)))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value")).
		WithArgs("https://localhost:7105", Key).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"token":"a"}`))
	got, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	assert.Equal(t, `{"token":"a"}`, string(got))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_store")).
		WithArgs("https://localhost:7105", Key).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, kv.Delete(ctx, Key))

	assert.NoError(t, mock.ExpectationsWereMet())
}
