package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	require.NoError(t, client.Ping(context.Background()).Err())

	return client, mr
}

func TestRedisSource(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	src := NewRedisSource(client, "")

	t.Run("put stores under prefixed key", func(t *testing.T) {
		require.NoError(t, src.Put(ctx, DatasetStack, []byte(stackDoc)))
		stored, err := mr.Get("portfolio:dataset:stack")
		require.NoError(t, err)
		assert.JSONEq(t, stackDoc, stored)
	})

	t.Run("fetch returns stored document", func(t *testing.T) {
		data, err := src.Fetch(ctx, DatasetStack)
		require.NoError(t, err)
		assert.JSONEq(t, stackDoc, string(data))
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := src.Fetch(ctx, DatasetProjects)
		assert.ErrorIs(t, err, ErrDatasetNotFound)
	})

	t.Run("unknown dataset is rejected on put", func(t *testing.T) {
		err := src.Put(ctx, "usuarios", []byte(`[]`))
		assert.ErrorIs(t, err, ErrDatasetNotFound)
	})

	t.Run("custom prefix", func(t *testing.T) {
		custom := NewRedisSource(client, "test:")
		require.NoError(t, custom.Put(ctx, DatasetProfile, []byte(profileDoc)))
		assert.True(t, mr.Exists("test:sobre"))
	})
}

func TestRedisSource_ThroughRepository(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	src := NewRedisSource(client, "")
	for name, doc := range validSource().docs {
		require.NoError(t, src.Put(ctx, name, []byte(doc)))
	}
	repo := NewDocumentRepository(src)

	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	mr.Close()
	_, err = repo.GetProfile(ctx)
	appErr := requireInfrastructure(t, err)
	assert.Equal(t, "redis", appErr.Source)
}

type fakeRow struct {
	doc string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.doc
	return nil
}

type execCall struct {
	sql  string
	args []any
}

type fakeQuerier struct {
	docs    map[string]string
	rowErr  error
	execErr error
	execs   []execCall
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	if q.rowErr != nil {
		return fakeRow{err: q.rowErr}
	}
	doc, ok := q.docs[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{doc: doc}
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, execCall{sql: sql, args: args})
	if q.execErr != nil {
		return pgconn.CommandTag{}, q.execErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestPostgresSource(t *testing.T) {
	ctx := context.Background()

	t.Run("fetch", func(t *testing.T) {
		src := NewPostgresSource(&fakeQuerier{docs: map[string]string{DatasetProfile: profileDoc}})
		data, err := src.Fetch(ctx, DatasetProfile)
		require.NoError(t, err)
		assert.JSONEq(t, profileDoc, string(data))
	})

	t.Run("no rows", func(t *testing.T) {
		src := NewPostgresSource(&fakeQuerier{docs: map[string]string{}})
		_, err := src.Fetch(ctx, DatasetStack)
		assert.ErrorIs(t, err, ErrDatasetNotFound)
	})

	t.Run("query error through repository", func(t *testing.T) {
		boom := errors.New("conn closed")
		repo := NewDocumentRepository(NewPostgresSource(&fakeQuerier{rowErr: boom}))
		_, err := repo.ListStackItems(ctx)
		appErr := requireInfrastructure(t, err)
		assert.Equal(t, "postgres", appErr.Source)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("schema and upsert", func(t *testing.T) {
		q := &fakeQuerier{}
		src := NewPostgresSource(q)
		require.NoError(t, src.EnsureSchema(ctx))
		require.NoError(t, src.Put(ctx, DatasetStack, []byte(stackDoc)))

		require.Len(t, q.execs, 2)
		assert.Contains(t, q.execs[0].sql, "create table if not exists portfolio_datasets")
		assert.Contains(t, q.execs[1].sql, "on conflict (name) do update")
		assert.Equal(t, []any{DatasetStack, stackDoc}, q.execs[1].args)
	})

	t.Run("exec error", func(t *testing.T) {
		src := NewPostgresSource(&fakeQuerier{execErr: errors.New("read only")})
		assert.Error(t, src.EnsureSchema(ctx))
		assert.Error(t, src.Put(ctx, DatasetStack, []byte(stackDoc)))
	})
}
