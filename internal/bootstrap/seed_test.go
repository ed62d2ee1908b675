package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/argenis972/portfolio-backend/internal/apperr"
	"github.com/argenis972/portfolio-backend/internal/logging"
	"github.com/argenis972/portfolio-backend/internal/portfolio/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var seedDocs = map[string]string{
	repository.DatasetProfile:     `{"nome":"Argenis Lopez","titulo":"Backend Developer"}`,
	repository.DatasetProjects:    `[{"id":"agenda","nome":"Agenda","tecnologias":["Go"]}]`,
	repository.DatasetStack:       `[{"nome":"Go","categoria":"backend","nivel":5}]`,
	repository.DatasetExperiences: `[{"id":"pleno","cargo":"Dev","empresa":"ACME","data_inicio":"2022-07-01","atual":true}]`,
}

func writeDocs(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, doc := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(doc), 0o644))
	}
	return dir
}

func TestSeed_CopiesEveryDataset(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	core, logs := observer.New(zapcore.InfoLevel)
	ctx := logging.WithLogger(context.Background(), zap.New(core))

	src := repository.NewFileSource(writeDocs(t, seedDocs))
	dst := repository.NewRedisSource(client, repository.DefaultRedisPrefix)

	require.NoError(t, Seed(ctx, src, dst))

	for name, doc := range seedDocs {
		got, err := mr.Get(repository.DefaultRedisPrefix + name)
		require.NoError(t, err, name)
		assert.JSONEq(t, doc, got, name)
	}
	assert.Equal(t, len(repository.Datasets), logs.FilterMessage("dataset gravado").Len())

	projects, err := repository.NewDocumentRepository(dst).ListProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, "agenda", projects[0].ID)
}

func TestSeed_RejectsInvalidDatasets(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	broken := map[string]string{}
	for k, v := range seedDocs {
		broken[k] = v
	}
	broken[repository.DatasetProjects] = `[{"id":"a","nome":"A"},{"id":"a","nome":"B"}]`

	src := repository.NewFileSource(writeDocs(t, broken))
	err := Seed(context.Background(), src, repository.NewRedisSource(client, ""))
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok, err)
	assert.Equal(t, apperr.KindInfrastructure, e.Kind)
	assert.Empty(t, mr.Keys(), "nothing is written when validation fails")
}

func TestValidateDatasets_MissingFile(t *testing.T) {
	docs := map[string]string{}
	for k, v := range seedDocs {
		if k != repository.DatasetStack {
			docs[k] = v
		}
	}
	err := ValidateDatasets(context.Background(), repository.NewFileSource(writeDocs(t, docs)))
	assert.Error(t, err)
}

func TestValidateDatasets_ShippedData(t *testing.T) {
	require.NoError(t, ValidateDatasets(context.Background(), repository.NewFileSource(filepath.Join("..", "..", "dados"))))
}
