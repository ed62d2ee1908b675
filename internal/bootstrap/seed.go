package bootstrap

import (
	"context"
	"fmt"

	"github.com/argenis972/portfolio-backend/internal/logging"
	"github.com/argenis972/portfolio-backend/internal/portfolio/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ValidateDatasets reads every dataset through the document repository so
// malformed documents are rejected before anything is written.
func ValidateDatasets(ctx context.Context, src repository.Source) error {
	repo := repository.NewDocumentRepository(src)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { _, err := repo.GetProfile(gctx); return err })
	g.Go(func() error { _, err := repo.ListProjects(gctx); return err })
	g.Go(func() error { _, err := repo.ListStackItems(gctx); return err })
	g.Go(func() error { _, err := repo.ListExperiences(gctx); return err })
	return g.Wait()
}

// Seed copies every dataset from src into dst after validating them.
func Seed(ctx context.Context, src repository.Source, dst repository.Writer) error {
	if err := ValidateDatasets(ctx, src); err != nil {
		return fmt.Errorf("validate %s datasets: %w", src.Name(), err)
	}

	log := logging.FromContext(ctx)
	g, gctx := errgroup.WithContext(ctx)
	for _, dataset := range repository.Datasets {
		dataset := dataset
		g.Go(func() error {
			doc, err := src.Fetch(gctx, dataset)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", dataset, err)
			}
			if err := dst.Put(gctx, dataset, doc); err != nil {
				return fmt.Errorf("put %s: %w", dataset, err)
			}
			log.Info("dataset gravado", zap.String("dataset", dataset), zap.Int("bytes", len(doc)))
			return nil
		})
	}
	return g.Wait()
}
