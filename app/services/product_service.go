// Package services holds the catalog business logic between the HTTP
// controllers and the record store.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/tokri/app/images"
	"github.com/shashiranjanraj/tokri/app/models"
	"github.com/shashiranjanraj/tokri/app/repositories"
	"github.com/shashiranjanraj/tokri/config"
	"github.com/shashiranjanraj/tokri/pkg/cache"
	"github.com/shashiranjanraj/tokri/pkg/logger"
	"github.com/shashiranjanraj/tokri/pkg/metrics"
)

// listCacheKey caches the full newest-first product list.
const listCacheKey = "products:all"

type ProductService struct {
	repo     repositories.ProductRepository
	strategy images.Strategy
	cacheTTL time.Duration
}

func NewProductService(repo repositories.ProductRepository, strategy images.Strategy) *ProductService {
	return &ProductService{
		repo:     repo,
		strategy: strategy,
		cacheTTL: config.CacheTTL(),
	}
}

// List returns all products newest first, serving from the Redis cache when
// it is warm.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if cache.Get(listCacheKey, &cached) {
		return cached, nil
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := cache.Set(listCacheKey, products, s.cacheTTL); err != nil {
		logger.WithCtx(ctx).Warn("cache list", "error", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.Get(ctx, id)
}

// Create ingests the optional image upload, then inserts the record. The
// two steps are not transactional: when the insert fails after a successful
// object write, the stored object is discarded so no orphan survives.
func (s *ProductService) Create(ctx context.Context, p *models.Product, up *images.Upload) error {
	var stored images.Stored

	if up != nil && len(up.Data) > 0 {
		var err error
		stored, err = s.strategy.Ingest(ctx, *up)
		if err != nil {
			return fmt.Errorf("ingest image: %w", err)
		}
		p.ProductImage = stored.Ref
		metrics.ImageIngested.WithLabelValues(s.strategy.Name()).Inc()
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// Compensating cleanup for the already-written image object.
		if derr := s.strategy.Discard(ctx, stored); derr != nil {
			logger.WithCtx(ctx).Error("discard orphaned image", "error", derr)
		}
		return err
	}

	s.invalidateList(ctx)
	return nil
}

func (s *ProductService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *ProductService) invalidateList(ctx context.Context) {
	if err := cache.Del(listCacheKey); err != nil {
		logger.WithCtx(ctx).Warn("cache invalidate", "error", err)
	}
}
