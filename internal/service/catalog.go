// Package service contains the public-facing business logic for the GoBishoftu API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gobishoftu/site/backend/internal/domain"
	"github.com/gobishoftu/site/backend/internal/repo"
)

// CatalogService serves the public package listing.
type CatalogService struct {
	repo    repo.PackageRepo
	timeout time.Duration
}

// NewCatalogService constructs a CatalogService backed by the provided PackageRepo.
// timeout bounds each store call; zero disables the bound.
func NewCatalogService(r repo.PackageRepo, timeout time.Duration) *CatalogService {
	return &CatalogService{repo: r, timeout: timeout}
}

// ListActive returns the active packages, newest first, localized to lang.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CatalogService) ListActive(ctx context.Context, lang domain.Language) ([]domain.LocalizedPackage, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	pkgs, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.ListActive: %w", err)
	}
	out := make([]domain.LocalizedPackage, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.Localize(lang))
	}
	return out, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
