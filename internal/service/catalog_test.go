package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobishoftu/site/backend/internal/domain"
	"github.com/gobishoftu/site/backend/internal/repo"
	"github.com/gobishoftu/site/backend/internal/service"
)

// ---- mock repos ------------------------------------------------------------

// mockPackageRepo is a hand-written test double for repo.PackageRepo.
type mockPackageRepo struct {
	listAll    func(ctx context.Context) ([]domain.Package, error)
	listActive func(ctx context.Context) ([]domain.Package, error)
	create     func(ctx context.Context, d domain.PackageDraft) (domain.Package, error)
	update     func(ctx context.Context, id string, p domain.PackagePatch) error
	delete     func(ctx context.Context, id string) error
}

func (m *mockPackageRepo) ListAll(ctx context.Context) ([]domain.Package, error) {
	return m.listAll(ctx)
}
func (m *mockPackageRepo) ListActive(ctx context.Context) ([]domain.Package, error) {
	return m.listActive(ctx)
}
func (m *mockPackageRepo) Create(ctx context.Context, d domain.PackageDraft) (domain.Package, error) {
	return m.create(ctx, d)
}
func (m *mockPackageRepo) Update(ctx context.Context, id string, p domain.PackagePatch) error {
	return m.update(ctx, id, p)
}
func (m *mockPackageRepo) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

// compile-time check: mockPackageRepo must satisfy repo.PackageRepo.
var _ repo.PackageRepo = (*mockPackageRepo)(nil)

// ---- ListActive ------------------------------------------------------------

func activePackages() []domain.Package {
	return []domain.Package{
		{
			ID: "a",
			PackageDraft: domain.PackageDraft{
				Title:      "Lake Hora",
				TitleAm:    "ሆራ ሐይቅ",
				Features:   []string{"Lunch"},
				FeaturesAm: []string{"ምሳ"},
				IsActive:   true,
			},
		},
		{
			ID: "b",
			PackageDraft: domain.PackageDraft{
				Title:       "Crater Loop",
				Description: "Three lakes.",
				IsActive:    true,
			},
		},
	}
}

func TestCatalogService_ListActive_Localizes(t *testing.T) {
	svc := service.NewCatalogService(&mockPackageRepo{
		listActive: func(context.Context) ([]domain.Package, error) { return activePackages(), nil },
	}, 0)

	got, err := svc.ListActive(context.Background(), domain.Amharic)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ሆራ ሐይቅ", got[0].Title)
	assert.Equal(t, []string{"ምሳ"}, got[0].Features)
	assert.Equal(t, "Crater Loop", got[1].Title, "empty _am field falls back")
	assert.Equal(t, "Three lakes.", got[1].FullDescription)
	assert.NotNil(t, got[1].Features)
}

func TestCatalogService_ListActive_EmptyIsNonNil(t *testing.T) {
	svc := service.NewCatalogService(&mockPackageRepo{
		listActive: func(context.Context) ([]domain.Package, error) { return nil, nil },
	}, 0)

	got, err := svc.ListActive(context.Background(), domain.English)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCatalogService_ListActive_Error(t *testing.T) {
	svc := service.NewCatalogService(&mockPackageRepo{
		listActive: func(context.Context) ([]domain.Package, error) {
			return nil, errors.Join(domain.ErrStoreUnavailable, errors.New("dial tcp: refused"))
		},
	}, 0)

	_, err := svc.ListActive(context.Background(), domain.English)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestCatalogService_ListActive_AppliesTimeout(t *testing.T) {
	svc := service.NewCatalogService(&mockPackageRepo{
		listActive: func(ctx context.Context) ([]domain.Package, error) {
			_, ok := ctx.Deadline()
			assert.True(t, ok, "store call must carry a deadline")
			return nil, nil
		},
	}, time.Second)

	_, err := svc.ListActive(context.Background(), domain.English)

	assert.NoError(t, err)
}
