package admin_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gobishoftu/site/backend/internal/admin"
	"github.com/gobishoftu/site/backend/internal/domain"
	"github.com/gobishoftu/site/backend/internal/repo/memory"
)

const testCode = "letmein"

// mockStore is a hand-written test double for admin.PackageStore.
// Unset hooks fall through to a seeded in-memory store, so a test only
// overrides the call it wants to fail, block, or observe.
type mockStore struct {
	*memory.Store

	listAll func(ctx context.Context) ([]domain.Package, error)
	create  func(ctx context.Context, draft domain.PackageDraft) (domain.Package, error)
	update  func(ctx context.Context, id string, patch domain.PackagePatch) error
	delete  func(ctx context.Context, id string) error

	creates, updates, deletes atomic.Int32
}

func newMockStore() *mockStore {
	return &mockStore{Store: memory.NewStore(memory.WithReadDelay(0))}
}

func (m *mockStore) ListAll(ctx context.Context) ([]domain.Package, error) {
	if m.listAll != nil {
		return m.listAll(ctx)
	}
	return m.Store.ListAll(ctx)
}
func (m *mockStore) Create(ctx context.Context, draft domain.PackageDraft) (domain.Package, error) {
	m.creates.Add(1)
	if m.create != nil {
		return m.create(ctx, draft)
	}
	return m.Store.Create(ctx, draft)
}
func (m *mockStore) Update(ctx context.Context, id string, patch domain.PackagePatch) error {
	m.updates.Add(1)
	if m.update != nil {
		return m.update(ctx, id, patch)
	}
	return m.Store.Update(ctx, id, patch)
}
func (m *mockStore) Delete(ctx context.Context, id string) error {
	m.deletes.Add(1)
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return m.Store.Delete(ctx, id)
}

// compile-time check: mockStore must satisfy admin.PackageStore.
var _ admin.PackageStore = (*mockStore)(nil)

// loggedIn returns a Ready session over store.
func loggedIn(t *testing.T, store admin.PackageStore) *admin.Session {
	t.Helper()
	s := admin.NewSession(store, admin.Options{AccessCode: testCode})
	require.NoError(t, s.Login(context.Background(), testCode))
	require.Equal(t, admin.StateReady, s.State())
	return s
}

func ids(pkgs []domain.Package) []string {
	out := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.ID)
	}
	return out
}

func strPtr(s string) *string { return &s }
