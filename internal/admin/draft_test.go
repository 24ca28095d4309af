package admin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobishoftu/site/backend/internal/admin"
	"github.com/gobishoftu/site/backend/internal/domain"
)

func fillDraft(t *testing.T, s *admin.Session) {
	t.Helper()
	active := true
	require.NoError(t, s.PatchDraft(domain.PackagePatch{
		Title:       strPtr("Crater Lakes Loop"),
		Description: strPtr("Three crater lakes in one day."),
		Image:       strPtr("https://example.com/crater.jpg"),
		Price:       strPtr("2,000 ETB"),
		IsActive:    &active,
	}))
}

func TestSubmit_CreateClosesDraftAndRefetches(t *testing.T) {
	store := newMockStore()
	s := loggedIn(t, store)
	require.NoError(t, s.NewDraft())
	fillDraft(t, s)

	require.NoError(t, s.Submit(context.Background()))

	snap := s.Snapshot()
	assert.False(t, snap.Editing)
	assert.Nil(t, snap.Draft)
	require.Len(t, snap.Packages, 3)
	assert.Equal(t, "Crater Lakes Loop", snap.Packages[0].Title, "new package is at the head after refetch")
	assert.NotEmpty(t, snap.Packages[0].ID)
	assert.EqualValues(t, 1, store.creates.Load())
	assert.Zero(t, store.updates.Load())
}

func TestSubmit_ValidationNeverReachesStore(t *testing.T) {
	tests := []struct {
		name  string
		patch domain.PackagePatch
		want  string
	}{
		{"missing title", domain.PackagePatch{Description: strPtr("d"), Image: strPtr("i")}, "title is required"},
		{"blank description", domain.PackagePatch{Title: strPtr("t"), Description: strPtr("   "), Image: strPtr("i")}, "description is required"},
		{"missing image", domain.PackagePatch{Title: strPtr("t"), Description: strPtr("d")}, "image is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newMockStore()
			s := loggedIn(t, store)
			require.NoError(t, s.NewDraft())
			require.NoError(t, s.PatchDraft(tc.patch))
			before := s.Snapshot().Draft

			err := s.Submit(context.Background())

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, tc.want, admin.Message(err))
			assert.Zero(t, store.creates.Load())
			snap := s.Snapshot()
			assert.True(t, snap.Editing, "draft stays open")
			assert.Equal(t, before, snap.Draft, "draft is unchanged")
		})
	}
}

func TestSubmit_UpdateSendsFullPatch(t *testing.T) {
	store := newMockStore()
	var gotID string
	var gotPatch domain.PackagePatch
	store.update = func(ctx context.Context, id string, patch domain.PackagePatch) error {
		gotID, gotPatch = id, patch
		return store.Store.Update(ctx, id, patch)
	}
	s := loggedIn(t, store)
	require.NoError(t, s.EditDraft("2"))
	require.NoError(t, s.PatchDraft(domain.PackagePatch{Title: strPtr("Renamed")}))

	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, "2", gotID)
	require.NotNil(t, gotPatch.Title)
	assert.Equal(t, "Renamed", *gotPatch.Title)
	require.NotNil(t, gotPatch.Description, "every editable field is written")
	assert.Zero(t, store.creates.Load())

	snap := s.Snapshot()
	assert.Len(t, snap.Packages, 2)
	for _, p := range snap.Packages {
		if p.ID == "2" {
			assert.Equal(t, "Renamed", p.Title)
		}
	}
}

func TestSubmit_StoreFailureKeepsDraft(t *testing.T) {
	store := newMockStore()
	store.create = func(context.Context, domain.PackageDraft) (domain.Package, error) {
		return domain.Package{}, errors.Join(domain.ErrStoreUnavailable, errors.New("permission denied"))
	}
	s := loggedIn(t, store)
	require.NoError(t, s.NewDraft())
	fillDraft(t, s)

	err := s.Submit(context.Background())

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	snap := s.Snapshot()
	assert.True(t, snap.Editing)
	assert.Equal(t, "Crater Lakes Loop", snap.Draft.Title)
	assert.Len(t, snap.Packages, 2, "cache is not touched by a failed create")
}

func TestSubmit_NoDraft(t *testing.T) {
	s := loggedIn(t, newMockStore())

	assert.ErrorIs(t, s.Submit(context.Background()), admin.ErrNoDraft)
}

func TestSubmit_ConcurrentSubmitIsBusy(t *testing.T) {
	store := newMockStore()
	started := make(chan struct{})
	release := make(chan struct{})
	store.create = func(ctx context.Context, d domain.PackageDraft) (domain.Package, error) {
		close(started)
		<-release
		return store.Store.Create(ctx, d)
	}
	s := loggedIn(t, store)
	require.NoError(t, s.NewDraft())
	fillDraft(t, s)

	done := make(chan error, 1)
	go func() { done <- s.Submit(context.Background()) }()
	<-started

	assert.ErrorIs(t, s.Submit(context.Background()), admin.ErrBusy)
	assert.ErrorIs(t, s.PatchDraft(domain.PackagePatch{Title: strPtr("x")}), admin.ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.EqualValues(t, 1, store.creates.Load())
}

func TestEditDraft_CopiesCachedPackage(t *testing.T) {
	s := loggedIn(t, newMockStore())

	require.NoError(t, s.EditDraft("1"))
	require.NoError(t, s.SetFeature(admin.FeaturesEnglish, 0, "Changed"))

	snap := s.Snapshot()
	assert.Equal(t, "1", snap.DraftID)
	assert.Equal(t, "Changed", snap.Draft.Features[0])
	assert.Equal(t, "Lakeside seating", snap.Packages[0].Features[0], "cache is not aliased by the draft")
}

func TestEditDraft_UnknownID(t *testing.T) {
	s := loggedIn(t, newMockStore())

	assert.ErrorIs(t, s.EditDraft("nope"), domain.ErrNotFound)
	assert.False(t, s.Snapshot().Editing)
}

func TestFeatures_AddSetRemove(t *testing.T) {
	s := loggedIn(t, newMockStore())
	require.NoError(t, s.NewDraft())

	require.NoError(t, s.AddFeature(admin.FeaturesEnglish, "Boat ride"))
	require.NoError(t, s.AddFeature(admin.FeaturesEnglish, "Lunch"))
	require.NoError(t, s.AddFeature(admin.FeaturesAmharic, "ምሳ"))
	require.NoError(t, s.SetFeature(admin.FeaturesEnglish, 1, "Local lunch"))
	require.NoError(t, s.RemoveFeature(admin.FeaturesEnglish, 0))

	d := s.Snapshot().Draft
	assert.Equal(t, []string{"Local lunch"}, d.Features)
	assert.Equal(t, []string{"ምሳ"}, d.FeaturesAm)
}

func TestFeatures_IndexOutOfRange(t *testing.T) {
	s := loggedIn(t, newMockStore())
	require.NoError(t, s.NewDraft())

	assert.ErrorIs(t, s.SetFeature(admin.FeaturesEnglish, 0, "x"), domain.ErrValidation)
	assert.ErrorIs(t, s.RemoveFeature(admin.FeaturesAmharic, -1), domain.ErrValidation)
	assert.ErrorIs(t, s.AddFeature("fr", "x"), domain.ErrValidation)
}

func TestParseFeatureList(t *testing.T) {
	l, err := admin.ParseFeatureList("am")
	require.NoError(t, err)
	assert.Equal(t, admin.FeaturesAmharic, l)

	_, err = admin.ParseFeatureList("de")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCancelDraft(t *testing.T) {
	s := loggedIn(t, newMockStore())
	require.NoError(t, s.NewDraft())
	fillDraft(t, s)

	s.CancelDraft()

	snap := s.Snapshot()
	assert.False(t, snap.Editing)
	assert.Nil(t, snap.Draft)
	assert.ErrorIs(t, s.PatchDraft(domain.PackagePatch{}), admin.ErrNoDraft)
}
