package admin

import (
	"context"
	"slices"
	"sync"
)

// optimistic applies change to a copy of *list immediately, runs remote with
// mu released, and restores the exact pre-change list if remote fails.
//
// When *version moved while remote ran the list was replaced since (a reload,
// a logout). A failure then skips the restore because the snapshot is stale,
// and a success applies change again to the replacement list.
// Callers hold mu on entry; it is held again on return.
func optimistic[T any](
	ctx context.Context,
	mu sync.Locker,
	list *[]T,
	version *uint64,
	change func([]T) []T,
	remote func(context.Context) error,
) error {
	snapshot := *list
	*list = change(slices.Clone(snapshot))
	*version++
	applied := *version

	mu.Unlock()
	err := remote(ctx)
	mu.Lock()

	switch {
	case *version == applied:
		if err != nil {
			*list = snapshot
			*version++
		}
	case err == nil:
		*list = change(slices.Clone(*list))
		*version++
	}
	return err
}
