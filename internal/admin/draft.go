package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/gobishoftu/site/backend/internal/domain"
)

// FeatureList selects which feature list of the draft an edit targets.
type FeatureList string

const (
	FeaturesEnglish FeatureList = "en"
	FeaturesAmharic FeatureList = "am"
)

// ParseFeatureList maps a path segment to a FeatureList.
func ParseFeatureList(s string) (FeatureList, error) {
	switch l := FeatureList(s); l {
	case FeaturesEnglish, FeaturesAmharic:
		return l, nil
	default:
		return "", fmt.Errorf("%w: unknown feature list %q", domain.ErrValidation, s)
	}
}

// NewDraft opens the edit surface with an empty draft for a new package.
func (s *Session) NewDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoggedOut {
		return fmt.Errorf("admin.Session.NewDraft: %w", ErrLoggedOut)
	}
	if s.submitting {
		return fmt.Errorf("admin.Session.NewDraft: %w", ErrBusy)
	}
	s.editing = true
	s.draftID = ""
	s.draft = domain.PackageDraft{Features: []string{}}
	return nil
}

// EditDraft opens the edit surface with a copy of the cached package id.
func (s *Session) EditDraft(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoggedOut {
		return fmt.Errorf("admin.Session.EditDraft: %w", ErrLoggedOut)
	}
	if s.submitting {
		return fmt.Errorf("admin.Session.EditDraft: %w", ErrBusy)
	}
	p, ok := s.find(id)
	if !ok {
		return fmt.Errorf("admin.Session.EditDraft %s: %w", id, domain.ErrNotFound)
	}
	s.editing = true
	s.draftID = id
	s.draft = p.PackageDraft.Clone()
	if s.draft.Features == nil {
		s.draft.Features = []string{}
	}
	return nil
}

// PatchDraft merges field edits into the open draft. Nothing is persisted.
func (s *Session) PatchDraft(patch domain.PackagePatch) error {
	return s.withDraft("admin.Session.PatchDraft", func(d *domain.PackageDraft) error {
		patch.Apply(d)
		return nil
	})
}

// AddFeature appends an entry to one of the draft's feature lists.
func (s *Session) AddFeature(list FeatureList, text string) error {
	return s.withFeatures("admin.Session.AddFeature", list, func(f []string) ([]string, error) {
		return append(f, text), nil
	})
}

// SetFeature replaces entry i of a feature list.
func (s *Session) SetFeature(list FeatureList, i int, text string) error {
	return s.withFeatures("admin.Session.SetFeature", list, func(f []string) ([]string, error) {
		if i < 0 || i >= len(f) {
			return nil, fmt.Errorf("%w: feature index %d out of range", domain.ErrValidation, i)
		}
		f[i] = text
		return f, nil
	})
}

// RemoveFeature deletes entry i of a feature list.
func (s *Session) RemoveFeature(list FeatureList, i int) error {
	return s.withFeatures("admin.Session.RemoveFeature", list, func(f []string) ([]string, error) {
		if i < 0 || i >= len(f) {
			return nil, fmt.Errorf("%w: feature index %d out of range", domain.ErrValidation, i)
		}
		return append(f[:i], f[i+1:]...), nil
	})
}

// CancelDraft closes the edit surface, discarding the draft.
func (s *Session) CancelDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.submitting {
		s.closeDraft()
	}
}

// Submit validates the draft and persists it: Update when it was opened from
// an existing package, Create otherwise. On success the edit surface closes
// and the package list is re-fetched from the store. On any failure the draft
// stays open and unchanged so the admin can correct and retry.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateLoggedOut {
		s.mu.Unlock()
		return fmt.Errorf("admin.Session.Submit: %w", ErrLoggedOut)
	}
	if !s.editing {
		s.mu.Unlock()
		return fmt.Errorf("admin.Session.Submit: %w", ErrNoDraft)
	}
	if s.submitting || s.inFlight != "" {
		s.mu.Unlock()
		return fmt.Errorf("admin.Session.Submit: %w", ErrBusy)
	}
	draft, id, epoch := s.draft.Clone(), s.draftID, s.epoch
	if err := validateDraft(draft); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("admin.Session.Submit: %w", err)
	}
	s.submitting = true
	s.mu.Unlock()

	cctx, cancel := s.withTimeout(ctx)
	var err error
	if id != "" {
		err = s.store.Update(cctx, id, draft.Patch())
	} else {
		_, err = s.store.Create(cctx, draft)
	}
	cancel()

	s.mu.Lock()
	s.submitting = false
	if epoch != s.epoch {
		s.mu.Unlock()
		return fmt.Errorf("admin.Session.Submit: %w", ErrLoggedOut)
	}
	if err != nil {
		s.mu.Unlock()
		s.logger.ErrorContext(ctx, "save package failed", "id", id, "error", err)
		return fmt.Errorf("admin.Session.Submit: %w", err)
	}
	s.closeDraft()
	s.state = StateLoading
	s.mu.Unlock()

	if id == "" {
		s.logger.InfoContext(ctx, "package created", "title", draft.Title)
	} else {
		s.logger.InfoContext(ctx, "package updated", "id", id)
	}

	// The save already succeeded; a failed re-fetch is surfaced as LoadError.
	if err := s.load(ctx, epoch); err != nil {
		s.logger.WarnContext(ctx, "refresh after save failed", "error", err)
	}
	return nil
}

// validateDraft enforces the fields every package must carry.
func validateDraft(d domain.PackageDraft) error {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	case strings.TrimSpace(d.Description) == "":
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	case strings.TrimSpace(d.Image) == "":
		return fmt.Errorf("%w: image is required", domain.ErrValidation)
	}
	return nil
}

// withDraft runs fn against the open draft under the session lock.
func (s *Session) withDraft(op string, fn func(d *domain.PackageDraft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoggedOut {
		return fmt.Errorf("%s: %w", op, ErrLoggedOut)
	}
	if !s.editing {
		return fmt.Errorf("%s: %w", op, ErrNoDraft)
	}
	if s.submitting {
		return fmt.Errorf("%s: %w", op, ErrBusy)
	}
	if err := fn(&s.draft); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Session) withFeatures(op string, list FeatureList, fn func([]string) ([]string, error)) error {
	return s.withDraft(op, func(d *domain.PackageDraft) error {
		target := &d.Features
		switch list {
		case FeaturesEnglish:
		case FeaturesAmharic:
			target = &d.FeaturesAm
		default:
			return fmt.Errorf("%w: unknown feature list %q", domain.ErrValidation, list)
		}
		out, err := fn(*target)
		if err != nil {
			return err
		}
		*target = out
		return nil
	})
}

// closeDraft resets the edit surface. Callers must hold s.mu.
func (s *Session) closeDraft() {
	s.editing = false
	s.draftID = ""
	s.draft = domain.PackageDraft{}
}
