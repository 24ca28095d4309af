package admin

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/gobishoftu/site/backend/internal/domain"
)

// DefaultMaxImageBytes caps an ingested image when Options leaves it unset.
const DefaultMaxImageBytes int64 = 2 << 20

// IngestImage reads an uploaded image and stores it in the draft's image
// field as a base64 data URI. Files whose media type is not image/* are
// rejected and the draft is left unchanged.
func (s *Session) IngestImage(mediaType string, r io.Reader) error {
	const op = "admin.Session.IngestImage"

	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil || !strings.HasPrefix(mt, "image/") {
		return fmt.Errorf("%s: %w: please upload an image file", op, domain.ErrValidation)
	}

	// Fail fast before reading the body when there is nowhere to put it.
	if err := s.withDraft(op, func(*domain.PackageDraft) error { return nil }); err != nil {
		return err
	}

	limit := s.opts.MaxImageBytes
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return fmt.Errorf("%s: read: %w", op, err)
	}
	if int64(len(data)) > limit {
		return fmt.Errorf("%s: %w: image is larger than %s", op, domain.ErrValidation, humanize.IBytes(uint64(limit)))
	}
	if len(data) == 0 {
		return fmt.Errorf("%s: %w: image file is empty", op, domain.ErrValidation)
	}

	uri := "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data)
	return s.withDraft(op, func(d *domain.PackageDraft) error {
		d.Image = uri
		return nil
	})
}
