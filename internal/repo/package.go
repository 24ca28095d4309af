package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gobishoftu/site/backend/internal/domain"
)

// PackageRepo defines the persistence operations for Packages.
// Callers depend on this interface, not the concrete Postgres implementation,
// which allows the admin controller to be unit-tested with a double.
type PackageRepo interface {
	// ListAll returns every package ordered by created_at descending.
	ListAll(ctx context.Context) ([]domain.Package, error)

	// ListActive returns only packages with is_active = true, ordered by
	// created_at descending. No active packages yields an empty slice.
	ListActive(ctx context.Context) ([]domain.Package, error)

	// Create inserts a new package and returns the persisted record with the
	// store-generated id and created_at populated.
	Create(ctx context.Context, draft domain.PackageDraft) (domain.Package, error)

	// Update merges the non-nil fields of patch into the package with the given id.
	// Returns domain.ErrNotFound if no row was updated.
	Update(ctx context.Context, id string, patch domain.PackagePatch) error

	// Delete removes a package by id. Returns domain.ErrDeleteBlocked when the
	// statement succeeds but removes no row.
	Delete(ctx context.Context, id string) error
}

// pgPackageRepo is the Postgres implementation of PackageRepo.
type pgPackageRepo struct {
	db db
}

// NewPackageRepo constructs a PackageRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPackageRepo(db db) PackageRepo {
	return &pgPackageRepo{db: db}
}

const packageColumns = `id, title, title_am, description, description_am,
	full_description, full_description_am, features, features_am, image,
	duration, duration_am, date, price, start_time, end_time, is_active, created_at`

// ListAll returns every package, newest first.
func (r *pgPackageRepo) ListAll(ctx context.Context) (_ []domain.Package, err error) {
	ctx, span := tracer.Start(ctx, "PackageRepo.ListAll")
	defer func() { finish(span, err) }()

	const q = `SELECT ` + packageColumns + ` FROM packages ORDER BY created_at DESC`
	return r.list(ctx, "repo.PackageRepo.ListAll", q)
}

// ListActive returns active packages, newest first. The filter runs in SQL.
func (r *pgPackageRepo) ListActive(ctx context.Context) (_ []domain.Package, err error) {
	ctx, span := tracer.Start(ctx, "PackageRepo.ListActive")
	defer func() { finish(span, err) }()

	const q = `SELECT ` + packageColumns + ` FROM packages WHERE is_active ORDER BY created_at DESC`
	return r.list(ctx, "repo.PackageRepo.ListActive", q)
}

func (r *pgPackageRepo) list(ctx context.Context, op, q string) ([]domain.Package, error) {
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer rows.Close()

	packages := []domain.Package{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, unavailable(op+": scan", err)
		}
		packages = append(packages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(op+": rows", err)
	}
	return packages, nil
}

// Create inserts a package row and returns the full persisted record.
func (r *pgPackageRepo) Create(ctx context.Context, draft domain.PackageDraft) (_ domain.Package, err error) {
	ctx, span := tracer.Start(ctx, "PackageRepo.Create")
	defer func() { finish(span, err) }()

	const q = `
		INSERT INTO packages (title, title_am, description, description_am,
			full_description, full_description_am, features, features_am, image,
			duration, duration_am, date, price, start_time, end_time, is_active)
		VALUES (@title, @title_am, @description, @description_am,
			@full_description, @full_description_am, @features, @features_am, @image,
			@duration, @duration_am, @date, @price, @start_time, @end_time, @is_active)
		RETURNING ` + packageColumns

	args := pgx.NamedArgs{
		"title":               draft.Title,
		"title_am":            draft.TitleAm,
		"description":         draft.Description,
		"description_am":      draft.DescriptionAm,
		"full_description":    draft.FullDescription,
		"full_description_am": draft.FullDescriptionAm,
		"features":            nonNil(draft.Features), // columns are NOT NULL text[]
		"features_am":         nonNil(draft.FeaturesAm),
		"image":               draft.Image,
		"duration":            draft.Duration,
		"duration_am":         draft.DurationAm,
		"date":                draft.Date, // nil becomes NULL
		"price":               draft.Price,
		"start_time":          draft.StartTime,
		"end_time":            draft.EndTime,
		"is_active":           draft.IsActive,
	}

	result, err := scanPackage(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Package{}, unavailable("repo.PackageRepo.Create", err)
	}
	return result, nil
}

// Update writes only the columns set in patch.
// Zero affected rows is reported as domain.ErrNotFound; with row-level
// security an UPDATE the policy rejects is indistinguishable from a missing row.
func (r *pgPackageRepo) Update(ctx context.Context, id string, patch domain.PackagePatch) (err error) {
	ctx, span := tracer.Start(ctx, "PackageRepo.Update")
	defer func() { finish(span, err) }()

	pid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("repo.PackageRepo.Update: %w", domain.ErrNotFound)
	}

	sets, args := patchAssignments(patch)
	args["id"] = pid
	if len(sets) == 0 {
		// Nothing to write; still honour the not-found contract.
		var exists bool
		const q = `SELECT EXISTS (SELECT 1 FROM packages WHERE id = @id)`
		if err := r.db.QueryRow(ctx, q, args).Scan(&exists); err != nil {
			return unavailable("repo.PackageRepo.Update", err)
		}
		if !exists {
			return fmt.Errorf("repo.PackageRepo.Update: %w", domain.ErrNotFound)
		}
		return nil
	}

	q := `UPDATE packages SET ` + strings.Join(sets, ", ") + ` WHERE id = @id`
	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return unavailable("repo.PackageRepo.Update", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PackageRepo.Update: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes a package by primary key and checks the affected-row count.
func (r *pgPackageRepo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracer.Start(ctx, "PackageRepo.Delete")
	defer func() { finish(span, err) }()

	pid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("repo.PackageRepo.Delete: %w", domain.ErrNotFound)
	}

	const q = `DELETE FROM packages WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": pid})
	if err != nil {
		return unavailable("repo.PackageRepo.Delete", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PackageRepo.Delete: %w", domain.ErrDeleteBlocked)
	}
	return nil
}

// patchAssignments builds the SET list and named args for the non-nil patch fields.
func patchAssignments(p domain.PackagePatch) ([]string, pgx.NamedArgs) {
	var sets []string
	args := pgx.NamedArgs{}
	add := func(col string, v any) {
		sets = append(sets, col+" = @"+col)
		args[col] = v
	}

	addString := func(col string, v *string) {
		if v != nil {
			add(col, *v)
		}
	}
	addString("title", p.Title)
	addString("title_am", p.TitleAm)
	addString("description", p.Description)
	addString("description_am", p.DescriptionAm)
	addString("full_description", p.FullDescription)
	addString("full_description_am", p.FullDescriptionAm)
	if p.Features != nil {
		add("features", nonNil(*p.Features))
	}
	if p.FeaturesAm != nil {
		add("features_am", nonNil(*p.FeaturesAm))
	}
	addString("image", p.Image)
	addString("duration", p.Duration)
	addString("duration_am", p.DurationAm)
	if p.Date != nil {
		add("date", *p.Date)
	}
	addString("price", p.Price)
	addString("start_time", p.StartTime)
	addString("end_time", p.EndTime)
	if p.IsActive != nil {
		add("is_active", *p.IsActive)
	}
	return sets, args
}

// scanPackage maps a single database row into a domain.Package.
// It handles the UUID and nullable date conversions.
func scanPackage(s scanner) (domain.Package, error) {
	var (
		p    domain.Package
		id   pgtype.UUID
		date pgtype.Date
	)

	err := s.Scan(&id, &p.Title, &p.TitleAm, &p.Description, &p.DescriptionAm,
		&p.FullDescription, &p.FullDescriptionAm, &p.Features, &p.FeaturesAm, &p.Image,
		&p.Duration, &p.DurationAm, &date, &p.Price, &p.StartTime, &p.EndTime,
		&p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Package{}, domain.ErrNotFound
		}
		return domain.Package{}, err
	}

	p.ID = uuid.UUID(id.Bytes).String()
	if date.Valid {
		d := date.Time
		p.Date = &d
	}
	return p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
