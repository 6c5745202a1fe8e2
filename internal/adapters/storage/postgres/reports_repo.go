package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/domain/reports"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
)

const activeLostConstraint = "lost_reports_one_active_per_pet"

type ReportsRepo struct {
	db *sqlx.DB
}

var (
	_ reports.Repository      = (*ReportsRepo)(nil)
	_ reports.ImageRepository = (*ReportsRepo)(nil)
)

func NewReportsRepo(db *sql.DB) *ReportsRepo {
	return &ReportsRepo{db: wrap(db)}
}

type lostRow struct {
	ID               string       `db:"id"`
	OwnerID          string       `db:"owner_id"`
	PetID            string       `db:"pet_id"`
	LastSeenLocation string       `db:"last_seen_location"`
	LastSeenDate     time.Time    `db:"last_seen_date"`
	Color            string       `db:"color"`
	Size             string       `db:"size"`
	Description      string       `db:"description"`
	Status           string       `db:"status"`
	CreatedAt        time.Time    `db:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at"`
	ResolvedAt       sql.NullTime `db:"resolved_at"`

	// LEFT JOIN pets: nulos si la mascota ya no existe
	PetRowID   sql.NullString `db:"p_id"`
	PetName    sql.NullString `db:"p_name"`
	PetSpecies sql.NullString `db:"p_species"`
	PetBreed   sql.NullString `db:"p_breed"`
}

func (r lostRow) toDomain() reports.LostReport {
	out := reports.LostReport{
		ID:               r.ID,
		OwnerID:          r.OwnerID,
		PetID:            r.PetID,
		LastSeenLocation: r.LastSeenLocation,
		LastSeenDate:     r.LastSeenDate,
		Color:            r.Color,
		Size:             reports.Size(r.Size),
		Description:      r.Description,
		Status:           reports.Status(r.Status),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		ResolvedAt:       timePtr(r.ResolvedAt),
	}
	if r.PetRowID.Valid {
		out.Pet = &reports.PetProfile{
			ID:      r.PetRowID.String,
			Name:    r.PetName.String,
			Species: pets.Species(r.PetSpecies.String),
			Breed:   r.PetBreed.String,
		}
	}
	return out
}

type foundRow struct {
	ID            string       `db:"id"`
	ReporterID    string       `db:"reporter_id"`
	Species       string       `db:"species"`
	Breed         string       `db:"breed"`
	Color         string       `db:"color"`
	Size          string       `db:"size"`
	Description   string       `db:"description"`
	LocationFound string       `db:"location_found"`
	DateFound     time.Time    `db:"date_found"`
	ContactPhone  string       `db:"contact_phone"`
	ContactEmail  string       `db:"contact_email"`
	Status        string       `db:"status"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
	ResolvedAt    sql.NullTime `db:"resolved_at"`
}

func (r foundRow) toDomain() reports.FoundReport {
	return reports.FoundReport{
		ID:            r.ID,
		ReporterID:    r.ReporterID,
		Species:       pets.Species(r.Species),
		Breed:         r.Breed,
		Color:         r.Color,
		Size:          reports.Size(r.Size),
		Description:   r.Description,
		LocationFound: r.LocationFound,
		DateFound:     r.DateFound,
		ContactPhone:  r.ContactPhone,
		ContactEmail:  r.ContactEmail,
		Status:        reports.Status(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		ResolvedAt:    timePtr(r.ResolvedAt),
	}
}

var lostSelectCols = []string{
	"l.id", "l.owner_id", "l.pet_id", "l.last_seen_location", "l.last_seen_date",
	"l.color", "l.size", "l.description", "l.status",
	"l.created_at", "l.updated_at", "l.resolved_at",
	"p.id AS p_id", "p.name AS p_name", "p.species AS p_species", "p.breed AS p_breed",
}

var foundSelectCols = []string{
	"id", "reporter_id", "species", "breed", "color", "size", "description",
	"location_found", "date_found", "contact_phone", "contact_email", "status",
	"created_at", "updated_at", "resolved_at",
}

func newLostSelect() *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(lostSelectCols...)
	sb.From("lost_reports l")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "pets p", "p.id = l.pet_id")
	return sb
}

func newFoundSelect() *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(foundSelectCols...)
	sb.From("found_reports")
	return sb
}

func (r *ReportsRepo) CreateLost(ctx context.Context, lr reports.LostReport) error {
	ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ib.InsertInto("lost_reports")
	ib.Cols("id", "owner_id", "pet_id", "last_seen_location", "last_seen_date", "color", "size",
		"description", "status", "created_at", "updated_at", "resolved_at")
	ib.Values(lr.ID, lr.OwnerID, lr.PetID, lr.LastSeenLocation, lr.LastSeenDate, lr.Color, string(lr.Size),
		lr.Description, string(lr.Status), lr.CreatedAt, lr.UpdatedAt, nullTime(lr.ResolvedAt))

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, activeLostConstraint) {
			return reports.ErrDuplicateActiveLost
		}
		return err
	}
	return nil
}

func (r *ReportsRepo) CreateFound(ctx context.Context, fr reports.FoundReport) error {
	ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ib.InsertInto("found_reports")
	ib.Cols(foundSelectCols...)
	ib.Values(fr.ID, fr.ReporterID, string(fr.Species), fr.Breed, fr.Color, string(fr.Size), fr.Description,
		fr.LocationFound, fr.DateFound, fr.ContactPhone, fr.ContactEmail, string(fr.Status),
		fr.CreatedAt, fr.UpdatedAt, nullTime(fr.ResolvedAt))

	query, args := ib.Build()
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *ReportsRepo) GetLost(ctx context.Context, id string) (reports.LostReport, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reports.LostReport{}, reports.ErrNotFound
	}

	sb := newLostSelect()
	sb.Where(sb.Equal("l.id", id))
	query, args := sb.Build()

	var row lostRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reports.LostReport{}, reports.ErrNotFound
		}
		return reports.LostReport{}, err
	}
	return row.toDomain(), nil
}

func (r *ReportsRepo) GetFound(ctx context.Context, id string) (reports.FoundReport, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reports.FoundReport{}, reports.ErrNotFound
	}

	sb := newFoundSelect()
	sb.Where(sb.Equal("id", id))
	query, args := sb.Build()

	var row foundRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reports.FoundReport{}, reports.ErrNotFound
		}
		return reports.FoundReport{}, err
	}
	return row.toDomain(), nil
}

func (r *ReportsRepo) ListLost(ctx context.Context, f reports.LostFilter) ([]reports.LostReport, error) {
	sb := newLostSelect()

	if f.OwnerID != "" {
		sb.Where(sb.Equal("l.owner_id", f.OwnerID))
	}
	if f.Status != "" {
		sb.Where(sb.Equal("l.status", string(f.Status)))
	}
	if f.Species != "" {
		sb.Where(sb.Equal("p.species", string(f.Species)))
	}
	if f.Breed != "" {
		sb.Where(sb.ILike("p.breed", likePattern(f.Breed)))
	}
	if f.Location != "" {
		sb.Where(sb.ILike("l.last_seen_location", likePattern(f.Location)))
	}
	if f.Search != "" {
		pat := likePattern(f.Search)
		sb.Where(sb.Or(
			sb.ILike("p.name", pat),
			sb.ILike("p.breed", pat),
			sb.ILike("l.description", pat),
		))
	}
	if f.ResolvedBefore != nil {
		sb.Where(sb.LessThan("l.resolved_at", *f.ResolvedBefore))
	}
	sb.OrderBy("l.created_at DESC", "l.id")

	return r.selectLost(ctx, sb)
}

func (r *ReportsRepo) ListFound(ctx context.Context, f reports.FoundFilter) ([]reports.FoundReport, error) {
	sb := newFoundSelect()

	if f.Status != "" {
		if f.VisibleTo != "" {
			sb.Where(sb.Or(sb.Equal("status", string(f.Status)), sb.Equal("reporter_id", f.VisibleTo)))
		} else {
			sb.Where(sb.Equal("status", string(f.Status)))
		}
	}
	if f.ReporterID != "" {
		sb.Where(sb.Equal("reporter_id", f.ReporterID))
	}
	if f.Species != "" {
		sb.Where(sb.Equal("species", string(f.Species)))
	}
	if f.Breed != "" {
		sb.Where(sb.ILike("breed", likePattern(f.Breed)))
	}
	if f.Color != "" {
		sb.Where(sb.ILike("color", likePattern(f.Color)))
	}
	if f.Location != "" {
		sb.Where(sb.ILike("location_found", likePattern(f.Location)))
	}
	if f.Search != "" {
		pat := likePattern(f.Search)
		sb.Where(sb.Or(sb.ILike("description", pat), sb.ILike("breed", pat)))
	}
	if f.ResolvedBefore != nil {
		sb.Where(sb.LessThan("resolved_at", *f.ResolvedBefore))
	}
	sb.OrderBy("created_at DESC", "id")

	return r.selectFound(ctx, sb)
}

// ListActiveLostBySpecies: orden de creación (es el orden de desempate del finder).
func (r *ReportsRepo) ListActiveLostBySpecies(ctx context.Context, species pets.Species, excludeOwnerID string) ([]reports.LostReport, error) {
	sb := newLostSelect()
	sb.Where(
		sb.Equal("l.status", string(reports.StatusActive)),
		sb.Equal("p.species", string(species)),
	)
	if excludeOwnerID != "" {
		sb.Where(sb.NotEqual("l.owner_id", excludeOwnerID))
	}
	sb.OrderBy("l.created_at ASC", "l.id")

	return r.selectLost(ctx, sb)
}

func (r *ReportsRepo) ListActiveFoundBySpecies(ctx context.Context, species pets.Species, excludeReporterID string) ([]reports.FoundReport, error) {
	sb := newFoundSelect()
	sb.Where(
		sb.Equal("status", string(reports.StatusActive)),
		sb.Equal("species", string(species)),
	)
	if excludeReporterID != "" {
		sb.Where(sb.NotEqual("reporter_id", excludeReporterID))
	}
	sb.OrderBy("created_at ASC", "id")

	return r.selectFound(ctx, sb)
}

func (r *ReportsRepo) SetLostStatus(ctx context.Context, id string, status reports.Status, at time.Time) error {
	return setStatus(ctx, r.db, "lost_reports", id, status, at)
}

func (r *ReportsRepo) SetFoundStatus(ctx context.Context, id string, status reports.Status, at time.Time) error {
	return setStatus(ctx, r.db, "found_reports", id, status, at)
}

// setStatus también lo usa el repo de matches dentro de su transacción.
// El UPDATE solo aplica si el estado actual admite la transición.
func setStatus(ctx context.Context, db sqlx.ExtContext, table, id string, status reports.Status, at time.Time) error {
	sources := reports.SourcesOf(status)
	from := make([]any, 0, len(sources))
	for _, s := range sources {
		from = append(from, string(s))
	}
	if len(from) == 0 {
		return reports.ErrStatusChanged
	}

	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update(table)
	assignments := []string{
		ub.Assign("status", string(status)),
		ub.Assign("updated_at", at),
	}
	if status == reports.StatusResolved {
		assignments = append(assignments, ub.Assign("resolved_at", at))
	}
	ub.Set(assignments...)
	ub.Where(ub.Equal("id", id), ub.In("status", from...))

	query, args := ub.Build()
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	var current string
	err = sqlx.GetContext(ctx, db, &current, `SELECT status FROM `+table+` WHERE id = $1`, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return reports.ErrNotFound
	case err != nil:
		return err
	case reports.Status(current) == status:
		return nil
	default:
		return reports.ErrStatusChanged
	}
}

type imageRow struct {
	ID          string    `db:"id"`
	ReportKind  string    `db:"report_kind"`
	ReportID    string    `db:"report_id"`
	ObjectKey   string    `db:"object_key"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	IsPrimary   bool      `db:"is_primary"`
	CreatedAt   time.Time `db:"created_at"`
}

// AddImage: si es principal, desmarca la anterior en la misma transacción.
func (r *ReportsRepo) AddImage(ctx context.Context, img reports.Image) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if img.IsPrimary {
		if _, err := tx.ExecContext(ctx, `
			UPDATE report_images SET is_primary = FALSE
			WHERE report_kind = $1 AND report_id = $2 AND is_primary
		`, string(img.Kind), img.ReportID); err != nil {
			return err
		}
	}

	ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ib.InsertInto("report_images")
	ib.Cols("id", "report_kind", "report_id", "object_key", "content_type", "size_bytes", "is_primary", "created_at")
	ib.Values(img.ID, string(img.Kind), img.ReportID, img.ObjectKey, img.ContentType, img.Size, img.IsPrimary, img.CreatedAt)
	query, args := ib.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ReportsRepo) ListImages(ctx context.Context, kind reports.Kind, reportID string) ([]reports.Image, error) {
	var rows []imageRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, report_kind, report_id, object_key, content_type, size_bytes, is_primary, created_at
		FROM report_images
		WHERE report_kind = $1 AND report_id = $2
		ORDER BY is_primary DESC, created_at ASC, id ASC
	`, string(kind), reportID)
	if err != nil {
		return nil, err
	}

	out := make([]reports.Image, 0, len(rows))
	for _, row := range rows {
		out = append(out, reports.Image{
			ID:          row.ID,
			Kind:        reports.Kind(row.ReportKind),
			ReportID:    row.ReportID,
			ObjectKey:   row.ObjectKey,
			ContentType: row.ContentType,
			Size:        row.SizeBytes,
			IsPrimary:   row.IsPrimary,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out, nil
}

func (r *ReportsRepo) DeleteImage(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM report_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reports.ErrNotFound
	}
	return nil
}

func (r *ReportsRepo) selectLost(ctx context.Context, sb *sqlbuilder.SelectBuilder) ([]reports.LostReport, error) {
	query, args := sb.Build()
	var rows []lostRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]reports.LostReport, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ReportsRepo) selectFound(ctx context.Context, sb *sqlbuilder.SelectBuilder) ([]reports.FoundReport, error) {
	query, args := sb.Build()
	var rows []foundRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]reports.FoundReport, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// likePattern escapa comodines para ILIKE '%...%'.
func likePattern(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
