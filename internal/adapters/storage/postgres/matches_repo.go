package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-lost-found/internal/domain/matching"
	"pet-lost-found/internal/domain/reports"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
)

type MatchesRepo struct {
	db *sqlx.DB
}

var _ matching.Repository = (*MatchesRepo)(nil)

func NewMatchesRepo(db *sql.DB) *MatchesRepo {
	return &MatchesRepo{db: wrap(db)}
}

type matchRow struct {
	ID                   string       `db:"id"`
	LostReportID         string       `db:"lost_report_id"`
	FoundReportID        string       `db:"found_report_id"`
	Score                float64      `db:"match_score"`
	Reasons              string       `db:"match_reasons"`
	Status               string       `db:"status"`
	ConfirmedByLostOwner bool         `db:"confirmed_by_lost_owner"`
	ConfirmedByFinder    bool         `db:"confirmed_by_finder"`
	CreatedAt            time.Time    `db:"created_at"`
	UpdatedAt            time.Time    `db:"updated_at"`
	ResolvedAt           sql.NullTime `db:"resolved_at"`
}

func (r matchRow) toDomain() matching.Match {
	return matching.Match{
		ID:                   r.ID,
		LostReportID:         r.LostReportID,
		FoundReportID:        r.FoundReportID,
		Score:                r.Score,
		Reasons:              matching.SplitReasons(r.Reasons),
		Status:               matching.Status(r.Status),
		ConfirmedByLostOwner: r.ConfirmedByLostOwner,
		ConfirmedByFinder:    r.ConfirmedByFinder,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
		ResolvedAt:           timePtr(r.ResolvedAt),
	}
}

var matchCols = []string{
	"id", "lost_report_id", "found_report_id", "match_score", "match_reasons", "status",
	"confirmed_by_lost_owner", "confirmed_by_finder", "created_at", "updated_at", "resolved_at",
}

func qualified(prefix string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = prefix + "." + c
	}
	return out
}

// Upsert es un único INSERT ... ON CONFLICT: dos triggers concurrentes sobre el mismo par
// terminan en una sola fila. (xmax = 0) distingue insert de update.
func (r *MatchesRepo) Upsert(ctx context.Context, m matching.Match) (matching.Match, bool, error) {
	ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ib.InsertInto("matches")
	ib.Cols(matchCols...)
	ib.Values(m.ID, m.LostReportID, m.FoundReportID, m.Score, matching.JoinReasons(m.Reasons), string(m.Status),
		m.ConfirmedByLostOwner, m.ConfirmedByFinder, m.CreatedAt, m.UpdatedAt, nullTime(m.ResolvedAt))

	query, args := ib.Build()
	query += ` ON CONFLICT (lost_report_id, found_report_id) DO UPDATE SET
		match_score = EXCLUDED.match_score,
		match_reasons = EXCLUDED.match_reasons,
		updated_at = EXCLUDED.updated_at
	RETURNING ` + strings.Join(matchCols, ", ") + `, (xmax = 0) AS created`

	var row struct {
		matchRow
		Created bool `db:"created"`
	}
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return matching.Match{}, false, fmt.Errorf("upsert match: %w", err)
	}
	return row.toDomain(), row.Created, nil
}

func (r *MatchesRepo) GetByID(ctx context.Context, id string) (matching.Match, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return matching.Match{}, matching.ErrNotFound
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(matchCols...).From("matches").Where(sb.Equal("id", id))
	query, args := sb.Build()

	var row matchRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matching.Match{}, matching.ErrNotFound
		}
		return matching.Match{}, err
	}
	return row.toDomain(), nil
}

func (r *MatchesRepo) Exists(ctx context.Context, lostReportID, foundReportID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM matches WHERE lost_report_id = $1 AND found_report_id = $2
		)
	`, lostReportID, foundReportID)
	return exists, err
}

func (r *MatchesRepo) ListByParty(ctx context.Context, userID string) ([]matching.Match, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(qualified("m", matchCols)...)
	sb.From("matches m")
	sb.Join("lost_reports l", "l.id = m.lost_report_id")
	sb.Join("found_reports f", "f.id = m.found_report_id")
	sb.Where(sb.Or(sb.Equal("l.owner_id", userID), sb.Equal("f.reporter_id", userID)))
	sb.OrderBy("m.match_score DESC", "m.created_at DESC", "m.id")

	query, args := sb.Build()
	var rows []matchRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]matching.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchesRepo) MatchedFoundIDs(ctx context.Context, lostReportID string) (map[string]struct{}, error) {
	return r.linkedIDs(ctx, `SELECT found_report_id FROM matches WHERE lost_report_id = $1`, lostReportID)
}

func (r *MatchesRepo) MatchedLostIDs(ctx context.Context, foundReportID string) (map[string]struct{}, error) {
	return r.linkedIDs(ctx, `SELECT lost_report_id FROM matches WHERE found_report_id = $1`, foundReportID)
}

func (r *MatchesRepo) linkedIDs(ctx context.Context, query, id string) (map[string]struct{}, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, id); err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(ids))
	for _, v := range ids {
		out[v] = struct{}{}
	}
	return out, nil
}

// Mutate toma la fila con FOR UPDATE, aplica fn y guarda. Si el match pasa a resolved,
// los dos reportes se resuelven en la misma transacción.
func (r *MatchesRepo) Mutate(ctx context.Context, id string, fn matching.MutateFunc) (matching.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return matching.Match{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var row matchRow
	err = tx.GetContext(ctx, &row, `SELECT `+strings.Join(matchCols, ", ")+` FROM matches WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matching.Match{}, matching.ErrNotFound
		}
		return matching.Match{}, err
	}

	cur := row.toDomain()
	next := row.toDomain()
	if err := fn(&next); err != nil {
		return matching.Match{}, err
	}

	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("matches")
	ub.Set(
		ub.Assign("match_score", next.Score),
		ub.Assign("match_reasons", matching.JoinReasons(next.Reasons)),
		ub.Assign("status", string(next.Status)),
		ub.Assign("confirmed_by_lost_owner", next.ConfirmedByLostOwner),
		ub.Assign("confirmed_by_finder", next.ConfirmedByFinder),
		ub.Assign("updated_at", next.UpdatedAt),
		ub.Assign("resolved_at", nullTime(next.ResolvedAt)),
	)
	ub.Where(ub.Equal("id", cur.ID))
	query, args := ub.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return matching.Match{}, err
	}

	if next.Status == matching.StatusResolved && cur.Status != matching.StatusResolved {
		at := next.UpdatedAt
		if next.ResolvedAt != nil {
			at = *next.ResolvedAt
		}
		// un reporte ya cancelado queda como está
		if err := setStatus(ctx, tx, "lost_reports", cur.LostReportID, reports.StatusResolved, at); err != nil && !errors.Is(err, reports.ErrBadState) {
			return matching.Match{}, fmt.Errorf("resolve lost report: %w", err)
		}
		if err := setStatus(ctx, tx, "found_reports", cur.FoundReportID, reports.StatusResolved, at); err != nil && !errors.Is(err, reports.ErrBadState) {
			return matching.Match{}, fmt.Errorf("resolve found report: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return matching.Match{}, err
	}

	next.ID = cur.ID
	next.LostReportID = cur.LostReportID
	next.FoundReportID = cur.FoundReportID
	return next, nil
}
