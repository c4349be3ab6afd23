package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joebaillie21/daycipe.io/internal/model"
)

// ReportRepo is an append-only log of abuse reports. Nothing in the
// scoring core reads it back.
type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

const reportCols = "id, content_kind, content_id, substance, created_at"

// Create appends a report and returns its id.
func (r *ReportRepo) Create(ctx context.Context, kind model.Kind, contentID int64, substance string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO reports (content_kind, content_id, substance)
		VALUES ($1, $2, $3) RETURNING id`,
		string(kind), contentID, substance).Scan(&id)
	return id, err
}

// List returns every report, oldest first.
func (r *ReportRepo) List(ctx context.Context) ([]model.Report, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+reportCols+` FROM reports ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

// ListForContent returns all reports filed against one content item.
func (r *ReportRepo) ListForContent(ctx context.Context, kind model.Kind, contentID int64) ([]model.Report, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reportCols+` FROM reports
		WHERE content_kind = $1 AND content_id = $2
		ORDER BY id`,
		string(kind), contentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

// Count returns the total number of reports.
func (r *ReportRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reports`).Scan(&n)
	return n, err
}

func scanReports(rows pgx.Rows) ([]model.Report, error) {
	var reports []model.Report
	for rows.Next() {
		var rep model.Report
		var kind string
		if err := rows.Scan(&rep.ID, &kind, &rep.ContentID, &rep.Substance, &rep.CreatedAt); err != nil {
			return nil, err
		}
		rep.Kind = model.Kind(kind)
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}
