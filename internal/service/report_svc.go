package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/joebaillie21/daycipe.io/internal/model"
)

// ReportStore is the persistence surface ReportService needs.
// *repository.ReportRepo satisfies it.
type ReportStore interface {
	Create(ctx context.Context, kind model.Kind, contentID int64, substance string) (int64, error)
	List(ctx context.Context) ([]model.Report, error)
	ListForContent(ctx context.Context, kind model.Kind, contentID int64) ([]model.Report, error)
	Count(ctx context.Context) (int, error)
}

// MaxReportLen caps report free text, in runes. Longer reports are
// rejected rather than truncated.
const MaxReportLen = 2000

// ReportService files and lists abuse reports.
type ReportService struct {
	repo ReportStore
}

func NewReportService(repo ReportStore) *ReportService {
	return &ReportService{repo: repo}
}

// File validates and appends a report, returning its id.
func (s *ReportService) File(ctx context.Context, req model.CreateReportRequest) (int64, error) {
	kind := model.Kind(req.ContentKind)
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: unknown content kind %q", model.ErrInvalidArgument, req.ContentKind)
	}
	if req.ContentID <= 0 {
		return 0, fmt.Errorf("%w: content_id must be positive", model.ErrInvalidArgument)
	}
	substance := strings.TrimSpace(req.Substance)
	if substance == "" {
		return 0, fmt.Errorf("%w: substance is required", model.ErrInvalidArgument)
	}
	if utf8.RuneCountInString(substance) > MaxReportLen {
		return 0, fmt.Errorf("%w: substance exceeds %d characters", model.ErrInvalidArgument, MaxReportLen)
	}
	return s.repo.Create(ctx, kind, req.ContentID, substance)
}

func (s *ReportService) List(ctx context.Context) ([]model.Report, error) {
	return s.repo.List(ctx)
}

func (s *ReportService) ListForContent(ctx context.Context, kind model.Kind, contentID int64) ([]model.Report, error) {
	return s.repo.ListForContent(ctx, kind, contentID)
}

func (s *ReportService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
