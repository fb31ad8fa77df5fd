package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/welldanyogia/forwarding-admin-backend/internal/errors"
	"github.com/welldanyogia/forwarding-admin-backend/internal/importer"
	"github.com/welldanyogia/forwarding-admin-backend/internal/logger"
	"github.com/welldanyogia/forwarding-admin-backend/internal/metrics"
	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
	"github.com/welldanyogia/forwarding-admin-backend/internal/repository"
)

// DefaultImportConcurrency bounds the store round trips of one import
const DefaultImportConcurrency = 8

// ImportFailure is a valid address the store could not provision
type ImportFailure struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// ImportReport summarizes one bulk import
type ImportReport struct {
	Total    int                  `json:"total"`
	Valid    int                  `json:"valid"`
	Invalid  int                  `json:"invalid"`
	Created  int                  `json:"created"`
	Skipped  int                  `json:"skipped"`
	Failures []ImportFailure      `json:"failures"`
	Rejected []importer.Rejection `json:"rejected"`
}

// ImportService provisions accounts from pasted text
type ImportService interface {
	// ImportAccounts reads one address per line
	ImportAccounts(ctx context.Context, raw string) (*ImportReport, error)
	// ImportExtracted pulls organization addresses out of free text first
	ImportExtracted(ctx context.Context, text string) (*ImportReport, error)
}

type importService struct {
	accounts    repository.AccountRepository
	orgDomain   string
	concurrency int
	events      *logger.EventLogger
	metrics     *metrics.Metrics
}

// NewImportService creates a new ImportService instance
func NewImportService(accounts repository.AccountRepository, orgDomain string, concurrency int, events *logger.EventLogger, m *metrics.Metrics) ImportService {
	if concurrency < 1 {
		concurrency = DefaultImportConcurrency
	}
	if events == nil {
		events = logger.NewEventLogger(nil)
	}
	return &importService{
		accounts:    accounts,
		orgDomain:   orgDomain,
		concurrency: concurrency,
		events:      events,
		metrics:     m,
	}
}

type rowOutcome int

const (
	rowCreated rowOutcome = iota
	rowSkipped
	rowFailed
)

// ImportAccounts creates a STUDENT/INACTIVE account for every distinct
// address not yet present. Rows are processed concurrently and one failing
// row never stops the others.
func (s *importService) ImportAccounts(ctx context.Context, raw string) (*ImportReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Store(err, "import cancelled")
	}

	batch := importer.ParseCandidates(raw)
	outcomes := make([]rowOutcome, len(batch.Candidates))
	reasons := make([]string, len(batch.Candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, email := range batch.Candidates {
		i, email := i, email
		g.Go(func() error {
			// Each goroutine owns index i; row errors stay in the report
			outcomes[i], reasons[i] = s.importOne(gctx, email)
			return nil
		})
	}
	_ = g.Wait()

	report := &ImportReport{
		Total:    batch.Lines,
		Valid:    len(batch.Candidates),
		Invalid:  len(batch.Rejected),
		Skipped:  batch.Repeats,
		Failures: []ImportFailure{},
		Rejected: batch.Rejected,
	}
	if report.Rejected == nil {
		report.Rejected = []importer.Rejection{}
	}
	for i, outcome := range outcomes {
		switch outcome {
		case rowCreated:
			report.Created++
		case rowSkipped:
			report.Skipped++
		case rowFailed:
			report.Failures = append(report.Failures, ImportFailure{Email: batch.Candidates[i], Reason: reasons[i]})
		}
	}

	s.events.ImportSummary(report.Total, report.Valid, report.Invalid, report.Created, report.Skipped, len(report.Failures))
	s.metrics.AddImportRows(metrics.ImportCreated, report.Created)
	s.metrics.AddImportRows(metrics.ImportSkipped, report.Skipped)
	s.metrics.AddImportRows(metrics.ImportInvalid, report.Invalid)
	s.metrics.AddImportRows(metrics.ImportFailed, len(report.Failures))
	return report, nil
}

func (s *importService) importOne(ctx context.Context, email string) (rowOutcome, string) {
	existing, err := s.accounts.List(ctx, repository.AccountFilter{Email: email})
	if err != nil {
		return rowFailed, translate(err, "accounts").Error()
	}
	if len(existing) > 0 {
		return rowSkipped, ""
	}

	account := &models.Account{Email: email, Role: models.RoleStudent, Status: models.AccountInactive}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return rowSkipped, ""
		}
		return rowFailed, translate(err, "account").Error()
	}
	return rowCreated, ""
}

// ImportExtracted extracts addresses from text, keeps those of the
// organization and imports them one per line.
func (s *importService) ImportExtracted(ctx context.Context, text string) (*ImportReport, error) {
	emails := importer.FilterOrgEmails(importer.ExtractEmails(text), s.orgDomain)
	return s.ImportAccounts(ctx, strings.Join(emails, "\n"))
}
