package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/fx_fee_engine/internal/apperrors"
	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	"github.com/SscSPs/fx_fee_engine/internal/core/ports"
	portsrepo "github.com/SscSPs/fx_fee_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_fee_engine/internal/core/ports/services"
	"github.com/SscSPs/fx_fee_engine/internal/dto"
	"github.com/SscSPs/fx_fee_engine/internal/repositories/memory"
	"github.com/SscSPs/fx_fee_engine/internal/utils/calendar"
	"github.com/SscSPs/fx_fee_engine/internal/utils/money"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var importSections = []string{ports.SectionClients, ports.SectionRates, ports.SectionTransactions}

// importService implements the ImportSvc interface
type importService struct {
	BaseService
	target   portsrepo.RepositoryProvider
	scratch  func() portsrepo.RepositoryProvider
	validate *validator.Validate
}

// ImportServiceOption is a functional option for configuring the import service
type ImportServiceOption func(*importService)

// WithScratchStore replaces the store dry runs write into.
func WithScratchStore(factory func() portsrepo.RepositoryProvider) ImportServiceOption {
	return func(s *importService) {
		s.scratch = factory
	}
}

// NewImportService creates an importer writing into target. Dry runs write into
// a fresh in-memory store so that client references are still checked.
func NewImportService(target portsrepo.RepositoryProvider, options ...ImportServiceOption) portssvc.ImportSvc {
	svc := &importService{
		target: target,
		scratch: func() portsrepo.RepositoryProvider {
			return memory.NewStore().Provider()
		},
		validate: dto.NewValidator(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ImportSvc = (*importService)(nil)

// Import reads every section before writing anything, so a missing file aborts
// the run untouched.
func (s *importService) Import(ctx context.Context, source ports.RecordSource, req dto.ImportRequest) (*domain.ImportReport, error) {
	records := make(map[string][]dto.Record, len(importSections))
	for _, section := range importSections {
		recs, err := source.Records(ctx, section)
		if err != nil {
			s.LogError(ctx, err, "Failed to read import section", slog.String("section", section))
			return nil, fmt.Errorf("failed to read %s: %w", section, err)
		}
		records[section] = recs
	}

	repos := s.target
	if req.DryRun {
		repos = s.scratch()
	} else if req.Reset {
		if err := repos.Maintenance.TruncateAll(ctx); err != nil {
			s.LogError(ctx, err, "Failed to truncate tables before import")
			return nil, fmt.Errorf("failed to reset store: %w", err)
		}
		s.LogInfo(ctx, "Tables truncated before import")
	}

	report := &domain.ImportReport{DryRun: req.DryRun}
	s.importClients(ctx, repos, records[ports.SectionClients], &report.Clients)
	s.importRates(ctx, repos, records[ports.SectionRates], &report.Rates)
	s.importTransactions(ctx, repos, records[ports.SectionTransactions], &report.Transactions)

	for _, section := range []struct {
		name  string
		stats domain.SectionStats
	}{
		{ports.SectionClients, report.Clients},
		{ports.SectionRates, report.Rates},
		{ports.SectionTransactions, report.Transactions},
	} {
		s.LogInfo(ctx, "Import section finished",
			slog.String("section", section.name),
			slog.Bool("dry_run", req.DryRun),
			slog.Int("processed", section.stats.Processed),
			slog.Int("created", section.stats.Created),
			slog.Int("updated", section.stats.Updated),
			slog.Int("warnings", section.stats.Warnings),
			slog.Int("errors", section.stats.Errors))
	}
	return report, nil
}

func (s *importService) importClients(ctx context.Context, repos portsrepo.RepositoryProvider, records []dto.Record, stats *domain.SectionStats) {
	for _, rec := range records {
		stats.Processed++
		row := dto.ToClientRow(rec)
		key := fmt.Sprintf("clients client_id=%s", row.ClientID)
		failed := dto.FieldErrors(s.validate.Struct(row))

		if anyRequired(failed, "ClientID", "Name", "RegisteredAt") {
			s.rowError(ctx, stats, "clients.csv missing required fields", key, rec.Line)
			continue
		}
		if _, bad := failed["ClientID"]; bad {
			s.rowError(ctx, stats, "clients.csv invalid client_id="+row.ClientID, key, rec.Line)
			continue
		}
		if _, bad := failed["RegisteredAt"]; bad {
			s.rowError(ctx, stats, "clients.csv invalid registered_at="+row.RegisteredAt, key, rec.Line)
			continue
		}
		registeredAt, _ := calendar.ParseDate(row.RegisteredAt)

		client := domain.Client{
			ExternalID:   row.ClientID,
			Name:         row.Name,
			RegisteredAt: registeredAt,
		}
		if row.IsTierLocked() {
			locked := true
			client.TierLocked = &locked
		}
		if row.TierLockedValue != "" {
			value := row.TierLockedValue
			client.TierLockedValue = &value
		}

		if client.TierLocked != nil && client.TierLockedValue == nil {
			s.rowWarning(ctx, stats, "clients.csv tier_locked=1 but tier_locked_value empty", key, rec.Line)
		}
		if _, bad := failed["TierLockedValue"]; bad {
			s.rowError(ctx, stats, "clients.csv invalid tier_locked_value="+row.TierLockedValue, key, rec.Line)
			client.TierLockedValue = nil
		}

		_, created, err := repos.ClientRepo.UpsertClient(ctx, client)
		s.countWrite(ctx, stats, created, err, key, rec.Line)
	}
}

func (s *importService) importRates(ctx context.Context, repos portsrepo.RepositoryProvider, records []dto.Record, stats *domain.SectionStats) {
	for _, rec := range records {
		stats.Processed++
		row := dto.ToRateRow(rec)
		key := fmt.Sprintf("rates %s/%s valid_from=%s", row.Source, row.Target, row.ValidFrom)
		failed := dto.FieldErrors(s.validate.Struct(row))

		if anyRequired(failed, "Source", "Target", "Rate", "ValidFrom") {
			s.rowError(ctx, stats, "rates.csv missing required fields", key, rec.Line)
			continue
		}
		if hasFailure(failed, "Source", "Target") {
			s.rowError(ctx, stats, fmt.Sprintf("rates.csv invalid currency code(s) source=%s target=%s", row.Source, row.Target), key, rec.Line)
			continue
		}
		if _, bad := failed["ValidFrom"]; bad {
			s.rowError(ctx, stats, "rates.csv invalid valid_from="+row.ValidFrom, key, rec.Line)
			continue
		}
		if _, bad := failed["Rate"]; bad {
			s.rowError(ctx, stats, "rates.csv invalid rate="+row.Rate, key, rec.Line)
			continue
		}

		validFrom, _ := calendar.ParseDate(row.ValidFrom)
		rate := decimal.RequireFromString(row.Rate)

		created, err := repos.RateRepo.UpsertRate(ctx, domain.ExchangeRate{
			SourceCurrency: row.Source,
			TargetCurrency: row.Target,
			ValidFrom:      validFrom,
			Rate:           money.RoundHalfUp(rate, money.RateScale),
		})
		s.countWrite(ctx, stats, created, err, key, rec.Line)
	}
}

func (s *importService) importTransactions(ctx context.Context, repos portsrepo.RepositoryProvider, records []dto.Record, stats *domain.SectionStats) {
	for _, rec := range records {
		stats.Processed++
		row := dto.ToTransactionRow(rec)
		key := fmt.Sprintf("tx %s client_id=%s", row.TransactionID, row.ClientID)
		failed := dto.FieldErrors(s.validate.Struct(row))

		if anyRequired(failed, "TransactionID", "ClientID", "Amount", "SourceCurrency", "TargetCurrency", "CreatedAt") {
			s.rowError(ctx, stats, "transactions.csv missing required fields", key, rec.Line)
			continue
		}
		if _, bad := failed["TransactionID"]; bad {
			s.rowError(ctx, stats, "transactions.csv invalid transaction_id="+row.TransactionID, key, rec.Line)
			continue
		}
		// Rows with malformed codes are still stored; the calculation reports them later.
		if hasFailure(failed, "SourceCurrency", "TargetCurrency") {
			s.rowError(ctx, stats, fmt.Sprintf("transactions.csv invalid currency code(s) source=%s target=%s", row.SourceCurrency, row.TargetCurrency), key, rec.Line)
		}
		if _, bad := failed["Amount"]; bad {
			s.rowError(ctx, stats, "transactions.csv invalid amount="+row.Amount, key, rec.Line)
			continue
		}
		if _, bad := failed["CreatedAt"]; bad {
			s.rowError(ctx, stats, "transactions.csv invalid created_at="+row.CreatedAt, key, rec.Line)
			continue
		}
		createdAt, _ := calendar.ParseDateTime(row.CreatedAt)

		tx := domain.Transaction{
			ExternalID:       row.TransactionID,
			ClientExternalID: row.ClientID,
			Amount:           decimal.RequireFromString(row.Amount),
			SourceCurrency:   row.SourceCurrency,
			TargetCurrency:   row.TargetCurrency,
			CreatedAt:        createdAt,
		}

		if row.RefundedAt != "" {
			if _, bad := failed["RefundedAt"]; bad {
				s.rowError(ctx, stats, "transactions.csv invalid refunded_at="+row.RefundedAt, key, rec.Line)
			} else {
				refundedAt, _ := calendar.ParseDateTime(row.RefundedAt)
				tx.RefundedAt = &refundedAt
			}
		}
		if tx.RefundedAt != nil && tx.RefundedAt.Before(createdAt) {
			s.rowWarning(ctx, stats, "transactions.csv refunded_at < created_at", key, rec.Line)
		}

		tx.OriginalFee = s.optionalMoney(ctx, stats, failed, "OriginalFee", "original_fee", row.OriginalFee, key, rec.Line)
		tx.OriginalFinalAmount = s.optionalMoney(ctx, stats, failed, "OriginalFinalAmount", "original_final_amount", row.OriginalFinalAmount, key, rec.Line)

		client, err := repos.ClientRepo.FindClientByExternalID(ctx, row.ClientID)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			s.rowWarning(ctx, stats, "transactions.csv missing client reference client_id="+row.ClientID, key, rec.Line)
		case err != nil:
			s.countWrite(ctx, stats, false, err, key, rec.Line)
			continue
		default:
			tx.Client = client
		}

		created, err := repos.TransactionRepo.UpsertTransaction(ctx, tx)
		s.countWrite(ctx, stats, created, err, key, rec.Line)
	}
}

// optionalMoney drops an invalid legacy amount with a warning.
func (s *importService) optionalMoney(ctx context.Context, stats *domain.SectionStats, failed map[string]string, field, column, raw, key string, line int) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	if _, bad := failed[field]; bad {
		s.rowWarning(ctx, stats, fmt.Sprintf("transactions.csv %s invalid=%s", column, raw), key, line)
		return nil
	}
	d := decimal.RequireFromString(raw)
	return &d
}

func (s *importService) countWrite(ctx context.Context, stats *domain.SectionStats, created bool, err error, key string, line int) {
	switch {
	case err != nil:
		stats.Errors++
		s.LogError(ctx, err, "Failed to store import row",
			slog.String("row_key", key),
			slog.Int("line", line))
	case created:
		stats.Created++
	default:
		stats.Updated++
	}
}

func (s *importService) rowError(ctx context.Context, stats *domain.SectionStats, msg, key string, line int) {
	stats.Errors++
	s.GetLogger(ctx).Error(msg, slog.String("row_key", key), slog.Int("line", line))
}

func (s *importService) rowWarning(ctx context.Context, stats *domain.SectionStats, msg, key string, line int) {
	stats.Warnings++
	s.LogWarn(ctx, msg, slog.String("row_key", key), slog.Int("line", line))
}

func anyRequired(failed map[string]string, fields ...string) bool {
	for _, f := range fields {
		if failed[f] == "required" {
			return true
		}
	}
	return false
}

func hasFailure(failed map[string]string, fields ...string) bool {
	for _, f := range fields {
		if _, ok := failed[f]; ok {
			return true
		}
	}
	return false
}
