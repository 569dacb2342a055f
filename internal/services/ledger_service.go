package services

import (
	"context"
	"log/slog"

	"github.com/pokerhub/pokerhub-backend/internal/api/validate"
	"github.com/pokerhub/pokerhub-backend/internal/metrics"
	"github.com/pokerhub/pokerhub-backend/internal/models"
	repo "github.com/pokerhub/pokerhub-backend/internal/repository"
)

const (
	// DefaultGrantDescription is recorded when the admin supplies none.
	DefaultGrantDescription = "管理者による通貨付与"

	maxGrantAmount = 1_000_000
)

type LedgerService struct {
	r   repo.Ledger
	rec *AuditRecorder
	log *slog.Logger
}

func NewLedgerService(r repo.Ledger, rec *AuditRecorder, log *slog.Logger) *LedgerService {
	return &LedgerService{r: r, rec: rec, log: log}
}

type GrantInput struct {
	UserID      string `json:"user_id"`
	CurrencyID  string `json:"currency_id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReferenceID string `json:"reference_id"`
}

func (in GrantInput) validate() validate.Errs {
	var errs validate.Errs
	checks := []*validate.ErrField{
		validate.UUID("user_id", in.UserID),
		validate.UUID("currency_id", in.CurrencyID),
		validate.IntBetween("amount", in.Amount, 1, maxGrantAmount),
		validate.MaxLen("description", in.Description, 255),
	}
	if in.ReferenceID != "" {
		checks = append(checks, validate.UUID("reference_id", in.ReferenceID))
	}
	for _, e := range checks {
		if e != nil {
			errs = append(errs, *e)
		}
	}
	return errs
}

// Grant credits amount to (user, currency) and appends the matching
// ADMIN_GRANT ledger row in one atomic transaction. Validation happens
// before any storage access; invalid input performs zero writes.
func (s *LedgerService) Grant(ctx context.Context, in GrantInput) (models.CurrencyTransaction, error) {
	if errs := in.validate(); len(errs) > 0 {
		return models.CurrencyTransaction{}, validationErr(errs)
	}

	p := repo.GrantParams{
		UserID:      in.UserID,
		CurrencyID:  in.CurrencyID,
		Amount:      in.Amount,
		Description: in.Description,
	}
	if p.Description == "" {
		p.Description = DefaultGrantDescription
	}
	if in.ReferenceID != "" {
		p.ReferenceID = &in.ReferenceID
	}

	txn, err := s.r.Grant(ctx, p)
	if err != nil {
		metrics.GrantsFailed.Inc()
		s.log.Error("grant failed", "user_id", in.UserID, "currency_id", in.CurrencyID, "amount", in.Amount, "err", err)
		return models.CurrencyTransaction{}, storageErr(err)
	}

	metrics.GrantsTotal.Inc()
	metrics.GrantAmount.Observe(float64(in.Amount))
	s.log.Info("currency granted",
		"user_id", txn.UserID, "currency_id", txn.CurrencyID,
		"amount", txn.Amount, "balance_after", txn.BalanceAfter)
	s.rec.Record("currency_transaction", txn.ID, "currency_granted", map[string]any{
		"user_id":     txn.UserID,
		"currency_id": txn.CurrencyID,
		"amount":      txn.Amount,
	})
	return txn, nil
}

func (s *LedgerService) ListTransactions(ctx context.Context, limit, offset int) ([]models.TransactionRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.r.ListTransactions(ctx, limit, offset)
}

func (s *LedgerService) BalancesFor(ctx context.Context, userID string) ([]models.BalanceRecord, error) {
	return s.r.BalancesByUser(ctx, userID)
}
