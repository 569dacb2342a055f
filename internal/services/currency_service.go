package services

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"github.com/pokerhub/pokerhub-backend/internal/api/validate"
	"github.com/pokerhub/pokerhub-backend/internal/models"
	repo "github.com/pokerhub/pokerhub-backend/internal/repository"
)

// ErrCurrencyNotFound reports an edit against an id that matches no row.
var ErrCurrencyNotFound = errors.New(msgCurrencyNotFound)

var symbolRe = regexp.MustCompile(`^[A-Z]+$`)

type CurrencyService struct {
	r   repo.Currencies
	rec *AuditRecorder
	log *slog.Logger
}

func NewCurrencyService(r repo.Currencies, rec *AuditRecorder, log *slog.Logger) *CurrencyService {
	return &CurrencyService{r: r, rec: rec, log: log}
}

type CreateCurrencyInput struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	IsActive *bool  `json:"is_active"`
}

func (in CreateCurrencyInput) validate() validate.Errs {
	var errs validate.Errs
	for _, e := range []*validate.ErrField{
		validate.LenBetween("name", in.Name, 2, 100),
		validate.LenBetween("symbol", in.Symbol, 1, 10),
		validate.Matches("symbol", in.Symbol, symbolRe, "must contain uppercase letters only"),
	} {
		if e != nil {
			errs = append(errs, *e)
		}
	}
	return errs
}

func (s *CurrencyService) Create(ctx context.Context, in CreateCurrencyInput) error {
	if errs := in.validate(); len(errs) > 0 {
		return validationErr(errs)
	}

	c := models.Currency{Name: in.Name, Symbol: in.Symbol, IsActive: true}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	created, err := s.r.Create(ctx, c)
	if err != nil {
		s.log.Error("create currency failed", "symbol", in.Symbol, "err", err)
		return storageErr(err)
	}

	s.rec.Record("currency", created.ID, "currency_created", map[string]any{
		"name": created.Name, "symbol": created.Symbol,
	})
	return nil
}

type EditCurrencyInput struct {
	Name     *string `json:"name"`
	Symbol   *string `json:"symbol"`
	IsActive *bool   `json:"is_active"`
}

func (in EditCurrencyInput) validate() validate.Errs {
	var errs validate.Errs
	var checks []*validate.ErrField
	if in.Name != nil {
		checks = append(checks, validate.LenBetween("name", *in.Name, 2, 100))
	}
	if in.Symbol != nil {
		checks = append(checks,
			validate.LenBetween("symbol", *in.Symbol, 1, 10),
			validate.Matches("symbol", *in.Symbol, symbolRe, "must contain uppercase letters only"),
		)
	}
	for _, e := range checks {
		if e != nil {
			errs = append(errs, *e)
		}
	}
	return errs
}

// Edit applies a partial update; updated_at is bumped even when no business
// field changed.
func (s *CurrencyService) Edit(ctx context.Context, id string, in EditCurrencyInput) error {
	if id == "" {
		return validationErr(errors.New(msgMissingID))
	}
	if errs := in.validate(); len(errs) > 0 {
		return validationErr(errs)
	}

	err := s.r.Update(ctx, id, repo.CurrencyPatch{Name: in.Name, Symbol: in.Symbol, IsActive: in.IsActive})
	if errors.Is(err, repo.ErrNotFound) {
		return ErrCurrencyNotFound
	}
	if err != nil {
		s.log.Error("edit currency failed", "id", id, "err", err)
		return storageErr(err)
	}

	s.rec.Record("currency", id, "currency_updated", nil)
	return nil
}

// Delete is idempotent: a missing id still reports success. Dependent
// balances and transactions are removed by FK cascade.
func (s *CurrencyService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return validationErr(errors.New(msgMissingID))
	}

	deleted, err := s.r.Delete(ctx, id)
	if err != nil {
		s.log.Error("delete currency failed", "id", id, "err", err)
		return storageErr(err)
	}
	if deleted == 0 {
		s.log.Debug("delete of unknown currency", "id", id)
		return nil
	}

	s.rec.Record("currency", id, "currency_deleted", nil)
	return nil
}

func (s *CurrencyService) List(ctx context.Context) ([]models.Currency, error) {
	return s.r.List(ctx)
}

func (s *CurrencyService) ListActive(ctx context.Context) ([]models.Currency, error) {
	return s.r.ListActive(ctx)
}
