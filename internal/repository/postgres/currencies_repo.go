package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pokerhub/pokerhub-backend/internal/models"
	repo "github.com/pokerhub/pokerhub-backend/internal/repository"
)

type currenciesRepo struct{ pool *pgxpool.Pool }

const currencyCols = `id, name, symbol, is_active, created_at, updated_at`

func (r *currenciesRepo) Create(ctx context.Context, c models.Currency) (models.Currency, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO currencies(name, symbol, is_active)
		 VALUES($1,$2,$3)
		 RETURNING `+currencyCols,
		c.Name, c.Symbol, c.IsActive,
	).Scan(&c.ID, &c.Name, &c.Symbol, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *currenciesRepo) GetByID(ctx context.Context, id string) (models.Currency, error) {
	var c models.Currency
	err := r.pool.QueryRow(ctx, `SELECT `+currencyCols+` FROM currencies WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.Symbol, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Currency{}, repo.ErrNotFound
	}
	return c, err
}

func (r *currenciesRepo) List(ctx context.Context) ([]models.Currency, error) {
	return r.list(ctx, `SELECT `+currencyCols+` FROM currencies ORDER BY created_at DESC`)
}

func (r *currenciesRepo) ListActive(ctx context.Context) ([]models.Currency, error) {
	return r.list(ctx, `SELECT `+currencyCols+` FROM currencies WHERE is_active ORDER BY created_at DESC`)
}

func (r *currenciesRepo) list(ctx context.Context, q string) ([]models.Currency, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Currency
	for rows.Next() {
		var c models.Currency
		if err := rows.Scan(&c.ID, &c.Name, &c.Symbol, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *currenciesRepo) Update(ctx context.Context, id string, p repo.CurrencyPatch) error {
	// updated_at is bumped even when every patch field is nil
	tag, err := r.pool.Exec(ctx,
		`UPDATE currencies
		    SET name = COALESCE($2, name),
		        symbol = COALESCE($3, symbol),
		        is_active = COALESCE($4, is_active),
		        updated_at = now()
		  WHERE id = $1`,
		id, p.Name, p.Symbol, p.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *currenciesRepo) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM currencies WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
