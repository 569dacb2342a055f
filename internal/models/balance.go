package models

import "time"

// UserBalance is one row per (user, currency); mutated only through the
// ledger grant path, never directly.
type UserBalance struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CurrencyID string    `json:"currency_id"`
	Balance    int64     `json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BalanceRecord is a balance joined with its currency for display.
type BalanceRecord struct {
	UserBalance
	CurrencyName   string `json:"currency_name"`
	CurrencySymbol string `json:"currency_symbol"`
}
