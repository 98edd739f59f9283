package client

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// IncomePayload records money entering a wallet.
type IncomePayload struct {
	Wallet      WalletRef       `json:"wallet"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Source      string          `json:"source"`
	Date        string          `json:"date"`
}

// Validate will validate the payload
func (p IncomePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Wallet, validation.By(requiredWalletRef)),
		validation.Field(&p.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.Amount, validation.By(positiveAmount)),
		validation.Field(&p.Description, validation.Length(0, 500)),
		validation.Field(&p.Source, validation.Length(0, 200)),
		validation.Field(&p.Date, validation.Required, validation.Date(dateLayout)),
	)
}

// ExpensePayload records money leaving a wallet. Everything but the wallet
// and the amount is optional, as the original outcome form allowed.
type ExpensePayload struct {
	Wallet      WalletRef       `json:"wallet"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Date        string          `json:"date,omitempty"`
}

// Validate will validate the payload
func (p ExpensePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Wallet, validation.By(requiredWalletRef)),
		validation.Field(&p.Amount, validation.By(positiveAmount)),
		validation.Field(&p.Description, validation.Length(0, 500)),
		validation.Field(&p.Category, validation.Length(0, 100)),
		validation.Field(&p.Date, validation.Date(dateLayout)),
	)
}

// ListTransactions returns every transaction in a wallet, income and
// outcome alike.
func (c *Client) ListTransactions(ctx context.Context, walletID int64) ([]Transaction, error) {
	var transactions []Transaction
	err := c.Get(ctx, "/api/wallets/transactions", &transactions, walletQuery(walletID))
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// DeleteTransaction removes one transaction from a wallet.
func (c *Client) DeleteTransaction(ctx context.Context, id, walletID int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/wallets/transactions/%d", id), nil, walletQuery(walletID))
}

// ListIncome returns a wallet's income transactions.
func (c *Client) ListIncome(ctx context.Context, walletID int64) ([]Transaction, error) {
	var transactions []Transaction
	err := c.Get(ctx, "/api/wallets/transactions/income", &transactions, walletQuery(walletID))
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// CreateIncome records an income transaction.
func (c *Client) CreateIncome(ctx context.Context, payload IncomePayload) (*Transaction, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	var tx Transaction
	if err := c.Post(ctx, "/api/wallets/transactions/income", payload, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListExpense returns a wallet's outcome transactions.
func (c *Client) ListExpense(ctx context.Context, walletID int64) ([]Transaction, error) {
	var transactions []Transaction
	err := c.Get(ctx, "/api/wallets/transactions/expense", &transactions, walletQuery(walletID))
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// CreateExpense records an outcome transaction.
func (c *Client) CreateExpense(ctx context.Context, payload ExpensePayload) (*Transaction, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	var tx Transaction
	if err := c.Post(ctx, "/api/wallets/transactions/expense", payload, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
