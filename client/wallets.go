package client

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

// WalletPayload is the create/update body for a wallet.
type WalletPayload struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// Validate will validate the payload
func (p WalletPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.Balance, validation.By(nonNegativeAmount)),
	)
}

// ListWallets returns every wallet for the authenticated user.
func (c *Client) ListWallets(ctx context.Context) ([]Wallet, error) {
	var wallets []Wallet
	if err := c.Get(ctx, "/api/wallets", &wallets); err != nil {
		return nil, err
	}
	return wallets, nil
}

// GetWallet returns one wallet by id.
func (c *Client) GetWallet(ctx context.Context, id int64) (*Wallet, error) {
	var wallet Wallet
	if err := c.Get(ctx, fmt.Sprintf("/api/wallets/%d", id), &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// CreateWallet creates a wallet with an initial balance.
func (c *Client) CreateWallet(ctx context.Context, payload WalletPayload) (*Wallet, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	var wallet Wallet
	if err := c.Post(ctx, "/api/wallets", payload, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// UpdateWallet replaces a wallet's name and initial balance.
func (c *Client) UpdateWallet(ctx context.Context, id int64, payload WalletPayload) (*Wallet, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	var wallet Wallet
	if err := c.Put(ctx, fmt.Sprintf("/api/wallets/%d", id), payload, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// DeleteWallet removes a wallet and everything scoped to it.
func (c *Client) DeleteWallet(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/wallets/%d", id), nil)
}

func nonNegativeAmount(value any) error {
	amount, ok := value.(decimal.Decimal)
	if !ok {
		return fmt.Errorf("must be an amount")
	}
	if amount.IsNegative() {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func positiveAmount(value any) error {
	amount, ok := value.(decimal.Decimal)
	if !ok {
		return fmt.Errorf("must be an amount")
	}
	if !amount.IsPositive() {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}
