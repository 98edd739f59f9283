package client

import (
	"context"
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
)

// CategoryPayload is the create/update body for a category. The wallet ref
// travels nested in the body while reads scope by walletId query param,
// matching the backend contract.
type CategoryPayload struct {
	Name   string    `json:"name"`
	Wallet WalletRef `json:"wallet"`
}

// Validate will validate the payload
func (p CategoryPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.Wallet, validation.By(requiredWalletRef)),
	)
}

// ListCategories returns the categories scoped to one wallet.
func (c *Client) ListCategories(ctx context.Context, walletID int64) ([]Category, error) {
	var categories []Category
	err := c.Get(ctx, "/api/wallets/categories", &categories, walletQuery(walletID))
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns one category by id within a wallet.
func (c *Client) GetCategory(ctx context.Context, id, walletID int64) (*Category, error) {
	var category Category
	err := c.Get(ctx, fmt.Sprintf("/api/wallets/categories/%d", id), &category, walletQuery(walletID))
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory adds a category to a wallet.
func (c *Client) CreateCategory(ctx context.Context, name string, walletID int64) (*Category, error) {
	payload := CategoryPayload{Name: name, Wallet: WalletRef{ID: walletID}}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	var category Category
	if err := c.Post(ctx, "/api/wallets/categories", payload, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, name string, walletID int64) (*Category, error) {
	payload := CategoryPayload{Name: name, Wallet: WalletRef{ID: walletID}}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	var category Category
	if err := c.Put(ctx, fmt.Sprintf("/api/wallets/categories/%d", id), payload, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category from a wallet.
func (c *Client) DeleteCategory(ctx context.Context, id, walletID int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/wallets/categories/%d", id), nil, walletQuery(walletID))
}

func walletQuery(walletID int64) RequestOption {
	return WithQuery("walletId", strconv.FormatInt(walletID, 10))
}

func requiredWalletRef(value any) error {
	ref, ok := value.(WalletRef)
	if !ok || ref.ID <= 0 {
		return fmt.Errorf("wallet is required")
	}
	return nil
}
