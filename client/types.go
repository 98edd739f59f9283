package client

import "github.com/shopspring/decimal"

// User is the profile returned by /api/users/me.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Wallet is a named money pool: the root aggregate for categories and
// transactions. Balance is the initial amount supplied at creation,
// CurrentBalance the running balance the server maintains.
type Wallet struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// WalletRef is the nested wallet reference write payloads carry.
type WalletRef struct {
	ID int64 `json:"id"`
}

// Category is a user-defined transaction label scoped to one wallet.
type Category struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	Wallet *WalletRef `json:"wallet,omitempty"`
}

// Transaction types as the backend reports them.
const (
	TransactionIncome  = "INCOME"
	TransactionOutcome = "OUTCOME"
)

// Transaction is a dated monetary movement against a wallet and category.
type Transaction struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Source      string          `json:"source,omitempty"`
	Date        string          `json:"date,omitempty"`
}

// TypeTotal is one slice of the by-type statistics breakdown; Type is
// "income" or "outcome" as the backend reports it.
type TypeTotal struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryTotal is one slice of the per-category statistics breakdown.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Statistics is the aggregated dashboard payload for one wallet over the
// selected period (monthly by default, yearly with isYear).
type Statistics struct {
	WalletID         int64           `json:"walletId"`
	TotalTransaction decimal.Decimal `json:"totalTransaction"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalOutcome     decimal.Decimal `json:"totalOutcome"`
	ByType           []TypeTotal     `json:"allTransactionByType"`
	ByCategory       []CategoryTotal `json:"allTransactionByCategory"`
}

// Overview bundles the concurrent dashboard fetch for one wallet.
type Overview struct {
	Wallet       *Wallet
	Categories   []Category
	Transactions []Transaction
	Statistics   *Statistics
}
