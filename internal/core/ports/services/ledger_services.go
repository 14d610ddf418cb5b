package services

import (
	"context"

	"github.com/geek-edu/courseledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations on the token ledger.
type LedgerReaderSvc interface {
	// BalanceOf returns the token balance of an account. Unknown accounts
	// hold zero.
	BalanceOf(ctx context.Context, account domain.AccountID) decimal.Decimal

	// State returns a snapshot of the ledger singleton.
	State(ctx context.Context) domain.LedgerState

	// RemainingMintableSupply returns MaxSupply minus the total minted so far.
	RemainingMintableSupply(ctx context.Context) decimal.Decimal

	// IsAdmin reports whether account holds the ledger administrator capability.
	IsAdmin(ctx context.Context, account domain.AccountID) bool
}

// LedgerWriterSvc defines the mutating ledger operations.
type LedgerWriterSvc interface {
	// DistributeInitialTokens credits the fixed allocations to the three
	// target accounts. Admin only; succeeds at most once per ledger instance.
	DistributeInitialTokens(ctx context.Context, caller, team, marketing, community domain.AccountID) error

	// BuyWithReserve exchanges reserve currency (in base units) for freshly
	// minted tokens at the fixed rate. Returns the tokens credited.
	BuyWithReserve(ctx context.Context, caller domain.AccountID, reservePaid decimal.Decimal) (decimal.Decimal, error)

	// SellTokens burns the caller's tokens and pays out reserve currency at
	// the fixed rate. Returns the reserve paid out, which may be zero.
	SellTokens(ctx context.Context, caller domain.AccountID, tokens decimal.Decimal) (decimal.Decimal, error)

	// WithdrawReserve transfers the entire reserve balance to the
	// administrator. Admin only. Returns the amount withdrawn.
	WithdrawReserve(ctx context.Context, caller domain.AccountID) (decimal.Decimal, error)

	// DepositReserve is the passive receive path: reserve currency enters the
	// ledger with no token side effect.
	DepositReserve(ctx context.Context, from domain.AccountID, amount decimal.Decimal) error

	// Transfer moves tokens between accounts. This is the debit path the
	// course market purchases through; it is not exposed publicly.
	Transfer(ctx context.Context, from, to domain.AccountID, amount decimal.Decimal) error
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
