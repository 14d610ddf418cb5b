package domain

import "github.com/shopspring/decimal"

// Token economics. These are part of the compatibility surface and are
// exposed read-only through the API.
var (
	// MaxSupply is the hard cap on tokens ever minted.
	MaxSupply = decimal.NewFromInt(1_250_000)

	// TokensPerReserve is the fixed exchange rate: tokens minted per one
	// whole reserve unit.
	TokensPerReserve = decimal.NewFromInt(1000)

	// ReserveUnit is one whole reserve unit expressed in base units.
	// Reserve amounts on the wire are integers of base units.
	ReserveUnit = decimal.New(1, 18)
)

// TokenPrecision is the display precision of the token: whole tokens only.
const TokenPrecision = 0

// Initial distribution split, in percent of MaxSupply.
const (
	TeamAllocationPercent      = 20
	MarketingAllocationPercent = 10
	CommunityAllocationPercent = 10
)

// TeamAllocation is the team's share of MaxSupply, integer-truncated.
func TeamAllocation() decimal.Decimal {
	return allocation(TeamAllocationPercent)
}

// MarketingAllocation is the marketing share of MaxSupply, integer-truncated.
func MarketingAllocation() decimal.Decimal {
	return allocation(MarketingAllocationPercent)
}

// CommunityAllocation is the community share of MaxSupply, integer-truncated.
func CommunityAllocation() decimal.Decimal {
	return allocation(CommunityAllocationPercent)
}

func allocation(percent int64) decimal.Decimal {
	q, _ := MaxSupply.Mul(decimal.NewFromInt(percent)).QuoRem(decimal.NewFromInt(100), 0)
	return q
}

// LedgerState is the read-only snapshot of the ledger singleton returned to
// callers. Balances are not part of the snapshot; they are queried per
// account.
type LedgerState struct {
	TotalSupply             decimal.Decimal `json:"totalSupply"`
	ReserveBalance          decimal.Decimal `json:"reserveBalance"`
	InitialDistributionDone bool            `json:"initialDistributionDone"`
}

// IsIntegerAmount reports whether d is a non-negative whole number, the only
// shape amounts are allowed to take anywhere in the system.
func IsIntegerAmount(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Equal(d.Truncate(0))
}
