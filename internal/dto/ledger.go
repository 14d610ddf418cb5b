package dto

import (
	"github.com/geek-edu/courseledger/internal/core/domain"
	"github.com/geek-edu/courseledger/internal/utils"
	"github.com/shopspring/decimal"
)

// BuyTokensRequest carries the reserve payment, in reserve base units.
type BuyTokensRequest struct {
	ReserveAmount decimal.Decimal `json:"reserveAmount" binding:"required,integeramount"`
}

// BuyTokensResponse reports the tokens credited by a purchase.
type BuyTokensResponse struct {
	TokensMinted decimal.Decimal `json:"tokensMinted"`
	Formatted    string          `json:"formatted"`
}

// SellTokensRequest carries the token amount to sell back.
type SellTokensRequest struct {
	TokenAmount decimal.Decimal `json:"tokenAmount" binding:"required,integeramount"`
}

// SellTokensResponse reports the reserve paid out, in base units. May be zero
// for small sales; the rate truncates.
type SellTokensResponse struct {
	ReservePaid decimal.Decimal `json:"reservePaid"`
}

// DepositReserveRequest is the passive receive path: reserve in, no tokens out.
type DepositReserveRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,integeramount"`
}

// DistributeInitialTokensRequest names the three allocation targets.
type DistributeInitialTokensRequest struct {
	TeamAccount      string `json:"teamAccount" binding:"required"`
	MarketingAccount string `json:"marketingAccount" binding:"required"`
	CommunityAccount string `json:"communityAccount" binding:"required"`
}

// WithdrawReserveResponse reports the reserve swept to the administrator.
type WithdrawReserveResponse struct {
	Amount decimal.Decimal `json:"amount"`
}

// BalanceResponse reports an account's token balance.
type BalanceResponse struct {
	Account   string          `json:"account"`
	Balance   decimal.Decimal `json:"balance"`
	Formatted string          `json:"formatted"`
}

// LedgerStateResponse is the read-only ledger snapshot plus its fixed
// configuration.
type LedgerStateResponse struct {
	TotalSupply             decimal.Decimal `json:"totalSupply"`
	MaxSupply               decimal.Decimal `json:"maxSupply"`
	RemainingMintableSupply decimal.Decimal `json:"remainingMintableSupply"`
	ReserveBalance          decimal.Decimal `json:"reserveBalance"`
	ExchangeRate            decimal.Decimal `json:"exchangeRate"`
	TokenPrecision          int             `json:"tokenPrecision"`
	InitialDistributionDone bool            `json:"initialDistributionDone"`
}

// ToBalanceResponse converts an account balance to its response DTO.
func ToBalanceResponse(account domain.AccountID, balance decimal.Decimal) BalanceResponse {
	return BalanceResponse{
		Account:   string(account),
		Balance:   balance,
		Formatted: utils.FormatTokenAmount(balance),
	}
}

// ToLedgerStateResponse converts a ledger snapshot to its response DTO.
func ToLedgerStateResponse(state domain.LedgerState, remaining decimal.Decimal) LedgerStateResponse {
	return LedgerStateResponse{
		TotalSupply:             state.TotalSupply,
		MaxSupply:               domain.MaxSupply,
		RemainingMintableSupply: remaining,
		ReserveBalance:          state.ReserveBalance,
		ExchangeRate:            domain.TokensPerReserve,
		TokenPrecision:          domain.TokenPrecision,
		InitialDistributionDone: state.InitialDistributionDone,
	}
}
