package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/geek-edu/courseledger/internal/apperrors"
	"github.com/geek-edu/courseledger/internal/core/domain"
	portsrepo "github.com/geek-edu/courseledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

var (
	ErrAlreadyDistributed  = fmt.Errorf("%w: initial distribution already done", apperrors.ErrConflict)
	ErrZeroPayment         = fmt.Errorf("%w: must send reserve currency", apperrors.ErrValidation)
	ErrZeroAmount          = fmt.Errorf("%w: amount must be greater than 0", apperrors.ErrValidation)
	ErrSupplyExceeded      = fmt.Errorf("%w: would exceed max supply", apperrors.ErrConflict)
	ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance", apperrors.ErrConflict)
	ErrInsufficientReserve = fmt.Errorf("%w: insufficient reserve in ledger", apperrors.ErrConflict)
)

// LedgerService owns all token balance state: per-account balances, the
// supply counter, the reserve pool and the one-shot distribution flag. Every
// mutating operation is one critical section; a failed call leaves the state
// untouched.
type LedgerService struct {
	mu sync.RWMutex

	admin            domain.AccountID
	balances         map[domain.AccountID]decimal.Decimal
	totalSupply      decimal.Decimal
	reserveBalance   decimal.Decimal
	distributionDone bool

	recorder portsrepo.EventRecorder
}

// NewLedgerService creates a ledger administered by admin.
func NewLedgerService(admin domain.AccountID, recorder portsrepo.EventRecorder) *LedgerService {
	return &LedgerService{
		admin:          admin,
		balances:       make(map[domain.AccountID]decimal.Decimal),
		totalSupply:    decimal.Zero,
		reserveBalance: decimal.Zero,
		recorder:       recorder,
	}
}

// IsAdmin reports whether account holds the ledger administrator capability.
func (s *LedgerService) IsAdmin(_ context.Context, account domain.AccountID) bool {
	return account == s.admin && account != domain.NilAccount
}

// BalanceOf returns the token balance of an account. Unknown accounts hold zero.
func (s *LedgerService) BalanceOf(_ context.Context, account domain.AccountID) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[account]
}

// State returns a snapshot of the ledger singleton.
func (s *LedgerService) State(_ context.Context) domain.LedgerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.LedgerState{
		TotalSupply:             s.totalSupply,
		ReserveBalance:          s.reserveBalance,
		InitialDistributionDone: s.distributionDone,
	}
}

// RemainingMintableSupply returns MaxSupply minus the total minted so far.
func (s *LedgerService) RemainingMintableSupply(_ context.Context) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.MaxSupply.Sub(s.totalSupply)
}

// DistributeInitialTokens credits the fixed 20/10/10% allocations of
// MaxSupply to the three target accounts. Admin only; executes at most once
// per ledger instance.
func (s *LedgerService) DistributeInitialTokens(ctx context.Context, caller, team, marketing, community domain.AccountID) error {
	if !s.IsAdmin(ctx, caller) {
		return fmt.Errorf("%w: ledger administrator required", apperrors.ErrUnauthorized)
	}
	if team == domain.NilAccount || marketing == domain.NilAccount || community == domain.NilAccount {
		return fmt.Errorf("%w: distribution targets must be set", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.distributionDone {
		return ErrAlreadyDistributed
	}

	teamAlloc := domain.TeamAllocation()
	marketingAlloc := domain.MarketingAllocation()
	communityAlloc := domain.CommunityAllocation()

	s.balances[team] = s.balances[team].Add(teamAlloc)
	s.balances[marketing] = s.balances[marketing].Add(marketingAlloc)
	s.balances[community] = s.balances[community].Add(communityAlloc)
	s.totalSupply = s.totalSupply.Add(teamAlloc).Add(marketingAlloc).Add(communityAlloc)
	s.distributionDone = true

	s.recorder.Record(ctx, domain.NewEvent(domain.EventInitialDistributionCompleted, domain.InitialDistributionCompleted{
		Team:      team,
		Marketing: marketing,
		Community: community,
	}))
	return nil
}

// BuyWithReserve exchanges reserve currency (base units) for freshly minted
// tokens at the fixed rate, truncating toward zero.
func (s *LedgerService) BuyWithReserve(ctx context.Context, caller domain.AccountID, reservePaid decimal.Decimal) (decimal.Decimal, error) {
	if caller == domain.NilAccount {
		return decimal.Zero, fmt.Errorf("%w: caller must be set", apperrors.ErrValidation)
	}
	if !domain.IsIntegerAmount(reservePaid) {
		return decimal.Zero, fmt.Errorf("%w: reserve amount must be a non-negative integer", apperrors.ErrValidation)
	}
	if reservePaid.IsZero() {
		return decimal.Zero, ErrZeroPayment
	}

	tokensOut, _ := reservePaid.Mul(domain.TokensPerReserve).QuoRem(domain.ReserveUnit, 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.totalSupply.Add(tokensOut).GreaterThan(domain.MaxSupply) {
		return decimal.Zero, ErrSupplyExceeded
	}

	s.balances[caller] = s.balances[caller].Add(tokensOut)
	s.totalSupply = s.totalSupply.Add(tokensOut)
	s.reserveBalance = s.reserveBalance.Add(reservePaid)

	s.recorder.Record(ctx, domain.NewEvent(domain.EventTokensPurchased, domain.TokensPurchased{
		Buyer:        caller,
		ReservePaid:  reservePaid,
		TokensMinted: tokensOut,
	}))
	return tokensOut, nil
}

// SellTokens burns the caller's tokens and pays out reserve at the fixed
// rate. The payout truncates toward zero and can legitimately be zero for
// small amounts. Balance and supply are decremented before the reserve
// payout leaves the ledger.
func (s *LedgerService) SellTokens(ctx context.Context, caller domain.AccountID, tokens decimal.Decimal) (decimal.Decimal, error) {
	if !domain.IsIntegerAmount(tokens) {
		return decimal.Zero, fmt.Errorf("%w: token amount must be a non-negative integer", apperrors.ErrValidation)
	}
	if tokens.IsZero() {
		return decimal.Zero, ErrZeroAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.balances[caller].LessThan(tokens) {
		return decimal.Zero, ErrInsufficientBalance
	}

	reserveOut, _ := tokens.QuoRem(domain.TokensPerReserve, 0)
	if s.reserveBalance.LessThan(reserveOut) {
		return decimal.Zero, ErrInsufficientReserve
	}

	s.balances[caller] = s.balances[caller].Sub(tokens)
	s.totalSupply = s.totalSupply.Sub(tokens)
	s.reserveBalance = s.reserveBalance.Sub(reserveOut)

	s.recorder.Record(ctx, domain.NewEvent(domain.EventTokensSold, domain.TokensSold{
		Seller:      caller,
		TokensSold:  tokens,
		ReservePaid: reserveOut,
	}))
	return reserveOut, nil
}

// WithdrawReserve sweeps the entire reserve balance to the administrator.
func (s *LedgerService) WithdrawReserve(ctx context.Context, caller domain.AccountID) (decimal.Decimal, error) {
	if !s.IsAdmin(ctx, caller) {
		return decimal.Zero, fmt.Errorf("%w: ledger administrator required", apperrors.ErrUnauthorized)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	amount := s.reserveBalance
	s.reserveBalance = decimal.Zero
	return amount, nil
}

// DepositReserve is the passive receive path: reserve currency enters the
// pool with no token side effect.
func (s *LedgerService) DepositReserve(_ context.Context, from domain.AccountID, amount decimal.Decimal) error {
	if from == domain.NilAccount {
		return fmt.Errorf("%w: sender must be set", apperrors.ErrValidation)
	}
	if !domain.IsIntegerAmount(amount) {
		return fmt.Errorf("%w: reserve amount must be a non-negative integer", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reserveBalance = s.reserveBalance.Add(amount)
	return nil
}

// Transfer moves tokens between accounts. Used by the course market's debit
// path; not part of the public API surface.
func (s *LedgerService) Transfer(_ context.Context, from, to domain.AccountID, amount decimal.Decimal) error {
	if from == domain.NilAccount || to == domain.NilAccount {
		return fmt.Errorf("%w: transfer endpoints must be set", apperrors.ErrValidation)
	}
	if !domain.IsIntegerAmount(amount) {
		return fmt.Errorf("%w: amount must be a non-negative integer", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.balances[from].LessThan(amount) {
		return ErrInsufficientBalance
	}
	s.balances[from] = s.balances[from].Sub(amount)
	s.balances[to] = s.balances[to].Add(amount)
	return nil
}
