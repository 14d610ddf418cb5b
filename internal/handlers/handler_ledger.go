package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/geek-edu/courseledger/internal/apperrors"
	"github.com/geek-edu/courseledger/internal/core/domain"
	portssvc "github.com/geek-edu/courseledger/internal/core/ports/services"
	"github.com/geek-edu/courseledger/internal/dto"
	"github.com/geek-edu/courseledger/internal/middleware"
	"github.com/geek-edu/courseledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests related to the token ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to the ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("", h.getState)
		ledger.GET("/balances/:accountID", h.getBalance)
		ledger.POST("/buy", h.buyTokens)
		ledger.POST("/sell", h.sellTokens)
		ledger.POST("/deposit", h.depositReserve)
		ledger.POST("/distribute", h.distributeInitialTokens)
		ledger.POST("/withdraw", h.withdrawReserve)
	}
}

// getState godoc
// @Summary Ledger state
// @Description Returns the ledger snapshot plus its fixed configuration
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.LedgerStateResponse
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) getState(c *gin.Context) {
	state := h.ledgerService.State(c.Request.Context())
	remaining := h.ledgerService.RemainingMintableSupply(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToLedgerStateResponse(state, remaining))
}

// getBalance godoc
// @Summary Account balance
// @Description Returns the token balance of an account; unknown accounts hold zero
// @Tags ledger
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Security BearerAuth
// @Router /ledger/balances/{accountID} [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	account := domain.AccountID(c.Param("accountID"))
	balance := h.ledgerService.BalanceOf(c.Request.Context(), account)
	c.JSON(http.StatusOK, dto.ToBalanceResponse(account, balance))
}

// buyTokens godoc
// @Summary Buy tokens with reserve currency
// @Description Exchanges reserve currency (base units) for tokens at the fixed rate
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body dto.BuyTokensRequest true "Reserve payment"
// @Success 200 {object} dto.BuyTokensResponse
// @Failure 400 {object} map[string]string "Invalid or zero payment"
// @Failure 409 {object} map[string]string "Would exceed max supply"
// @Security BearerAuth
// @Router /ledger/buy [post]
func (h *ledgerHandler) buyTokens(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.BuyTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BuyTokens", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tokens, err := h.ledgerService.BuyWithReserve(c.Request.Context(), domain.AccountID(caller), req.ReserveAmount)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to buy tokens", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to buy tokens"})
		}
		return
	}

	logger.Info("Tokens purchased", slog.String("tokens", tokens.String()))
	c.JSON(http.StatusOK, dto.BuyTokensResponse{TokensMinted: tokens, Formatted: utils.FormatTokenAmount(tokens)})
}

// sellTokens godoc
// @Summary Sell tokens back for reserve currency
// @Description Burns the caller's tokens and pays out reserve at the fixed rate; the payout truncates and may be zero
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body dto.SellTokensRequest true "Token amount"
// @Success 200 {object} dto.SellTokensResponse
// @Failure 400 {object} map[string]string "Invalid or zero amount"
// @Failure 409 {object} map[string]string "Insufficient balance or reserve"
// @Security BearerAuth
// @Router /ledger/sell [post]
func (h *ledgerHandler) sellTokens(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SellTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SellTokens", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	reserveOut, err := h.ledgerService.SellTokens(c.Request.Context(), domain.AccountID(caller), req.TokenAmount)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to sell tokens", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sell tokens"})
		}
		return
	}

	logger.Info("Tokens sold", slog.String("reserve_out", reserveOut.String()))
	c.JSON(http.StatusOK, dto.SellTokensResponse{ReservePaid: reserveOut})
}

// depositReserve godoc
// @Summary Deposit reserve currency
// @Description Passive receive path: reserve currency enters the ledger with no token side effect
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body dto.DepositReserveRequest true "Reserve amount"
// @Success 204 "Deposited"
// @Failure 400 {object} map[string]string "Invalid amount"
// @Security BearerAuth
// @Router /ledger/deposit [post]
func (h *ledgerHandler) depositReserve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.DepositReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DepositReserve", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.ledgerService.DepositReserve(c.Request.Context(), domain.AccountID(caller), req.Amount); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to deposit reserve", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deposit reserve"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// distributeInitialTokens godoc
// @Summary Run the one-time initial distribution
// @Description Credits the fixed 20/10/10%% allocations of max supply to the three target accounts. Administrator only; succeeds at most once.
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body dto.DistributeInitialTokensRequest true "Allocation targets"
// @Success 204 "Distributed"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Administrator required"
// @Failure 409 {object} map[string]string "Already distributed"
// @Security BearerAuth
// @Router /ledger/distribute [post]
func (h *ledgerHandler) distributeInitialTokens(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.DistributeInitialTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DistributeInitialTokens", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.ledgerService.DistributeInitialTokens(
		c.Request.Context(),
		domain.AccountID(caller),
		domain.AccountID(req.TeamAccount),
		domain.AccountID(req.MarketingAccount),
		domain.AccountID(req.CommunityAccount),
	)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to distribute initial tokens", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to distribute initial tokens"})
		}
		return
	}

	logger.Info("Initial distribution completed")
	c.Status(http.StatusNoContent)
}

// withdrawReserve godoc
// @Summary Withdraw the reserve pool
// @Description Sweeps the entire reserve balance to the administrator. Administrator only.
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.WithdrawReserveResponse
// @Failure 403 {object} map[string]string "Administrator required"
// @Security BearerAuth
// @Router /ledger/withdraw [post]
func (h *ledgerHandler) withdrawReserve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	amount, err := h.ledgerService.WithdrawReserve(c.Request.Context(), domain.AccountID(caller))
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to withdraw reserve", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to withdraw reserve"})
		}
		return
	}

	logger.Info("Reserve withdrawn", slog.String("amount", amount.String()))
	c.JSON(http.StatusOK, dto.WithdrawReserveResponse{Amount: amount})
}
