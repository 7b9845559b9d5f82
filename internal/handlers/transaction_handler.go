package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"moneta/internal/cycle"
	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	settingsService    services.SettingsServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, settingsService services.SettingsServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, settingsService: settingsService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	AccountID    string                 `json:"account_id" binding:"required"`
	ToAccountID  *string                `json:"to_account_id"`
	Type         models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount       decimal.Decimal        `json:"amount"`
	TransferFee  decimal.Decimal        `json:"transfer_fee"`
	CategoryName string                 `json:"category_name" binding:"max=100"`
	Description  string                 `json:"description" binding:"max=500"`
	Notes        string                 `json:"notes" binding:"max=2000"`
	Date         *string                `json:"date"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Create an income, expense, or transfer transaction. The
// @Description affected account balances are updated atomically with the write.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} map[string]interface{} "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transactionDate := time.Now()
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		transactionDate = parsed
	}

	transaction, err := h.transactionService.CreateTransaction(userID, services.TransactionInput{
		AccountID:    req.AccountID,
		ToAccountID:  req.ToAccountID,
		Type:         req.Type,
		Amount:       req.Amount,
		TransferFee:  req.TransferFee,
		CategoryName: req.CategoryName,
		Description:  req.Description,
		Notes:        req.Notes,
		Date:         transactionDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// UpdateTransactionRequest represents the partial patch for an update.
type UpdateTransactionRequest struct {
	AccountID    *string                 `json:"account_id"`
	ToAccountID  *string                 `json:"to_account_id"`
	Type         *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	Amount       *decimal.Decimal        `json:"amount"`
	TransferFee  *decimal.Decimal        `json:"transfer_fee"`
	CategoryName *string                 `json:"category_name" binding:"omitempty,max=100"`
	Description  *string                 `json:"description" binding:"omitempty,max=500"`
	Notes        *string                 `json:"notes" binding:"omitempty,max=2000"`
	Date         *string                 `json:"date"`
}

// UpdateTransaction applies a partial update to a transaction
// @Summary     Update a transaction
// @Description Apply a partial patch. If amount, type, fee, or accounts
// @Description change, the old balance effect is reverted and the new one
// @Description applied in a single atomic unit.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch := services.TransactionPatch{
		AccountID:    req.AccountID,
		ToAccountID:  req.ToAccountID,
		Type:         req.Type,
		Amount:       req.Amount,
		TransferFee:  req.TransferFee,
		CategoryName: req.CategoryName,
		Description:  req.Description,
		Notes:        req.Notes,
	}
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		patch.Date = &parsed
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, c.Param("id"), patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// GetUserTransactions lists the user's transactions with optional filters
// @Summary     List transactions
// @Description List transactions ordered by date descending. Pass cycle_ref
// @Description (YYYY-MM-DD) to restrict to the budgeting cycle containing
// @Description that date, or from/to for an explicit window.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       type query string false "Transaction type"
// @Param       category query string false "Category name"
// @Param       account_id query string false "Account ID (source or destination)"
// @Param       from query string false "Start date (inclusive)"
// @Param       to query string false "End date (inclusive)"
// @Param       cycle_ref query string false "Date whose cycle bounds the window"
// @Success     200 {object} map[string]interface{} "Transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := h.buildFilter(c, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.GetUserTransactions(userID, page, *filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetRecentTransactions returns the most recent transactions
// @Summary     List recent transactions
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Number of transactions (default 5)"
// @Success     200 {object} map[string]interface{} "Transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/recent [get]
func (h *TransactionHandler) GetRecentTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}

	transactions, err := h.transactionService.GetRecentTransactions(userID, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// GetTransactionByID returns a single transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]interface{} "Transaction"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction deletes a transaction and reverses its balance effect
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// buildFilter assembles a TransactionFilter from query parameters. A
// cycle_ref date takes precedence over explicit from/to bounds.
func (h *TransactionHandler) buildFilter(c *gin.Context, userID string) (*services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if raw := c.Query("type"); raw != "" {
		t := models.TransactionType(raw)
		switch t {
		case models.TransactionTypeIncome, models.TransactionTypeExpense, models.TransactionTypeTransfer:
			filter.Type = &t
		default:
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid transaction type")
		}
	}
	if raw := c.Query("category"); raw != "" {
		filter.CategoryName = &raw
	}
	if raw := c.Query("account_id"); raw != "" {
		filter.AccountID = &raw
	}

	if raw := c.Query("cycle_ref"); raw != "" {
		ref, err := parseFlexibleTime(raw)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		settings, err := h.settingsService.GetSettings(userID)
		if err != nil {
			return nil, err
		}
		start, end := cycle.Range(ref, settings.CycleStartDay)
		filter.FromDate = &start
		filter.ToDate = &end
		return &filter, nil
	}

	if raw := c.Query("from"); raw != "" {
		from, err := parseFlexibleTime(raw)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		filter.FromDate = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseFlexibleTime(raw)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		filter.ToDate = &to
	}

	return &filter, nil
}
