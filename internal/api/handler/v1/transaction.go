package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gameroom/gameroom-api/internal/api/handler/v1/request"
	"github.com/gameroom/gameroom-api/internal/api/handler/v1/response"
	"github.com/gameroom/gameroom-api/internal/domain"
	"github.com/gameroom/gameroom-api/internal/service"
)

type TransactionService interface {
	CreateTransaction(ctx context.Context, activityID uint, durationMinutes int, amount float64, method domain.PaymentMethod, attendant domain.User) (domain.Transaction, error)
	RefundTransaction(ctx context.Context, transactionID uint, attendant domain.User) (domain.Transaction, error)
	GetTransaction(ctx context.Context, id uint) (domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	ListTransactionsInRange(ctx context.Context, rangeKey string) ([]domain.Transaction, error)
}

type TransactionCSVRenderer interface {
	TransactionsCSV(transactions []domain.Transaction) []byte
}

type TransactionHandler struct {
	svc     TransactionService
	csv     TransactionCSVRenderer
	userSvc UserService
}

func NewTransactionHandler(svc TransactionService, csv TransactionCSVRenderer, userSvc UserService) *TransactionHandler {
	return &TransactionHandler{
		svc:     svc,
		csv:     csv,
		userSvc: userSvc,
	}
}

// HandleListTransactions godoc
// @Summary      List transactions
// @Description  Lists transactions newest first; optional range=today|week|month|all.
// @Tags         transactions
// @Produce      json
// @Param        range    query     string  false  "time range"
// @Success      200      {array}   domain.Transaction
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /transactions [get]
// @Security BearerAuth
func (h *TransactionHandler) HandleListTransactions(ctx *gin.Context) {
	transactions, err := h.svc.ListTransactionsInRange(ctx.Request.Context(), ctx.Query("range"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListTransactions -> h.svc.ListTransactionsInRange -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, transactions)
}

// HandleCreateTransaction godoc
// @Summary      Record a transaction
// @Description  Records a booking for an activity and marks its tile in use until the booked end time.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateTransactionRequest  true  "request body"
// @Success      201      {object}  domain.Transaction
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /transactions [post]
// @Security BearerAuth
func (h *TransactionHandler) HandleCreateTransaction(ctx *gin.Context) {
	attendant, respErr := getUserFromContext(ctx, h.userSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	transaction, err := h.svc.CreateTransaction(
		ctx.Request.Context(),
		req.ActivityID,
		req.DurationMinutes,
		req.Amount,
		domain.PaymentMethod(req.PaymentMethod),
		attendant,
	)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("activity", "ID", req.ActivityID))
			return
		}
		if errors.Is(err, service.ErrActivityInactive) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrActivityInactive))
			return
		}

		err = fmt.Errorf("v1.HandleCreateTransaction -> h.svc.CreateTransaction -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, transaction)
}

// HandleRefundTransaction godoc
// @Summary      Refund a transaction
// @Description  Appends a negative-amount record mirroring the original; the ledger stays append-only.
// @Tags         transactions
// @Produce      json
// @Param        transactionID  path      int  true  "transaction ID"
// @Success      201            {object}  domain.Transaction
// @Failure      400            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /transactions/{transactionID}/refund [post]
// @Security BearerAuth
func (h *TransactionHandler) HandleRefundTransaction(ctx *gin.Context) {
	attendant, respErr := getUserFromContext(ctx, h.userSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	transactionID, err := strconv.ParseUint(ctx.Param("transactionID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid transaction ID: %v", ctx.Param("transactionID"))))
		return
	}

	refund, err := h.svc.RefundTransaction(ctx.Request.Context(), uint(transactionID), attendant)
	if err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("transaction", "ID", transactionID))
			return
		}
		if errors.Is(err, service.ErrTransactionRefunded) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTransactionRefunded))
			return
		}

		err = fmt.Errorf("v1.HandleRefundTransaction -> h.svc.RefundTransaction -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, refund)
}

// HandleExportTransactionsCSV godoc
// @Summary      Export transactions as CSV
// @Description  Raw transaction rows in the revenue export layout, offered as a download.
// @Tags         transactions
// @Produce      text/csv
// @Param        range    query     string  false  "time range"
// @Success      200      {string}  string
// @Failure      500      {object}  response.Err
// @Router       /transactions/export [get]
// @Security BearerAuth
func (h *TransactionHandler) HandleExportTransactionsCSV(ctx *gin.Context) {
	transactions, err := h.svc.ListTransactionsInRange(ctx.Request.Context(), ctx.Query("range"))
	if err != nil {
		err = fmt.Errorf("v1.HandleExportTransactionsCSV -> h.svc.ListTransactionsInRange -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	fileName := fmt.Sprintf("revenue_report_%v.csv", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", h.csv.TransactionsCSV(transactions))
}
