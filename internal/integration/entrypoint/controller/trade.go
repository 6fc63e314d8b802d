package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/usecase/income"
	"github.com/controle-financeiro/backend/internal/application/usecase/trade"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/dto"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/middleware"
)

// TradeController handles trade and income event endpoints.
type TradeController struct {
	createTradeUseCase  *trade.CreateTradeUseCase
	deleteTradeUseCase  *trade.DeleteTradeUseCase
	listTradesUseCase   *trade.ListTradesUseCase
	createIncomeUseCase *income.CreateIncomeUseCase
	deleteIncomeUseCase *income.DeleteIncomeUseCase
	listIncomesUseCase  *income.ListIncomesUseCase
}

// NewTradeController creates a new trade controller instance.
func NewTradeController(
	createTradeUseCase *trade.CreateTradeUseCase,
	deleteTradeUseCase *trade.DeleteTradeUseCase,
	listTradesUseCase *trade.ListTradesUseCase,
	createIncomeUseCase *income.CreateIncomeUseCase,
	deleteIncomeUseCase *income.DeleteIncomeUseCase,
	listIncomesUseCase *income.ListIncomesUseCase,
) *TradeController {
	return &TradeController{
		createTradeUseCase:  createTradeUseCase,
		deleteTradeUseCase:  deleteTradeUseCase,
		listTradesUseCase:   listTradesUseCase,
		createIncomeUseCase: createIncomeUseCase,
		deleteIncomeUseCase: deleteIncomeUseCase,
		listIncomesUseCase:  listIncomesUseCase,
	}
}

// ListTrades handles GET /trades requests.
func (c *TradeController) ListTrades(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse query parameters
	input := trade.ListTradesInput{UserID: userID}
	if assetIDStr := ctx.Query("assetId"); assetIDStr != "" {
		assetID, err := uuid.Parse(assetIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid asset ID format",
			})
			return
		}
		input.AssetID = &assetID
	}
	if dateFromStr := ctx.Query("dateFrom"); dateFromStr != "" {
		dateFrom, err := time.Parse("2006-01-02", dateFromStr)
		if err == nil {
			input.DateFrom = &dateFrom
		}
	}
	if dateToStr := ctx.Query("dateTo"); dateToStr != "" {
		dateTo, err := time.Parse("2006-01-02", dateToStr)
		if err == nil {
			input.DateTo = &dateTo
		}
	}

	// Execute use case
	trades, err := c.listTradesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve trades",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTradeListResponse(trades))
}

// CreateTrade handles POST /trades requests.
func (c *TradeController) CreateTrade(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse request body
	var req dto.CreateTradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid asset ID format",
		})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}
	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid quantity format",
		})
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid price format",
		})
		return
	}

	// Build input
	input := trade.CreateTradeInput{
		UserID:   userID,
		AssetID:  assetID,
		Date:     date,
		Side:     entity.TradeSide(req.Side),
		Quantity: quantity,
		Price:    price,
		Note:     req.Note,
	}
	if input.ExchangeRate, err = parseOptionalDecimal(req.ExchangeRate); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid exchange rate format",
		})
		return
	}
	if input.Fees, err = parseOptionalDecimal(req.Fees); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid fees format",
		})
		return
	}
	if input.Taxes, err = parseOptionalDecimal(req.Taxes); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid taxes format",
		})
		return
	}

	// Execute use case
	output, err := c.createTradeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTradeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTradeResponse(output.Trade))
}

// DeleteTrade handles DELETE /trades/:id requests.
func (c *TradeController) DeleteTrade(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse trade ID from URL
	tradeID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid trade ID format",
		})
		return
	}

	// Execute use case
	err = c.deleteTradeUseCase.Execute(ctx.Request.Context(), trade.DeleteTradeInput{
		UserID:  userID,
		TradeID: tradeID,
	})
	if err != nil {
		c.handleTradeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListIncomes handles GET /incomes requests.
func (c *TradeController) ListIncomes(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse query parameters
	input := income.ListIncomesInput{UserID: userID}
	if assetIDStr := ctx.Query("assetId"); assetIDStr != "" {
		assetID, err := uuid.Parse(assetIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid asset ID format",
			})
			return
		}
		input.AssetID = &assetID
	}
	if dateFromStr := ctx.Query("dateFrom"); dateFromStr != "" {
		dateFrom, err := time.Parse("2006-01-02", dateFromStr)
		if err == nil {
			input.DateFrom = &dateFrom
		}
	}
	if dateToStr := ctx.Query("dateTo"); dateToStr != "" {
		dateTo, err := time.Parse("2006-01-02", dateToStr)
		if err == nil {
			input.DateTo = &dateTo
		}
	}

	// Execute use case
	incomes, err := c.listIncomesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve income events",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToIncomeListResponse(incomes))
}

// CreateIncome handles POST /incomes requests.
func (c *TradeController) CreateIncome(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse request body
	var req dto.CreateIncomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid asset ID format",
		})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
		})
		return
	}

	// Execute use case
	created, err := c.createIncomeUseCase.Execute(ctx.Request.Context(), income.CreateIncomeInput{
		UserID:  userID,
		AssetID: assetID,
		Date:    date,
		Type:    entity.IncomeType(req.Type),
		Amount:  amount,
		Note:    req.Note,
	})
	if err != nil {
		c.handleTradeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToIncomeResponse(created))
}

// DeleteIncome handles DELETE /incomes/:id requests.
func (c *TradeController) DeleteIncome(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse income ID from URL
	incomeID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid income ID format",
		})
		return
	}

	// Execute use case
	err = c.deleteIncomeUseCase.Execute(ctx.Request.Context(), income.DeleteIncomeInput{
		UserID:   userID,
		IncomeID: incomeID,
	})
	if err != nil {
		c.handleTradeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleTradeError handles investment errors and returns appropriate HTTP responses.
func (c *TradeController) handleTradeError(ctx *gin.Context, err error) {
	var invErr *domainerror.InvestmentError
	if errors.As(err, &invErr) {
		statusCode := getStatusCodeForInvestmentError(invErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: invErr.Message,
			Code:  string(invErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrIncomeNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Income event not found",
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// parseOptionalDecimal parses a decimal field that may be omitted.
func parseOptionalDecimal(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
