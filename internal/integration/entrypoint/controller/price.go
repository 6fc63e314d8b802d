package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/usecase/price"
	"github.com/controle-financeiro/backend/internal/application/usecase/quote"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/dto"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/middleware"
)

// PriceController handles price mark and quote refresh endpoints.
type PriceController struct {
	upsertUseCase  *price.UpsertPriceUseCase
	listUseCase    *price.ListPricesUseCase
	refreshUseCase *quote.RefreshQuotesUseCase
}

// NewPriceController creates a new price controller instance.
func NewPriceController(
	upsertUseCase *price.UpsertPriceUseCase,
	listUseCase *price.ListPricesUseCase,
	refreshUseCase *quote.RefreshQuotesUseCase,
) *PriceController {
	return &PriceController{
		upsertUseCase:  upsertUseCase,
		listUseCase:    listUseCase,
		refreshUseCase: refreshUseCase,
	}
}

// Upsert handles POST /prices requests. A second mark for the same asset and
// day replaces the first.
func (c *PriceController) Upsert(ctx *gin.Context) {
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
	var req dto.UpsertPriceRequest
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
	value, err := decimal.NewFromString(req.Price)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid price format",
		})
		return
	}

	// Execute use case
	saved, err := c.upsertUseCase.Execute(ctx.Request.Context(), price.UpsertPriceInput{
		UserID:  userID,
		AssetID: assetID,
		Date:    date,
		Price:   value,
		Source:  req.Source,
	})
	if err != nil {
		c.handlePriceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPriceResponse(saved))
}

// List handles GET /prices requests.
func (c *PriceController) List(ctx *gin.Context) {
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
	assetID, err := uuid.Parse(ctx.Query("assetId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid asset ID format",
		})
		return
	}
	input := price.ListPricesInput{
		UserID:  userID,
		AssetID: assetID,
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err == nil && limit > 0 {
			input.Limit = limit
		}
	}

	// Execute use case
	prices, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePriceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPriceListResponse(prices))
}

// Refresh handles POST /prices/refresh requests. It fetches current quotes
// for the requested assets (or all quotable assets) and saves them as
// today's marks.
func (c *PriceController) Refresh(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse request body; an empty or missing body refreshes everything
	var req dto.RefreshQuotesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		req = dto.RefreshQuotesRequest{}
	}

	// Build input
	input := quote.RefreshQuotesInput{
		UserID:  userID,
		Workers: req.Workers,
	}
	for _, idStr := range req.AssetIDs {
		assetID, err := uuid.Parse(idStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid asset ID format",
			})
			return
		}
		input.AssetIDs = append(input.AssetIDs, assetID)
	}

	// Execute use case
	output, err := c.refreshUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to refresh quotes",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRefreshQuotesResponse(output))
}

// handlePriceError handles investment errors and returns appropriate HTTP responses.
func (c *PriceController) handlePriceError(ctx *gin.Context, err error) {
	var invErr *domainerror.InvestmentError
	if errors.As(err, &invErr) {
		statusCode := getStatusCodeForInvestmentError(invErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: invErr.Message,
			Code:  string(invErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
