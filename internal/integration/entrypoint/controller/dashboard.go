package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/controle-financeiro/backend/internal/application/usecase/ledger"
	"github.com/controle-financeiro/backend/internal/application/usecase/portfolio"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/dto"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard and portfolio report endpoints.
type DashboardController struct {
	dashboardUseCase *ledger.GetDashboardUseCase
	portfolioUseCase *portfolio.GetPortfolioUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	dashboardUseCase *ledger.GetDashboardUseCase,
	portfolioUseCase *portfolio.GetPortfolioUseCase,
) *DashboardController {
	return &DashboardController{
		dashboardUseCase: dashboardUseCase,
		portfolioUseCase: portfolioUseCase,
	}
}

// GetDashboard handles GET /dashboard requests. The view query parameter
// selects the projection the aggregations run over.
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
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
	input := ledger.GetDashboardInput{
		UserID:  userID,
		View:    ledger.NormalizeView(ctx.Query("view")),
		Account: ctx.Query("account"),
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
	output, err := c.dashboardUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to build dashboard",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output))
}

// GetPortfolio handles GET /portfolio requests. The asOf query parameter
// values positions at a historical date; it defaults to today.
func (c *DashboardController) GetPortfolio(ctx *gin.Context) {
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
	input := portfolio.GetPortfolioInput{UserID: userID}
	if asOfStr := ctx.Query("asOf"); asOfStr != "" {
		asOf, err := time.Parse("2006-01-02", asOfStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid asOf date format, expected YYYY-MM-DD",
			})
			return
		}
		input.AsOf = &asOf
	}

	// Execute use case
	output, err := c.portfolioUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to build portfolio",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPortfolioResponse(output.Positions, output.Summary))
}
