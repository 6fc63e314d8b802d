package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/controle-financeiro/backend/internal/application/usecase/asset"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/dto"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/middleware"
)

// AssetController handles asset endpoints.
type AssetController struct {
	listUseCase   *asset.ListAssetsUseCase
	createUseCase *asset.CreateAssetUseCase
	updateUseCase *asset.UpdateAssetUseCase
	deleteUseCase *asset.DeleteAssetUseCase
}

// NewAssetController creates a new asset controller instance.
func NewAssetController(
	listUseCase *asset.ListAssetsUseCase,
	createUseCase *asset.CreateAssetUseCase,
	updateUseCase *asset.UpdateAssetUseCase,
	deleteUseCase *asset.DeleteAssetUseCase,
) *AssetController {
	return &AssetController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /assets requests.
func (c *AssetController) List(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Execute use case
	assets, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve assets",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssetListResponse(assets))
}

// Create handles POST /assets requests.
func (c *AssetController) Create(ctx *gin.Context) {
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
	var req dto.CreateAssetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	// Build input
	input := asset.CreateAssetInput{
		UserID:     userID,
		Symbol:     req.Symbol,
		Name:       req.Name,
		AssetClass: entity.AssetClass(req.AssetClass),
		Sector:     req.Sector,
		Currency:   entity.Currency(req.Currency),
		Issuer:     req.Issuer,
	}
	if ok := c.parseAccountRefs(ctx, req.BrokerAccountID, req.SourceAccountID, req.MaturityDate, &input.BrokerAccountID, &input.SourceAccountID, &input.MaturityDate); !ok {
		return
	}

	// Execute use case
	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAssetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAssetResponse(output.Asset))
}

// Update handles PUT /assets/:id requests.
func (c *AssetController) Update(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse asset ID from URL
	assetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid asset ID format",
		})
		return
	}

	// Parse request body
	var req dto.UpdateAssetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	// Build input
	input := asset.UpdateAssetInput{
		UserID:     userID,
		AssetID:    assetID,
		Symbol:     req.Symbol,
		Name:       req.Name,
		AssetClass: entity.AssetClass(req.AssetClass),
		Sector:     req.Sector,
		Currency:   entity.Currency(req.Currency),
		Issuer:     req.Issuer,
	}
	if ok := c.parseAccountRefs(ctx, req.BrokerAccountID, req.SourceAccountID, req.MaturityDate, &input.BrokerAccountID, &input.SourceAccountID, &input.MaturityDate); !ok {
		return
	}

	// Execute use case
	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAssetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssetResponse(updated))
}

// Delete handles DELETE /assets/:id requests.
func (c *AssetController) Delete(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse asset ID from URL
	assetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid asset ID format",
		})
		return
	}

	// Execute use case
	err = c.deleteUseCase.Execute(ctx.Request.Context(), asset.DeleteAssetInput{
		UserID:  userID,
		AssetID: assetID,
	})
	if err != nil {
		c.handleAssetError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseAccountRefs parses the optional account and maturity fields shared by
// create and update. It writes an error response and returns false on bad
// input.
func (c *AssetController) parseAccountRefs(
	ctx *gin.Context,
	brokerAccountID, sourceAccountID, maturityDate *string,
	brokerOut, sourceOut **uuid.UUID,
	maturityOut **time.Time,
) bool {
	if brokerAccountID != nil {
		brokerID, err := uuid.Parse(*brokerAccountID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid broker account ID format",
			})
			return false
		}
		*brokerOut = &brokerID
	}
	if sourceAccountID != nil {
		sourceID, err := uuid.Parse(*sourceAccountID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid source account ID format",
			})
			return false
		}
		*sourceOut = &sourceID
	}
	if maturityDate != nil {
		maturity, err := time.Parse("2006-01-02", *maturityDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid maturity date format, expected YYYY-MM-DD",
			})
			return false
		}
		*maturityOut = &maturity
	}
	return true
}

// handleAssetError handles investment errors and returns appropriate HTTP responses.
func (c *AssetController) handleAssetError(ctx *gin.Context, err error) {
	var invErr *domainerror.InvestmentError
	if errors.As(err, &invErr) {
		statusCode := getStatusCodeForInvestmentError(invErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: invErr.Message,
			Code:  string(invErr.Code),
		})
		return
	}

	// Account errors surface when a linked account is invalid
	var accErr *domainerror.AccountError
	if errors.As(err, &accErr) {
		statusCode := http.StatusBadRequest
		if accErr.Code == domainerror.ErrCodeAccountNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: accErr.Message,
			Code:  string(accErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForInvestmentError maps investment error codes to HTTP status
// codes. Shared by the asset, trade, income and price controllers.
func getStatusCodeForInvestmentError(code domainerror.InvestmentErrorCode) int {
	switch code {
	case domainerror.ErrCodeAssetNotFound,
		domainerror.ErrCodeTradeNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAssetSymbolTaken,
		domainerror.ErrCodeAssetInUse,
		domainerror.ErrCodeInsufficientBrokerCash:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidAssetClass,
		domainerror.ErrCodeAssetSymbolRequired,
		domainerror.ErrCodeInvalidTradeSide,
		domainerror.ErrCodeInvalidTradeQuantity,
		domainerror.ErrCodeInvalidTradePrice,
		domainerror.ErrCodeInvalidTradeCosts,
		domainerror.ErrCodeExchangeRateRequired,
		domainerror.ErrCodeInvalidIncomeType,
		domainerror.ErrCodeInvalidIncomeAmount,
		domainerror.ErrCodeInvalidPrice:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
