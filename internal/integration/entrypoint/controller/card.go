package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/usecase/card"
	"github.com/controle-financeiro/backend/internal/application/usecase/invoice"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/dto"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/middleware"
)

// CardController handles card, charge and invoice endpoints.
type CardController struct {
	listUseCase           *card.ListCardsUseCase
	createUseCase         *card.CreateCardUseCase
	updateUseCase         *card.UpdateCardUseCase
	deleteUseCase         *card.DeleteCardUseCase
	registerChargeUseCase *invoice.RegisterChargeUseCase
	listChargesUseCase    *invoice.ListChargesUseCase
	deleteChargeUseCase   *invoice.DeleteChargeUseCase
	listInvoicesUseCase   *invoice.ListInvoicesUseCase
	payInvoiceUseCase     *invoice.PayInvoiceUseCase
}

// NewCardController creates a new card controller instance.
func NewCardController(
	listUseCase *card.ListCardsUseCase,
	createUseCase *card.CreateCardUseCase,
	updateUseCase *card.UpdateCardUseCase,
	deleteUseCase *card.DeleteCardUseCase,
	registerChargeUseCase *invoice.RegisterChargeUseCase,
	listChargesUseCase *invoice.ListChargesUseCase,
	deleteChargeUseCase *invoice.DeleteChargeUseCase,
	listInvoicesUseCase *invoice.ListInvoicesUseCase,
	payInvoiceUseCase *invoice.PayInvoiceUseCase,
) *CardController {
	return &CardController{
		listUseCase:           listUseCase,
		createUseCase:         createUseCase,
		updateUseCase:         updateUseCase,
		deleteUseCase:         deleteUseCase,
		registerChargeUseCase: registerChargeUseCase,
		listChargesUseCase:    listChargesUseCase,
		deleteChargeUseCase:   deleteChargeUseCase,
		listInvoicesUseCase:   listInvoicesUseCase,
		payInvoiceUseCase:     payInvoiceUseCase,
	}
}

// List handles GET /cards requests.
func (c *CardController) List(ctx *gin.Context) {
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
	cards, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve cards",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardListResponse(cards))
}

// Create handles POST /cards requests.
func (c *CardController) Create(ctx *gin.Context) {
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
	var req dto.CreateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}
	cardAccountID, err := uuid.Parse(req.CardAccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card account ID format",
		})
		return
	}

	// Build input
	input := card.CreateCardInput{
		UserID:        userID,
		Name:          req.Name,
		Brand:         entity.CardBrand(req.Brand),
		Model:         req.Model,
		CardType:      entity.CardType(req.CardType),
		CardAccountID: cardAccountID,
		DueDay:        req.DueDay,
		CloseDay:      req.CloseDay,
	}
	if req.SourceAccountID != nil {
		sourceID, err := uuid.Parse(*req.SourceAccountID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid source account ID format",
			})
			return
		}
		input.SourceAccountID = &sourceID
	}

	// Execute use case
	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCardResponse(output.Card))
}

// Update handles PUT /cards/:id requests.
func (c *CardController) Update(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse card ID from URL
	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID format",
		})
		return
	}

	// Parse request body
	var req dto.UpdateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}
	cardAccountID, err := uuid.Parse(req.CardAccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card account ID format",
		})
		return
	}

	// Build input
	input := card.UpdateCardInput{
		UserID:        userID,
		CardID:        cardID,
		Name:          req.Name,
		Brand:         entity.CardBrand(req.Brand),
		Model:         req.Model,
		CardType:      entity.CardType(req.CardType),
		CardAccountID: cardAccountID,
		DueDay:        req.DueDay,
		CloseDay:      req.CloseDay,
	}
	if req.SourceAccountID != nil {
		sourceID, err := uuid.Parse(*req.SourceAccountID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid source account ID format",
			})
			return
		}
		input.SourceAccountID = &sourceID
	}

	// Execute use case
	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardResponse(updated))
}

// Delete handles DELETE /cards/:id requests.
func (c *CardController) Delete(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse card ID from URL
	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID format",
		})
		return
	}

	// Execute use case
	err = c.deleteUseCase.Execute(ctx.Request.Context(), card.DeleteCardInput{
		UserID: userID,
		CardID: cardID,
	})
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RegisterCharge handles POST /cards/charges requests.
func (c *CardController) RegisterCharge(ctx *gin.Context) {
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
	var req dto.RegisterChargeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}
	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID format",
		})
		return
	}
	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid purchase date format, expected YYYY-MM-DD",
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

	// Build input
	input := invoice.RegisterChargeInput{
		UserID:       userID,
		CardID:       cardID,
		PurchaseDate: purchaseDate,
		Amount:       amount,
		Description:  req.Description,
		Note:         req.Note,
		Installments: req.Installments,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return
		}
		input.CategoryID = &categoryID
	}

	// Execute use case
	output, err := c.registerChargeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	// Build response
	response := dto.RegisterChargeResponse{
		Charges: make([]dto.ChargeResponse, len(output.Charges)),
	}
	for i, charge := range output.Charges {
		response.Charges[i] = dto.ToChargeResponse(charge)
	}
	ctx.JSON(http.StatusCreated, response)
}

// ListCharges handles GET /cards/charges requests.
func (c *CardController) ListCharges(ctx *gin.Context) {
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
	input := invoice.ListChargesInput{
		UserID:        userID,
		InvoicePeriod: ctx.Query("invoicePeriod"),
	}
	if cardIDStr := ctx.Query("cardId"); cardIDStr != "" {
		cardID, err := uuid.Parse(cardIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid card ID format",
			})
			return
		}
		input.CardID = &cardID
	}
	if paidStr := ctx.Query("paid"); paidStr != "" {
		paid := paidStr == "true"
		input.Paid = &paid
	}

	// Execute use case
	output, err := c.listChargesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToChargeListResponse(output.Charges))
}

// DeleteCharge handles DELETE /cards/charges/:id requests. The scope query
// parameter selects single-charge or future-installments deletion.
func (c *CardController) DeleteCharge(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse charge ID from URL
	chargeID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid charge ID format",
		})
		return
	}

	// Parse scope query parameter
	scope := invoice.DeleteScopeSingle
	if ctx.Query("scope") == string(invoice.DeleteScopeFuture) {
		scope = invoice.DeleteScopeFuture
	}

	// Execute use case
	output, err := c.deleteChargeUseCase.Execute(ctx.Request.Context(), invoice.DeleteChargeInput{
		UserID:   userID,
		ChargeID: chargeID,
		Scope:    scope,
	})
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteChargeResponse{Deleted: output.Deleted})
}

// ListInvoices handles GET /cards/invoices requests.
func (c *CardController) ListInvoices(ctx *gin.Context) {
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
	input := invoice.ListInvoicesInput{UserID: userID}
	if cardIDStr := ctx.Query("cardId"); cardIDStr != "" {
		cardID, err := uuid.Parse(cardIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid card ID format",
			})
			return
		}
		input.CardID = &cardID
	}
	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.InvoiceStatus(statusStr)
		input.Status = &status
	}

	// Execute use case
	output, err := c.listInvoicesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceListResponse(output.Invoices))
}

// PayInvoice handles POST /cards/invoices/:id/pay requests.
func (c *CardController) PayInvoice(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse invoice ID from URL
	invoiceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid invoice ID format",
		})
		return
	}

	// Parse request body
	var req dto.PayInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid payment date format, expected YYYY-MM-DD",
		})
		return
	}

	// Build input
	input := invoice.PayInvoiceInput{
		UserID:      userID,
		InvoiceID:   invoiceID,
		PaymentDate: paymentDate,
	}
	if req.SourceAccountID != nil {
		sourceID, err := uuid.Parse(*req.SourceAccountID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid source account ID format",
			})
			return
		}
		input.SourceAccountID = &sourceID
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount format",
			})
			return
		}
		input.Amount = &amount
	}

	// Execute use case
	output, err := c.payInvoiceUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PayInvoiceResponse{
		Invoice:      dto.ToInvoiceResponse(output.Invoice),
		Transactions: len(output.Transactions),
	})
}

// handleCardError handles card errors and returns appropriate HTTP responses.
func (c *CardController) handleCardError(ctx *gin.Context, err error) {
	var cardErr *domainerror.CardError
	if errors.As(err, &cardErr) {
		statusCode := c.getStatusCodeForCardError(cardErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: cardErr.Message,
			Code:  string(cardErr.Code),
		})
		return
	}

	// Account errors surface when a card or payment account is invalid
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

// getStatusCodeForCardError maps card error codes to HTTP status codes.
func (c *CardController) getStatusCodeForCardError(code domainerror.CardErrorCode) int {
	switch code {
	case domainerror.ErrCodeCardNotFound,
		domainerror.ErrCodeChargeNotFound,
		domainerror.ErrCodeInvoiceNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCardNameTaken,
		domainerror.ErrCodeCardInUse,
		domainerror.ErrCodeChargeAlreadyPaid,
		domainerror.ErrCodeInvoiceAlreadyPaid,
		domainerror.ErrCodeNoPayingAccount:
		return http.StatusConflict
	case domainerror.ErrCodeCardNameRequired,
		domainerror.ErrCodeInvalidCardBrand,
		domainerror.ErrCodeInvalidCardType,
		domainerror.ErrCodeInvalidDueCloseDay,
		domainerror.ErrCodeCardAccountNotBank,
		domainerror.ErrCodeInvalidChargeAmount,
		domainerror.ErrCodeInvalidInstallments,
		domainerror.ErrCodeChargeCategory:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
