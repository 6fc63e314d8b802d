package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// MaxInstallments caps an installment series.
const MaxInstallments = 120

// RegisterChargeInput represents the input for registering a card charge.
type RegisterChargeInput struct {
	UserID       uuid.UUID
	CardID       uuid.UUID
	PurchaseDate time.Time
	Amount       decimal.Decimal // per installment, positive
	CategoryID   *uuid.UUID
	Description  string
	Note         string
	Installments int // 0 or 1 = single charge
}

// RegisterChargeOutput represents the created charges.
type RegisterChargeOutput struct {
	Charges []*entity.CreditCardCharge
}

// RegisterChargeUseCase assigns purchases to card invoices.
type RegisterChargeUseCase struct {
	cardRepo     adapter.CardRepository
	invoiceRepo  adapter.InvoiceRepository
	categoryRepo adapter.CategoryRepository
}

// NewRegisterChargeUseCase creates a new RegisterChargeUseCase instance.
func NewRegisterChargeUseCase(
	cardRepo adapter.CardRepository,
	invoiceRepo adapter.InvoiceRepository,
	categoryRepo adapter.CategoryRepository,
) *RegisterChargeUseCase {
	return &RegisterChargeUseCase{
		cardRepo:     cardRepo,
		invoiceRepo:  invoiceRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute resolves the invoice period for each installment and appends the
// charges, upserting the touched invoices in one storage transaction.
func (uc *RegisterChargeUseCase) Execute(ctx context.Context, input RegisterChargeInput) (*RegisterChargeOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidChargeAmount,
			"valor da compra deve ser maior que zero",
			domainerror.ErrInvalidChargeAmount,
		)
	}

	installments := input.Installments
	if installments == 0 {
		installments = 1
	}
	if installments < 1 || installments > MaxInstallments {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidInstallments,
			fmt.Sprintf("parcelamento deve estar entre 1 e %d", MaxInstallments),
			domainerror.ErrInvalidInstallments,
		)
	}

	card, err := uc.cardRepo.FindByID(ctx, input.UserID, input.CardID)
	if err != nil {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardNotFound,
			"cartão de crédito inválido ou não encontrado",
			domainerror.ErrCardNotFound,
		)
	}
	if card.CardType != entity.CardTypeCredit {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidCardType,
			"compras no crédito exigem um cartão do tipo Crédito",
			domainerror.ErrInvalidCardType,
		)
	}

	if input.CategoryID != nil {
		if _, err := uc.categoryRepo.FindByID(ctx, input.UserID, *input.CategoryID); err != nil {
			return nil, domainerror.NewCardError(
				domainerror.ErrCodeChargeCategory,
				"categoria inválida",
				domainerror.ErrCategoryNotFound,
			)
		}
	}

	description := input.Description
	if description == "" {
		description = "Compra no cartão"
	}

	note := input.Note
	if installments > 1 {
		note = entity.AppendGroupTag(note, uuid.NewString())
	}

	firstPeriod := ResolvePeriod(card, input.PurchaseDate)
	charges := make([]*entity.CreditCardCharge, 0, installments)
	for i := 0; i < installments; i++ {
		period := NextPeriod(firstPeriod, i)
		desc := description
		if installments > 1 {
			desc = fmt.Sprintf("%s (%d/%d)", description, i+1, installments)
		}
		charges = append(charges, entity.NewCreditCardCharge(
			input.UserID,
			card.ID,
			input.PurchaseDate,
			input.Amount,
			input.CategoryID,
			desc,
			period,
			DueDate(card, period),
			note,
		))
	}

	dueDateFor := func(period string) time.Time { return DueDate(card, period) }
	if err := uc.invoiceRepo.RegisterCharges(ctx, input.UserID, card.ID, charges, dueDateFor); err != nil {
		return nil, fmt.Errorf("registering charges: %w", err)
	}

	return &RegisterChargeOutput{Charges: charges}, nil
}
