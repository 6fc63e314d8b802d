package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
	"github.com/controle-financeiro/backend/internal/integration/persistence/model"
)

// invoiceRepository implements the adapter.InvoiceRepository interface.
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository instance.
func NewInvoiceRepository(db *gorm.DB) adapter.InvoiceRepository {
	return &invoiceRepository{
		db: db,
	}
}

// RegisterCharges appends the charges and upserts each touched invoice's
// total in one storage transaction.
func (r *invoiceRepository) RegisterCharges(ctx context.Context, userID uuid.UUID, cardID uuid.UUID, charges []*entity.CreditCardCharge, dueDateFor func(period string) time.Time) error {
	if len(charges) == 0 {
		return nil
	}

	// Sum the new amounts per invoice period before touching storage.
	periodTotals := make(map[string]decimal.Decimal)
	for _, charge := range charges {
		periodTotals[charge.InvoicePeriod] = periodTotals[charge.InvoicePeriod].Add(charge.Amount)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, charge := range charges {
			if err := tx.Create(model.ChargeFromEntity(charge)).Error; err != nil {
				return err
			}
		}

		for period, total := range periodTotals {
			var invoiceModel model.CreditCardInvoiceModel
			err := tx.
				Where("user_id = ? AND card_id = ? AND invoice_period = ?", userID, cardID, period).
				First(&invoiceModel).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				invoice := &entity.CreditCardInvoice{
					ID:            uuid.New(),
					UserID:        userID,
					CardID:        cardID,
					InvoicePeriod: period,
					DueDate:       dueDateFor(period),
					TotalAmount:   total,
					PaidAmount:    decimal.Zero,
					CreatedAt:     time.Now().UTC(),
					UpdatedAt:     time.Now().UTC(),
				}
				if err := tx.Create(model.InvoiceFromEntity(invoice)).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}

			invoiceModel.TotalAmount = invoiceModel.TotalAmount.Add(total)
			invoiceModel.UpdatedAt = time.Now().UTC()
			if err := tx.Save(&invoiceModel).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindInvoice retrieves one card invoice by period for the given user.
func (r *invoiceRepository) FindInvoice(ctx context.Context, userID, cardID uuid.UUID, period string) (*entity.CreditCardInvoice, error) {
	var invoiceModel model.CreditCardInvoiceModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND card_id = ? AND invoice_period = ?", userID, cardID, period).
		First(&invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvoiceNotFound
		}
		return nil, result.Error
	}
	return invoiceModel.ToEntity(), nil
}

// FindInvoiceByID retrieves an invoice by ID for the given user.
func (r *invoiceRepository) FindInvoiceByID(ctx context.Context, userID, id uuid.UUID) (*entity.CreditCardInvoice, error) {
	var invoiceModel model.CreditCardInvoiceModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvoiceNotFound
		}
		return nil, result.Error
	}
	return invoiceModel.ToEntity(), nil
}

// ListInvoices retrieves the user's invoices matching the filter.
func (r *invoiceRepository) ListInvoices(ctx context.Context, userID uuid.UUID, filter adapter.InvoiceListFilter) ([]*entity.CreditCardInvoice, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.CardID != nil {
		query = query.Where("card_id = ?", *filter.CardID)
	}

	var invoiceModels []model.CreditCardInvoiceModel
	result := query.Order("due_date DESC").Find(&invoiceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	invoices := make([]*entity.CreditCardInvoice, 0, len(invoiceModels))
	for i := range invoiceModels {
		invoice := invoiceModels[i].ToEntity()
		// Status is derived from amounts, so it filters in memory.
		if filter.Status != nil && invoice.Status() != *filter.Status {
			continue
		}
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}

// FindChargeByID retrieves a charge by ID for the given user.
func (r *invoiceRepository) FindChargeByID(ctx context.Context, userID, id uuid.UUID) (*entity.CreditCardCharge, error) {
	var chargeModel model.CreditCardChargeModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&chargeModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrChargeNotFound
		}
		return nil, result.Error
	}
	return chargeModel.ToEntity(), nil
}

// ListCharges retrieves the user's charges matching the filter.
func (r *invoiceRepository) ListCharges(ctx context.Context, userID uuid.UUID, filter adapter.ChargeFilter) ([]*entity.CreditCardCharge, error) {
	var chargeModels []model.CreditCardChargeModel
	result := r.chargeQuery(ctx, userID, filter).Find(&chargeModels)
	if result.Error != nil {
		return nil, result.Error
	}

	charges := make([]*entity.CreditCardCharge, len(chargeModels))
	for i := range chargeModels {
		charges[i] = chargeModels[i].ToEntity()
	}
	return charges, nil
}

// ListChargesWithDetails resolves card and category for each charge.
func (r *invoiceRepository) ListChargesWithDetails(ctx context.Context, userID uuid.UUID, filter adapter.ChargeFilter) ([]*entity.ChargeWithDetails, error) {
	var chargeModels []model.CreditCardChargeModel
	result := r.chargeQuery(ctx, userID, filter).
		Preload("Card").
		Preload("Category").
		Find(&chargeModels)
	if result.Error != nil {
		return nil, result.Error
	}

	details := make([]*entity.ChargeWithDetails, len(chargeModels))
	for i := range chargeModels {
		details[i] = chargeModels[i].ToEntityWithDetails()
	}
	return details, nil
}

func (r *invoiceRepository) chargeQuery(ctx context.Context, userID uuid.UUID, filter adapter.ChargeFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.CreditCardChargeModel{}).
		Where("user_id = ?", userID)

	if filter.CardID != nil {
		query = query.Where("card_id = ?", *filter.CardID)
	}
	if filter.InvoicePeriod != "" {
		query = query.Where("invoice_period = ?", filter.InvoicePeriod)
	}
	if filter.Paid != nil {
		query = query.Where("paid = ?", *filter.Paid)
	}
	if filter.StartDate != nil {
		query = query.Where("purchase_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("purchase_date <= ?", *filter.EndDate)
	}

	return query.Order("purchase_date ASC, id ASC")
}

// ApplyPayment increments the invoice's paid amount, optionally flips the
// period's charges to paid and inserts the cash transactions, all in one
// storage transaction.
func (r *invoiceRepository) ApplyPayment(ctx context.Context, userID, invoiceID uuid.UUID, amount decimal.Decimal, markChargesPaid bool, cashTransactions []*entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoiceModel model.CreditCardInvoiceModel
		err := tx.
			Where("user_id = ? AND id = ?", userID, invoiceID).
			First(&invoiceModel).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerror.ErrInvoiceNotFound
		}
		if err != nil {
			return err
		}

		invoiceModel.PaidAmount = invoiceModel.PaidAmount.Add(amount)
		invoiceModel.UpdatedAt = time.Now().UTC()
		if err := tx.Save(&invoiceModel).Error; err != nil {
			return err
		}

		if markChargesPaid {
			err := tx.Model(&model.CreditCardChargeModel{}).
				Where("user_id = ? AND card_id = ? AND invoice_period = ? AND paid = ?",
					userID, invoiceModel.CardID, invoiceModel.InvoicePeriod, false).
				Updates(map[string]any{"paid": true, "updated_at": time.Now().UTC()}).Error
			if err != nil {
				return err
			}
		}

		for _, cash := range cashTransactions {
			if err := tx.Create(model.TransactionFromEntity(cash)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteCharges removes the charges, decrements their invoices and drops
// invoice rows left with nothing owed, all in one storage transaction.
func (r *invoiceRepository) DeleteCharges(ctx context.Context, userID uuid.UUID, chargeIDs []uuid.UUID) error {
	if len(chargeIDs) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var chargeModels []model.CreditCardChargeModel
		err := tx.
			Where("user_id = ? AND id IN ?", userID, chargeIDs).
			Find(&chargeModels).Error
		if err != nil {
			return err
		}
		if len(chargeModels) != len(chargeIDs) {
			return domainerror.ErrChargeNotFound
		}

		type invoiceKey struct {
			cardID uuid.UUID
			period string
		}
		removed := make(map[invoiceKey]decimal.Decimal)
		for _, charge := range chargeModels {
			key := invoiceKey{cardID: charge.CardID, period: charge.InvoicePeriod}
			removed[key] = removed[key].Add(charge.Amount)
		}

		err = tx.
			Where("user_id = ? AND id IN ?", userID, chargeIDs).
			Delete(&model.CreditCardChargeModel{}).Error
		if err != nil {
			return err
		}

		for key, amount := range removed {
			var invoiceModel model.CreditCardInvoiceModel
			err := tx.
				Where("user_id = ? AND card_id = ? AND invoice_period = ?", userID, key.cardID, key.period).
				First(&invoiceModel).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			invoiceModel.TotalAmount = invoiceModel.TotalAmount.Sub(amount)
			if !invoiceModel.TotalAmount.IsPositive() && !invoiceModel.PaidAmount.IsPositive() {
				if err := tx.Delete(&invoiceModel).Error; err != nil {
					return err
				}
				continue
			}

			invoiceModel.UpdatedAt = time.Now().UTC()
			if err := tx.Save(&invoiceModel).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
