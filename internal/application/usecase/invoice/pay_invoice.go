package invoice

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
)

// InvoicePaymentCategory is the fallback category for payment rows whose
// charges carry no category.
const InvoicePaymentCategory = "Fatura Cartão"

// PayInvoiceInput represents the input for paying a card invoice.
type PayInvoiceInput struct {
	UserID          uuid.UUID
	InvoiceID       uuid.UUID
	PaymentDate     time.Time
	SourceAccountID *uuid.UUID       // defaults to the card's source account
	Amount          *decimal.Decimal // defaults to the full remaining amount
}

// PayInvoiceOutput represents the emitted payment transactions.
type PayInvoiceOutput struct {
	Invoice      *entity.CreditCardInvoice
	Transactions []*entity.Transaction
}

// PaymentChunk is one category's share of an invoice payment.
type PaymentChunk struct {
	CategoryID   *uuid.UUID
	CategoryName string
	Amount       decimal.Decimal
}

// PayInvoiceUseCase settles card invoices into cash transactions.
type PayInvoiceUseCase struct {
	cardRepo     adapter.CardRepository
	invoiceRepo  adapter.InvoiceRepository
	accountRepo  adapter.AccountRepository
	categoryRepo adapter.CategoryRepository
}

// NewPayInvoiceUseCase creates a new PayInvoiceUseCase instance.
func NewPayInvoiceUseCase(
	cardRepo adapter.CardRepository,
	invoiceRepo adapter.InvoiceRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
) *PayInvoiceUseCase {
	return &PayInvoiceUseCase{
		cardRepo:     cardRepo,
		invoiceRepo:  invoiceRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute pays the invoice. The paid amount is split across the period's
// unpaid charges proportionally to each category's share, one negative cash
// transaction per chunk, all applied in one storage transaction. Paying an
// invoice with nothing outstanding is an explicit domain error.
func (uc *PayInvoiceUseCase) Execute(ctx context.Context, input PayInvoiceInput) (*PayInvoiceOutput, error) {
	inv, err := uc.invoiceRepo.FindInvoiceByID(ctx, input.UserID, input.InvoiceID)
	if err != nil {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvoiceNotFound,
			"fatura não encontrada",
			domainerror.ErrInvoiceNotFound,
		)
	}

	remaining := inv.Remaining()
	if !remaining.IsPositive() {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvoiceAlreadyPaid,
			"fatura já está quitada",
			domainerror.ErrInvoiceAlreadyPaid,
		)
	}

	amount := remaining
	if input.Amount != nil {
		amount = *input.Amount
		if !amount.IsPositive() || amount.GreaterThan(remaining) {
			return nil, domainerror.NewCardError(
				domainerror.ErrCodeInvalidChargeAmount,
				"valor do pagamento deve ser positivo e não exceder o saldo da fatura",
				domainerror.ErrInvalidChargeAmount,
			)
		}
	}

	card, err := uc.cardRepo.FindByID(ctx, input.UserID, inv.CardID)
	if err != nil {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardNotFound,
			"cartão da fatura não encontrado",
			domainerror.ErrCardNotFound,
		)
	}

	payingAccount, err := uc.resolvePayingAccount(ctx, input.UserID, card, input.SourceAccountID)
	if err != nil {
		return nil, err
	}

	unpaid := false
	charges, err := uc.invoiceRepo.ListCharges(ctx, input.UserID, adapter.ChargeFilter{
		CardID:        &inv.CardID,
		InvoicePeriod: inv.InvoicePeriod,
		Paid:          &unpaid,
	})
	if err != nil {
		return nil, fmt.Errorf("loading unpaid charges: %w", err)
	}

	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	categoryNames := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	chunks := SplitPayment(amount, charges, categoryNames)

	fallback, err := uc.categoryRepo.GetOrCreate(ctx, input.UserID, InvoicePaymentCategory, entity.CategoryKindExpense)
	if err != nil {
		return nil, fmt.Errorf("resolving fallback category: %w", err)
	}

	baseDesc := fmt.Sprintf("PGTO FATURA %s (%s)", card.Name, inv.InvoicePeriod)
	transactions := make([]*entity.Transaction, 0, len(chunks))
	for _, chunk := range chunks {
		desc := baseDesc
		if len(chunks) > 1 {
			desc = fmt.Sprintf("%s - %s", baseDesc, chunk.CategoryName)
		}
		categoryID := chunk.CategoryID
		if categoryID == nil {
			id := fallback.ID
			categoryID = &id
		}
		transactions = append(transactions, entity.NewTransaction(
			input.UserID,
			input.PaymentDate,
			desc,
			chunk.Amount.Neg(),
			payingAccount.ID,
			categoryID,
			entity.MethodCredit,
			"",
		))
	}

	settlesInvoice := amount.Equal(remaining)
	if err := uc.invoiceRepo.ApplyPayment(ctx, input.UserID, inv.ID, amount, settlesInvoice, transactions); err != nil {
		return nil, fmt.Errorf("applying invoice payment: %w", err)
	}

	inv.PaidAmount = inv.PaidAmount.Add(amount)
	return &PayInvoiceOutput{Invoice: inv, Transactions: transactions}, nil
}

func (uc *PayInvoiceUseCase) resolvePayingAccount(
	ctx context.Context,
	userID uuid.UUID,
	card *entity.CreditCard,
	explicit *uuid.UUID,
) (*entity.Account, error) {
	accountID := card.SourceAccountID
	if explicit != nil {
		accountID = *explicit
	}

	account, err := uc.accountRepo.FindByID(ctx, userID, accountID)
	if err != nil || account.Type != entity.AccountTypeBank {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeNoPayingAccount,
			"pagamento de fatura exige uma conta do tipo Banco",
			domainerror.ErrNoPayingAccount,
		)
	}
	return account, nil
}

// SplitPayment distributes the paid amount across the unpaid charges'
// categories, proportionally to each category's share of the unpaid total.
// Chunks come out largest first; the last chunk takes whatever remains so
// the chunk sum equals the paid amount exactly. With no unpaid charges the
// whole amount lands in a single uncategorized chunk.
func SplitPayment(
	amount decimal.Decimal,
	unpaidCharges []*entity.CreditCardCharge,
	categoryNames map[uuid.UUID]string,
) []PaymentChunk {
	type group struct {
		categoryID *uuid.UUID
		name       string
		total      decimal.Decimal
	}

	groups := make(map[string]*group)
	order := make([]string, 0)
	unpaidTotal := decimal.Zero

	for _, ch := range unpaidCharges {
		key := ""
		name := InvoicePaymentCategory
		if ch.CategoryID != nil {
			key = ch.CategoryID.String()
			if n, ok := categoryNames[*ch.CategoryID]; ok {
				name = n
			}
		}
		g, ok := groups[key]
		if !ok {
			g = &group{categoryID: ch.CategoryID, name: name, total: decimal.Zero}
			groups[key] = g
			order = append(order, key)
		}
		g.total = g.total.Add(ch.Amount)
		unpaidTotal = unpaidTotal.Add(ch.Amount)
	}

	if len(groups) == 0 || !unpaidTotal.IsPositive() {
		return []PaymentChunk{{CategoryName: InvoicePaymentCategory, Amount: amount}}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return groups[order[i]].total.GreaterThan(groups[order[j]].total)
	})

	chunks := make([]PaymentChunk, 0, len(order))
	posted := decimal.Zero
	for i, key := range order {
		g := groups[key]
		var value decimal.Decimal
		if i == len(order)-1 {
			value = amount.Sub(posted)
		} else {
			value = g.total.Mul(amount).Div(unpaidTotal).Round(2)
			posted = posted.Add(value)
		}
		chunks = append(chunks, PaymentChunk{
			CategoryID:   g.categoryID,
			CategoryName: g.name,
			Amount:       value,
		})
	}

	return chunks
}
