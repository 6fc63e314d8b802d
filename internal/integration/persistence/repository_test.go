package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/controle-financeiro/backend/internal/application/adapter"
	"github.com/controle-financeiro/backend/internal/domain/entity"
	domainerror "github.com/controle-financeiro/backend/internal/domain/error"
	"github.com/controle-financeiro/backend/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.UserModel{},
		&model.AccountModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.CreditCardModel{},
		&model.CreditCardInvoiceModel{},
		&model.CreditCardChargeModel{},
		&model.AssetModel{},
		&model.TradeModel{},
		&model.IncomeEventModel{},
		&model.PriceModel{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()

	user := entity.NewUser("teste@exemplo.com", "Teste", "hash")
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user.ID
}

func seedAccount(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *entity.Account {
	t.Helper()

	account := entity.NewAccount(userID, name, entity.AccountTypeBank, entity.CurrencyBRL, true)
	if err := NewAccountRepository(db).Create(context.Background(), account); err != nil {
		t.Fatalf("seed account %s: %v", name, err)
	}
	return account
}

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestAccountRepositoryNameUniquePerUser(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)
	repo := NewAccountRepository(db)

	seedAccount(t, db, userID, "Nubank")

	duplicate := entity.NewAccount(userID, "Nubank", entity.AccountTypeBank, entity.CurrencyBRL, true)
	err := repo.Create(context.Background(), duplicate)
	if !errors.Is(err, domainerror.ErrAccountNameTaken) {
		t.Fatalf("expected ErrAccountNameTaken, got %v", err)
	}
}

func TestAccountRepositoryScopesByUser(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db)
	account := seedAccount(t, db, owner, "Nubank")

	other := uuid.New()
	_, err := NewAccountRepository(db).FindByID(context.Background(), other, account.ID)
	if !errors.Is(err, domainerror.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound for another user, got %v", err)
	}
}

func TestAccountRepositoryUsage(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)
	account := seedAccount(t, db, userID, "Corretora")
	repo := NewAccountRepository(db)

	tx := entity.NewTransaction(userID, day("2025-01-10"), "Mercado", decimal.NewFromInt(-50), account.ID, nil, entity.MethodPIX, "")
	if err := NewTransactionRepository(db).Create(context.Background(), tx); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	asset := entity.NewAsset(userID, "PETR4", "Petrobras", entity.AssetClassStockBR, "Energia", entity.CurrencyBRL, &account.ID, nil, "", nil)
	if err := NewAssetRepository(db).Create(context.Background(), asset); err != nil {
		t.Fatalf("create asset: %v", err)
	}

	usage, err := repo.Usage(context.Background(), userID, account.ID)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if usage.Transactions != 1 || usage.Assets != 1 || usage.Cards != 0 {
		t.Fatalf("unexpected usage: %+v", usage)
	}
	if !usage.InUse() {
		t.Fatal("expected account to be in use")
	}
}

func TestCategoryRepositoryGetOrCreate(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, userID, "Investimentos", entity.CategoryKindTransfer)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}

	second, err := repo.GetOrCreate(ctx, userID, "Investimentos", entity.CategoryKindExpense)
	if err != nil {
		t.Fatalf("second get or create: %v", err)
	}

	if first.ID != second.ID {
		t.Fatal("expected the same category on repeat calls")
	}
	if second.Kind != entity.CategoryKindTransfer {
		t.Fatalf("existing kind must win, got %s", second.Kind)
	}
}

func TestTransactionRepositorySumByAccount(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)
	account := seedAccount(t, db, userID, "Itaú")
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	amounts := []string{"1000", "-249.90", "35.50"}
	for i, raw := range amounts {
		tx := entity.NewTransaction(userID, day("2025-02-01").AddDate(0, 0, i), "Mov", decimal.RequireFromString(raw), account.ID, nil, entity.MethodPIX, "")
		if err := repo.Create(ctx, tx); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	sum, err := repo.SumByAccount(ctx, userID, account.ID)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if !sum.Equal(decimal.RequireFromString("785.60")) {
		t.Fatalf("expected 785.60, got %s", sum)
	}

	empty, err := repo.SumByAccount(ctx, userID, uuid.New())
	if err != nil {
		t.Fatalf("sum empty: %v", err)
	}
	if !empty.IsZero() {
		t.Fatalf("expected zero for unknown account, got %s", empty)
	}
}

func TestTransactionRepositoryFindByFilter(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)
	account := seedAccount(t, db, userID, "Itaú")
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	descriptions := []string{"Mercado Pão", "Aluguel", "MERCADO Feira"}
	for i, desc := range descriptions {
		tx := entity.NewTransaction(userID, day("2025-03-01").AddDate(0, 0, i), desc, decimal.NewFromInt(-10), account.ID, nil, entity.MethodPIX, "")
		if err := repo.Create(ctx, tx); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	found, err := repo.FindByFilter(ctx, userID, adapter.TransactionFilter{Search: "mercado"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(found))
	}
	if found[0].Description != "Mercado Pão" {
		t.Fatalf("expected date ascending order, got %s first", found[0].Description)
	}
}

func TestTradeRepositoryCreateWithCashLinksTransaction(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)
	broker := seedAccount(t, db, userID, "Corretora")
	repo := NewTradeRepository(db)
	ctx := context.Background()

	asset := entity.NewAsset(userID, "PETR4", "Petrobras", entity.AssetClassStockBR, "Energia", entity.CurrencyBRL, &broker.ID, nil, "", nil)
	if err := NewAssetRepository(db).Create(ctx, asset); err != nil {
		t.Fatalf("create asset: %v", err)
	}

	trade := entity.NewTrade(userID, asset.ID, day("2025-04-01"), entity.TradeSideBuy,
		decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.NewFromInt(1), decimal.NewFromInt(5), decimal.Zero, "")
	cash := entity.NewTransaction(userID, day("2025-04-01"), "INV BUY PETR4", decimal.NewFromInt(-1005), broker.ID, nil, entity.MethodInvestment, "")

	if err := repo.CreateWithCash(ctx, trade, cash); err != nil {
		t.Fatalf("create with cash: %v", err)
	}

	saved, err := repo.FindByID(ctx, userID, trade.ID)
	if err != nil {
		t.Fatalf("find trade: %v", err)
	}
	if saved.CashTransactionID == nil || *saved.CashTransactionID != cash.ID {
		t.Fatal("expected trade to record its cash transaction id")
	}

	if err := repo.DeleteWithCash(ctx, userID, trade.ID, cash.ID); err != nil {
		t.Fatalf("delete with cash: %v", err)
	}

	_, err = NewTransactionRepository(db).FindByID(ctx, userID, cash.ID)
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Fatalf("expected cash transaction gone, got %v", err)
	}
}

func TestTradeRepositoryDeleteWithReversal(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)
	broker := seedAccount(t, db, userID, "Corretora")
	repo := NewTradeRepository(db)
	ctx := context.Background()

	asset := entity.NewAsset(userID, "VALE3", "Vale", entity.AssetClassStockBR, "Mineração", entity.CurrencyBRL, &broker.ID, nil, "", nil)
	if err := NewAssetRepository(db).Create(ctx, asset); err != nil {
		t.Fatalf("create asset: %v", err)
	}

	trade := entity.NewTrade(userID, asset.ID, day("2024-01-01"), entity.TradeSideBuy,
		decimal.NewFromInt(10), decimal.NewFromInt(60), decimal.NewFromInt(1), decimal.Zero, decimal.Zero, "")
	if err := repo.Create(ctx, trade); err != nil {
		t.Fatalf("create legacy trade: %v", err)
	}

	reversal := entity.NewTransaction(userID, day("2024-01-01"), "REVERSAL INV BUY VALE3", decimal.NewFromInt(600), broker.ID, nil, entity.MethodInvestment, "")
	if err := repo.DeleteWithReversal(ctx, userID, trade.ID, reversal); err != nil {
		t.Fatalf("delete with reversal: %v", err)
	}

	_, err := repo.FindByID(ctx, userID, trade.ID)
	if !errors.Is(err, domainerror.ErrTradeNotFound) {
		t.Fatalf("expected trade gone, got %v", err)
	}

	posted, err := NewTransactionRepository(db).FindByID(ctx, userID, reversal.ID)
	if err != nil {
		t.Fatalf("find reversal: %v", err)
	}
	if !posted.Amount.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected reversal of 600, got %s", posted.Amount)
	}
}

func TestPriceRepositoryUpsertReplacesSameDay(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)
	repo := NewPriceRepository(db)
	ctx := context.Background()

	asset := entity.NewAsset(userID, "ITUB4", "Itaú", entity.AssetClassStockBR, "Bancos", entity.CurrencyBRL, nil, nil, "", nil)
	if err := NewAssetRepository(db).Create(ctx, asset); err != nil {
		t.Fatalf("create asset: %v", err)
	}

	first := entity.NewPrice(userID, asset.ID, day("2025-05-02"), decimal.RequireFromString("31.10"), "manual")
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := entity.NewPrice(userID, asset.ID, day("2025-05-02"), decimal.RequireFromString("31.55"), "brapi")
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	history, err := repo.FindByAsset(ctx, userID, asset.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one row per day, got %d", len(history))
	}
	if !history[0].Price.Equal(decimal.RequireFromString("31.55")) || history[0].Source != "brapi" {
		t.Fatalf("expected replaced price, got %s from %s", history[0].Price, history[0].Source)
	}
}

func TestPriceRepositoryLatestByAsset(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)
	repo := NewPriceRepository(db)
	ctx := context.Background()

	asset := entity.NewAsset(userID, "BOVA11", "iShares Ibovespa", entity.AssetClassETFBR, "", entity.CurrencyBRL, nil, nil, "", nil)
	if err := NewAssetRepository(db).Create(ctx, asset); err != nil {
		t.Fatalf("create asset: %v", err)
	}

	for _, row := range []struct {
		date  string
		price string
	}{
		{"2025-05-01", "120.00"},
		{"2025-05-10", "122.50"},
		{"2025-05-20", "119.00"},
	} {
		price := entity.NewPrice(userID, asset.ID, day(row.date), decimal.RequireFromString(row.price), "manual")
		if err := repo.Upsert(ctx, price); err != nil {
			t.Fatalf("upsert %s: %v", row.date, err)
		}
	}

	latest, err := repo.LatestByAsset(ctx, userID, day("2025-05-15"))
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	price, ok := latest[asset.ID]
	if !ok {
		t.Fatal("expected a latest price for the asset")
	}
	if !price.Price.Equal(decimal.RequireFromString("122.50")) {
		t.Fatalf("expected price as of 2025-05-10, got %s", price.Price)
	}
}

func seedCard(t *testing.T, db *gorm.DB, userID uuid.UUID) *entity.CreditCard {
	t.Helper()

	account := seedAccount(t, db, userID, "Conta Cartão "+uuid.NewString()[:8])
	card := entity.NewCreditCard(userID, "Visa Infinite", entity.CardBrandVisa, "", entity.CardTypeCredit, account.ID, account.ID, 10, 3)
	if err := NewCardRepository(db).Create(context.Background(), card); err != nil {
		t.Fatalf("seed card: %v", err)
	}
	return card
}

func TestInvoiceRepositoryRegisterChargesUpsertsInvoices(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)
	card := seedCard(t, db, userID)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	dueDateFor := func(period string) time.Time {
		parsed, _ := time.Parse("2006-01", period)
		return time.Date(parsed.Year(), parsed.Month(), card.DueDay, 0, 0, 0, 0, time.UTC)
	}

	charges := []*entity.CreditCardCharge{
		entity.NewCreditCardCharge(userID, card.ID, day("2025-06-01"), decimal.RequireFromString("100.00"), nil, "Mercado (1/2)", "2025-06", dueDateFor("2025-06"), ""),
		entity.NewCreditCardCharge(userID, card.ID, day("2025-06-01"), decimal.RequireFromString("100.00"), nil, "Mercado (2/2)", "2025-07", dueDateFor("2025-07"), ""),
		entity.NewCreditCardCharge(userID, card.ID, day("2025-06-05"), decimal.RequireFromString("40.00"), nil, "Farmácia", "2025-06", dueDateFor("2025-06"), ""),
	}
	if err := repo.RegisterCharges(ctx, userID, card.ID, charges, dueDateFor); err != nil {
		t.Fatalf("register: %v", err)
	}

	june, err := repo.FindInvoice(ctx, userID, card.ID, "2025-06")
	if err != nil {
		t.Fatalf("find june: %v", err)
	}
	if !june.TotalAmount.Equal(decimal.RequireFromString("140.00")) {
		t.Fatalf("expected june total 140.00, got %s", june.TotalAmount)
	}
	if june.Status() != entity.InvoiceStatusOpen {
		t.Fatalf("expected open invoice, got %s", june.Status())
	}

	july, err := repo.FindInvoice(ctx, userID, card.ID, "2025-07")
	if err != nil {
		t.Fatalf("find july: %v", err)
	}
	if !july.TotalAmount.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected july total 100.00, got %s", july.TotalAmount)
	}

	// A later batch lands on the existing invoice row.
	more := []*entity.CreditCardCharge{
		entity.NewCreditCardCharge(userID, card.ID, day("2025-06-10"), decimal.RequireFromString("60.00"), nil, "Restaurante", "2025-06", dueDateFor("2025-06"), ""),
	}
	if err := repo.RegisterCharges(ctx, userID, card.ID, more, dueDateFor); err != nil {
		t.Fatalf("register more: %v", err)
	}

	june, err = repo.FindInvoice(ctx, userID, card.ID, "2025-06")
	if err != nil {
		t.Fatalf("refind june: %v", err)
	}
	if !june.TotalAmount.Equal(decimal.RequireFromString("200.00")) {
		t.Fatalf("expected june total 200.00, got %s", june.TotalAmount)
	}
}

func TestInvoiceRepositoryApplyPayment(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)
	card := seedCard(t, db, userID)
	source := seedAccount(t, db, userID, "Conta Pagadora")
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	dueDateFor := func(string) time.Time { return day("2025-06-10") }
	charges := []*entity.CreditCardCharge{
		entity.NewCreditCardCharge(userID, card.ID, day("2025-06-01"), decimal.RequireFromString("150.00"), nil, "Mercado", "2025-06", day("2025-06-10"), ""),
	}
	if err := repo.RegisterCharges(ctx, userID, card.ID, charges, dueDateFor); err != nil {
		t.Fatalf("register: %v", err)
	}

	invoice, err := repo.FindInvoice(ctx, userID, card.ID, "2025-06")
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	cash := []*entity.Transaction{
		entity.NewTransaction(userID, day("2025-06-10"), "PGTO FATURA Visa Infinite 2025-06", decimal.RequireFromString("-150.00"), source.ID, nil, entity.MethodPIX, ""),
		entity.NewTransaction(userID, day("2025-06-10"), "PGTO FATURA Visa Infinite 2025-06", decimal.RequireFromString("150.00"), card.CardAccountID, nil, entity.MethodPIX, ""),
	}
	err = repo.ApplyPayment(ctx, userID, invoice.ID, decimal.RequireFromString("150.00"), true, cash)
	if err != nil {
		t.Fatalf("apply payment: %v", err)
	}

	paid, err := repo.FindInvoiceByID(ctx, userID, invoice.ID)
	if err != nil {
		t.Fatalf("refind: %v", err)
	}
	if paid.Status() != entity.InvoiceStatusPaid {
		t.Fatalf("expected paid invoice, got %s", paid.Status())
	}

	unpaid := false
	remaining, err := repo.ListCharges(ctx, userID, adapter.ChargeFilter{CardID: &card.ID, Paid: &unpaid})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected all charges flipped to paid, %d still open", len(remaining))
	}

	balance, err := NewTransactionRepository(db).SumByAccount(ctx, userID, source.ID)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("-150.00")) {
		t.Fatalf("expected source debit of 150.00, got %s", balance)
	}
}

func TestInvoiceRepositoryDeleteChargesDropsEmptyInvoice(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)
	card := seedCard(t, db, userID)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	dueDateFor := func(string) time.Time { return day("2025-08-10") }
	charges := []*entity.CreditCardCharge{
		entity.NewCreditCardCharge(userID, card.ID, day("2025-08-01"), decimal.RequireFromString("80.00"), nil, "Assinatura", "2025-08", day("2025-08-10"), ""),
		entity.NewCreditCardCharge(userID, card.ID, day("2025-08-02"), decimal.RequireFromString("20.00"), nil, "Lanche", "2025-08", day("2025-08-10"), ""),
	}
	if err := repo.RegisterCharges(ctx, userID, card.ID, charges, dueDateFor); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := repo.DeleteCharges(ctx, userID, []uuid.UUID{charges[0].ID}); err != nil {
		t.Fatalf("delete first: %v", err)
	}

	invoice, err := repo.FindInvoice(ctx, userID, card.ID, "2025-08")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !invoice.TotalAmount.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("expected decremented total 20.00, got %s", invoice.TotalAmount)
	}

	if err := repo.DeleteCharges(ctx, userID, []uuid.UUID{charges[1].ID}); err != nil {
		t.Fatalf("delete second: %v", err)
	}

	_, err = repo.FindInvoice(ctx, userID, card.ID, "2025-08")
	if !errors.Is(err, domainerror.ErrInvoiceNotFound) {
		t.Fatalf("expected empty invoice removed, got %v", err)
	}
}

func TestIncomeRepositorySumByAsset(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)
	repo := NewIncomeRepository(db)
	ctx := context.Background()

	asset := entity.NewAsset(userID, "HGLG11", "CSHG Logística", entity.AssetClassFII, "Logística", entity.CurrencyBRL, nil, nil, "", nil)
	if err := NewAssetRepository(db).Create(ctx, asset); err != nil {
		t.Fatalf("create asset: %v", err)
	}

	for _, row := range []struct {
		date   string
		amount string
	}{
		{"2025-01-15", "110.00"},
		{"2025-02-15", "112.00"},
		{"2025-03-15", "108.00"},
	} {
		event := entity.NewIncomeEvent(userID, asset.ID, day(row.date), entity.IncomeTypeFIIRent, decimal.RequireFromString(row.amount), "")
		if err := repo.Create(ctx, event); err != nil {
			t.Fatalf("create %s: %v", row.date, err)
		}
	}

	totals, err := repo.SumByAsset(ctx, userID, day("2025-02-28"))
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if !totals[asset.ID].Equal(decimal.RequireFromString("222.00")) {
		t.Fatalf("expected 222.00 up to february, got %s", totals[asset.ID])
	}
}
