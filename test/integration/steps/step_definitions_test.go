package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/controle-financeiro/backend/internal/application/usecase/account"
	"github.com/controle-financeiro/backend/internal/application/usecase/asset"
	"github.com/controle-financeiro/backend/internal/application/usecase/auth"
	"github.com/controle-financeiro/backend/internal/application/usecase/card"
	"github.com/controle-financeiro/backend/internal/application/usecase/category"
	"github.com/controle-financeiro/backend/internal/application/usecase/income"
	"github.com/controle-financeiro/backend/internal/application/usecase/invoice"
	"github.com/controle-financeiro/backend/internal/application/usecase/ledger"
	"github.com/controle-financeiro/backend/internal/application/usecase/portfolio"
	"github.com/controle-financeiro/backend/internal/application/usecase/price"
	"github.com/controle-financeiro/backend/internal/application/usecase/quote"
	"github.com/controle-financeiro/backend/internal/application/usecase/trade"
	"github.com/controle-financeiro/backend/internal/application/usecase/transaction"
	"github.com/controle-financeiro/backend/internal/infra/server/router"
	"github.com/controle-financeiro/backend/internal/integration/adapters"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/controller"
	"github.com/controle-financeiro/backend/internal/integration/entrypoint/middleware"
	"github.com/controle-financeiro/backend/internal/integration/persistence"
	"github.com/controle-financeiro/backend/internal/integration/persistence/model"
	"github.com/controle-financeiro/backend/internal/integration/quotes"
	"github.com/controle-financeiro/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
const defaultTestPassword = "DefaultPass123!"

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri           string
	headers       map[string]string
	client        *http.Client
	response      *response
	db            *mock.Db
	timeMock      *mock.Time
	serverPort    int
	accessToken   string
	currentUserID uuid.UUID
	accountIDs    map[string]uuid.UUID
	categoryIDs   map[string]uuid.UUID
	cardIDs       map[string]uuid.UUID
	assetIDs      map[string]uuid.UUID
	invoiceID     uuid.UUID
	chargeID      uuid.UUID
	transactionID uuid.UUID
	lastID        uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once
var quotesAPI *mock.ApiMock
var quotesAPIInit sync.Once
var quoteRedis = mock.NewRedis()

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func quotesAPIMock() *mock.ApiMock {
	quotesAPIInit.Do(func() {
		quotesAPI = mock.NewApiServer()
		quotesAPI.Start()
	})
	return quotesAPI
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		timeMock:   mock.NewTime(),
		serverPort: testServerPort,
		db: mock.NewDb("controle_financeiro", map[string]any{
			"users":                &model.UserModel{},
			"accounts":             &model.AccountModel{},
			"categories":           &model.CategoryModel{},
			"transactions":         &model.TransactionModel{},
			"credit_cards":         &model.CreditCardModel{},
			"credit_card_invoices": &model.CreditCardInvoiceModel{},
			"credit_card_charges":  &model.CreditCardChargeModel{},
			"assets":               &model.AssetModel{},
			"trades":               &model.TradeModel{},
			"income_events":        &model.IncomeEventModel{},
			"prices":               &model.PriceModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		return nil, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)

	// Data setup steps
	ctx.Given(`^an account "([^"]*)" of type "([^"]*)" exists$`, test.anAccountOfTypeExists)
	ctx.Given(`^a category "([^"]*)" of kind "([^"]*)" exists$`, test.aCategoryOfKindExists)
	ctx.Given(`^a credit card "([^"]*)" exists with card account "([^"]*)", source account "([^"]*)", due day (\d+) and close day (\d+)$`, test.aCreditCardExists)
	ctx.Given(`^an asset "([^"]*)" of class "([^"]*)" exists$`, test.anAssetOfClassExists)
	ctx.Given(`^the quote upstream returns price (\d+\.?\d*) for "([^"]*)"$`, test.theQuoteUpstreamReturnsPriceFor)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Capture steps
	ctx.When(`^I capture the invoice for period "([^"]*)"$`, test.iCaptureTheInvoiceForPeriod)
	ctx.When(`^I capture the transaction described as "([^"]*)"$`, test.iCaptureTheTransactionDescribedAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response should have (\d+) items$`, test.theResponseShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.accountIDs = make(map[string]uuid.UUID)
	t.categoryIDs = make(map[string]uuid.UUID)
	t.cardIDs = make(map[string]uuid.UUID)
	t.assetIDs = make(map[string]uuid.UUID)
	t.invoiceID = uuid.Nil
	t.chargeID = uuid.Nil
	t.transactionID = uuid.Nil
	t.lastID = uuid.Nil
	t.response = nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(quoteRedis)
	quotesAPIMock().ClearResponses("GET", "/quote")
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			// Create repositories
			userRepo := persistence.NewUserRepository(testDB.DbConn)
			accountRepo := persistence.NewAccountRepository(testDB.DbConn)
			categoryRepo := persistence.NewCategoryRepository(testDB.DbConn)
			transactionRepo := persistence.NewTransactionRepository(testDB.DbConn)
			cardRepo := persistence.NewCardRepository(testDB.DbConn)
			invoiceRepo := persistence.NewInvoiceRepository(testDB.DbConn)
			assetRepo := persistence.NewAssetRepository(testDB.DbConn)
			tradeRepo := persistence.NewTradeRepository(testDB.DbConn)
			incomeRepo := persistence.NewIncomeRepository(testDB.DbConn)
			priceRepo := persistence.NewPriceRepository(testDB.DbConn)

			// Create adapters/services
			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, time.Hour)

			// Quote providers point at the local API mock, fronted by miniredis
			upstream := quotesAPIMock()
			quoteCache := quotes.NewRedisQuoteCache(quoteRedis, time.Minute)
			brapiClient := quotes.NewBrapiClient(nil, upstream.GetUrl(), "test-token")
			yahooClient := quotes.NewYahooClient(nil, upstream.GetUrl())
			quoteProvider := quotes.NewResolver(brapiClient, yahooClient, quoteCache)

			// Create auth use cases
			loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
			getMeUseCase := auth.NewGetMeUseCase(userRepo)

			// Create account use cases
			listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
			createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
			updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo)
			deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo)

			// Create category use cases
			listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
			createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
			updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
			deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

			// Create card and invoice use cases
			listCardsUseCase := card.NewListCardsUseCase(cardRepo)
			createCardUseCase := card.NewCreateCardUseCase(cardRepo, accountRepo)
			updateCardUseCase := card.NewUpdateCardUseCase(cardRepo, accountRepo)
			deleteCardUseCase := card.NewDeleteCardUseCase(cardRepo)
			registerChargeUseCase := invoice.NewRegisterChargeUseCase(cardRepo, invoiceRepo, categoryRepo)
			listChargesUseCase := invoice.NewListChargesUseCase(invoiceRepo)
			deleteChargeUseCase := invoice.NewDeleteChargeUseCase(invoiceRepo)
			listInvoicesUseCase := invoice.NewListInvoicesUseCase(invoiceRepo)
			payInvoiceUseCase := invoice.NewPayInvoiceUseCase(cardRepo, invoiceRepo, accountRepo, categoryRepo)

			// Create transaction use cases
			listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, invoiceRepo)
			createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, accountRepo, categoryRepo, cardRepo, registerChargeUseCase)
			deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
			settleCommitmentUseCase := transaction.NewSettleCommitmentUseCase(transactionRepo, accountRepo)
			bulkImportUseCase := transaction.NewBulkImportUseCase(transactionRepo, accountRepo, categoryRepo)

			// Create investment use cases
			listAssetsUseCase := asset.NewListAssetsUseCase(assetRepo)
			createAssetUseCase := asset.NewCreateAssetUseCase(assetRepo, accountRepo)
			updateAssetUseCase := asset.NewUpdateAssetUseCase(assetRepo, accountRepo)
			deleteAssetUseCase := asset.NewDeleteAssetUseCase(assetRepo)
			createTradeUseCase := trade.NewCreateTradeUseCase(tradeRepo, assetRepo, categoryRepo, transactionRepo)
			deleteTradeUseCase := trade.NewDeleteTradeUseCase(tradeRepo, assetRepo, categoryRepo, slog.Default())
			listTradesUseCase := trade.NewListTradesUseCase(tradeRepo)
			createIncomeUseCase := income.NewCreateIncomeUseCase(incomeRepo, assetRepo, categoryRepo)
			deleteIncomeUseCase := income.NewDeleteIncomeUseCase(incomeRepo)
			listIncomesUseCase := income.NewListIncomesUseCase(incomeRepo)
			upsertPriceUseCase := price.NewUpsertPriceUseCase(priceRepo, assetRepo)
			listPricesUseCase := price.NewListPricesUseCase(priceRepo)
			refreshQuotesUseCase := quote.NewRefreshQuotesUseCase(assetRepo, priceRepo, quoteProvider, 2, 5*time.Second)

			// Create report use cases
			getDashboardUseCase := ledger.NewGetDashboardUseCase(transactionRepo, invoiceRepo)
			getPortfolioUseCase := portfolio.NewGetPortfolioUseCase(tradeRepo, assetRepo, priceRepo, incomeRepo, accountRepo, transactionRepo)

			// Create controllers
			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.DbConn != nil
			})

			authController := controller.NewAuthController(loginUseCase, getMeUseCase)

			accountController := controller.NewAccountController(
				listAccountsUseCase,
				createAccountUseCase,
				updateAccountUseCase,
				deleteAccountUseCase,
			)

			categoryController := controller.NewCategoryController(
				listCategoriesUseCase,
				createCategoryUseCase,
				updateCategoryUseCase,
				deleteCategoryUseCase,
			)

			transactionController := controller.NewTransactionController(
				listTransactionsUseCase,
				createTransactionUseCase,
				deleteTransactionUseCase,
				settleCommitmentUseCase,
				bulkImportUseCase,
			)

			cardController := controller.NewCardController(
				listCardsUseCase,
				createCardUseCase,
				updateCardUseCase,
				deleteCardUseCase,
				registerChargeUseCase,
				listChargesUseCase,
				deleteChargeUseCase,
				listInvoicesUseCase,
				payInvoiceUseCase,
			)

			assetController := controller.NewAssetController(
				listAssetsUseCase,
				createAssetUseCase,
				updateAssetUseCase,
				deleteAssetUseCase,
			)

			tradeController := controller.NewTradeController(
				createTradeUseCase,
				deleteTradeUseCase,
				listTradesUseCase,
				createIncomeUseCase,
				deleteIncomeUseCase,
				listIncomesUseCase,
			)

			priceController := controller.NewPriceController(
				upsertPriceUseCase,
				listPricesUseCase,
				refreshQuotesUseCase,
			)

			dashboardController := controller.NewDashboardController(
				getDashboardUseCase,
				getPortfolioUseCase,
			)

			// Create middleware
			loginRateLimiter := middleware.NewRateLimiterWithConfig(1000, time.Minute)
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(
				healthController,
				authController,
				accountController,
				categoryController,
				transactionController,
				cardController,
				assetController,
				tradeController,
				priceController,
				dashboardController,
				loginRateLimiter,
				authMiddleware,
			)
			engine := r.Setup("test")

			addr := fmt.Sprintf(":%d", testServerPort)
			server := &http.Server{
				Addr:    addr,
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, defaultTestPassword, "Test User")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "Test User")
}

func (t *testContext) createUser(email, password, name string) error {
	userID := uuid.New()
	t.currentUserID = userID

	user := &model.UserModel{
		ID:           userID,
		Email:        email,
		Name:         name,
		PasswordHash: hashPassword(password),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	result := t.db.DbConn.Create(user)
	return result.Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) iAmLoggedInAs(email string) error {
	t.startServer()

	var existing model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := t.createUser(email, defaultTestPassword, "Test User"); err != nil {
			return err
		}
	} else {
		t.currentUserID = existing.ID
	}

	payload, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": defaultTestPassword,
	})
	resp, err := t.client.Post(t.uri+"/api/v1/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("login for %s failed with status %d: %s", email, resp.StatusCode, string(body))
	}

	var loginResponse struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResponse); err != nil {
		return err
	}

	t.accessToken = loginResponse.AccessToken
	if id, err := uuid.Parse(loginResponse.User.ID); err == nil {
		t.currentUserID = id
	}
	return nil
}

func (t *testContext) anAccountOfTypeExists(name, accountType string) error {
	if t.currentUserID == uuid.Nil {
		return errors.New("no current user, create or log in a user first")
	}

	accountID := uuid.New()
	t.accountIDs[name] = accountID

	now := time.Now().UTC()
	accountModel := &model.AccountModel{
		ID:              accountID,
		UserID:          t.currentUserID,
		Name:            name,
		Type:            accountType,
		Currency:        "BRL",
		ShowOnDashboard: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return t.db.DbConn.Create(accountModel).Error
}

func (t *testContext) aCategoryOfKindExists(name, kind string) error {
	if t.currentUserID == uuid.Nil {
		return errors.New("no current user, create or log in a user first")
	}

	categoryID := uuid.New()
	t.categoryIDs[name] = categoryID

	now := time.Now().UTC()
	categoryModel := &model.CategoryModel{
		ID:        categoryID,
		UserID:    t.currentUserID,
		Name:      name,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return t.db.DbConn.Create(categoryModel).Error
}

func (t *testContext) aCreditCardExists(name, cardAccount, sourceAccount string, dueDay, closeDay int) error {
	if t.currentUserID == uuid.Nil {
		return errors.New("no current user, create or log in a user first")
	}

	cardAccountID, ok := t.accountIDs[cardAccount]
	if !ok {
		return fmt.Errorf("card account %q was not created", cardAccount)
	}
	sourceAccountID, ok := t.accountIDs[sourceAccount]
	if !ok {
		return fmt.Errorf("source account %q was not created", sourceAccount)
	}

	cardID := uuid.New()
	t.cardIDs[name] = cardID

	now := time.Now().UTC()
	cardModel := &model.CreditCardModel{
		ID:              cardID,
		UserID:          t.currentUserID,
		Name:            name,
		Brand:           "Visa",
		CardType:        "Credito",
		CardAccountID:   cardAccountID,
		SourceAccountID: sourceAccountID,
		DueDay:          dueDay,
		CloseDay:        closeDay,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return t.db.DbConn.Create(cardModel).Error
}

func (t *testContext) anAssetOfClassExists(symbol, assetClass string) error {
	if t.currentUserID == uuid.Nil {
		return errors.New("no current user, create or log in a user first")
	}

	assetID := uuid.New()
	t.assetIDs[symbol] = assetID

	now := time.Now().UTC()
	assetModel := &model.AssetModel{
		ID:         assetID,
		UserID:     t.currentUserID,
		Symbol:     symbol,
		Name:       symbol,
		AssetClass: assetClass,
		Currency:   "BRL",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return t.db.DbConn.Create(assetModel).Error
}

func (t *testContext) theQuoteUpstreamReturnsPriceFor(priceValue, symbol string) error {
	quotesAPIMock().SetResponse(-1, "GET", "/quote/"+symbol, http.StatusOK, map[string]any{
		"results": []map[string]any{
			{
				"symbol":             symbol,
				"regularMarketPrice": json.Number(priceValue),
				"regularMarketTime":  time.Now().UTC().Format(time.RFC3339),
			},
		},
	})
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replaceTokenPlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replaceTokenPlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		content := t.replaceTokenPlaceholders(body.Content)
		payload = []byte(content)
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replaceTokenPlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{invoice_id}}", t.invoiceID.String())
	content = strings.ReplaceAll(content, "{{charge_id}}", t.chargeID.String())
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.transactionID.String())
	content = strings.ReplaceAll(content, "{{id}}", t.lastID.String())

	for name, id := range t.accountIDs {
		content = strings.ReplaceAll(content, "{{account_id:"+name+"}}", id.String())
	}
	for name, id := range t.categoryIDs {
		content = strings.ReplaceAll(content, "{{category_id:"+name+"}}", id.String())
	}
	for name, id := range t.cardIDs {
		content = strings.ReplaceAll(content, "{{card_id:"+name+"}}", id.String())
	}
	for symbol, id := range t.assetIDs {
		content = strings.ReplaceAll(content, "{{asset_id:"+symbol+"}}", id.String())
	}

	return content
}

func (t *testContext) iCaptureTheInvoiceForPeriod(period string) error {
	var inv model.CreditCardInvoiceModel
	if err := t.db.DbConn.Where("user_id = ? AND invoice_period = ?", t.currentUserID, period).First(&inv).Error; err != nil {
		return fmt.Errorf("invoice for period %s not found: %w", period, err)
	}
	t.invoiceID = inv.ID
	return nil
}

func (t *testContext) iCaptureTheTransactionDescribedAs(description string) error {
	var tx model.TransactionModel
	if err := t.db.DbConn.Where("user_id = ? AND description = ?", t.currentUserID, description).First(&tx).Error; err != nil {
		return fmt.Errorf("transaction %q not found: %w", description, err)
	}
	t.transactionID = tx.ID
	return nil
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	if body, ok := responseBody.(map[string]any); ok {
		if idStr, ok := body["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				t.lastID = id
			}
		}

		// Registering a charge answers with the expanded installments
		if charges, ok := body["charges"].([]any); ok && len(charges) > 0 {
			if first, ok := charges[0].(map[string]any); ok {
				if idStr, ok := first["id"].(string); ok {
					if id, err := uuid.Parse(idStr); err == nil {
						t.chargeID = id
					}
				}
			}
		}

		if token, ok := body["access_token"].(string); ok && token != "" {
			t.accessToken = token
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	switch t.response.body.(type) {
	case map[string]any, []any:
		return nil
	}
	return fmt.Errorf("response is not JSON: %v", t.response.body)
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	expectedValue = t.replaceTokenPlaceholders(expectedValue)

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldHaveItems(quantity int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	items, ok := t.response.body.([]any)
	if !ok {
		return fmt.Errorf("response is not a JSON array: %v", t.response.body)
	}
	if len(items) != quantity {
		return fmt.Errorf("expected %d items, got %d: %v", quantity, len(items), t.response.body)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	raw := t.replaceTokenPlaceholders(content.Content)
	if err := json.Unmarshal([]byte(raw), &criteria); err != nil {
		return err
	}

	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	field := object

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
