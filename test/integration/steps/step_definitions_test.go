// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/budget-planner/backend/config"
	"github.com/budget-planner/backend/internal/infra/dependency"
	"github.com/budget-planner/backend/internal/integration/persistence/model"
	"github.com/budget-planner/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

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

var suiteOnce sync.Once
var testServer *httptest.Server
var testDB *mock.Db

// startApp boots the full application once against an in-memory database and
// an embedded redis. AI refinement and email sending stay disabled so the
// deterministic baseline paths are exercised.
func startApp() {
	suiteOnce.Do(func() {
		_ = os.Setenv("ENV", "test")
		gin.SetMode(gin.TestMode)

		testDB = mock.NewDb("budget_planner", map[string]any{
			"users":                 &model.UserModel{},
			"refresh_tokens":        &model.RefreshTokenModel{},
			"password_reset_tokens": &model.PasswordResetTokenModel{},
			"categories":            &model.CategoryModel{},
			"transactions":          &model.TransactionModel{},
			"budget_plans":          &model.BudgetPlanModel{},
			"category_budgets":      &model.CategoryBudgetModel{},
			"budget_suggestions":    &model.BudgetSuggestionModel{},
			"email_queue":           &model.EmailQueueModel{},
		})

		cfg := config.Load()
		cfg.JWT.Secret = testJWTSecret
		cfg.Server.Environment = "test"

		injector, err := dependency.NewInjector(cfg, testDB.DbConn, mock.NewRedis(), nil, nil)
		if err != nil {
			panic("failed to wire test application: " + err.Error())
		}

		testServer = httptest.NewServer(injector.Router.Setup("test"))
	})
}

type testContext struct {
	client      *http.Client
	headers     map[string]string
	accessToken string

	status       int
	body         any
	rawBody      []byte
	refreshToken string

	currentUserID uuid.UUID
	categoryIDs   map[string]uuid.UUID
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	startApp()

	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := testDB.ClearDB(); err != nil {
			return c, err
		}
		if err := mock.ClearRedis(mock.NewRedis()); err != nil {
			return c, err
		}

		test.headers = map[string]string{}
		test.accessToken = ""
		test.refreshToken = ""
		test.status = 0
		test.body = nil
		test.rawBody = nil
		test.currentUserID = uuid.Nil
		test.categoryIDs = map[string]uuid.UUID{}
		return c, nil
	})

	// Setup steps
	ctx.Step(`^a registered user "([^"]*)" with password "([^"]*)"$`, test.aRegisteredUser)
	ctx.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, test.iAmLoggedIn)
	ctx.Step(`^I have an expense category named "([^"]*)"$`, test.iHaveAnExpenseCategory)
	ctx.Step(`^I have an income category named "([^"]*)"$`, test.iHaveAnIncomeCategory)
	ctx.Step(`^I have spent (\d+(?:\.\d+)?) on "([^"]*)" this month$`, test.iHaveSpentThisMonth)
	ctx.Step(`^I have spent (\d+(?:\.\d+)?) on "([^"]*)" last month$`, test.iHaveSpentLastMonth)

	// Request steps
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequest)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, test.iSetHeader)

	// Assertion steps
	ctx.Step(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should be null$`, test.theResponseFieldShouldBeNull)
	ctx.Step(`^the response list "([^"]*)" should have (\d+) items?$`, test.theResponseListShouldHaveItems)
	ctx.Step(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
}

// Setup step implementations

func (t *testContext) aRegisteredUser(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:                 uuid.New(),
		Email:              email,
		Name:               "Test User",
		PasswordHash:       string(hash),
		Currency:           "INR",
		EmailNotifications: true,
		BudgetAlerts:       true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := testDB.DbConn.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	t.currentUserID = user.ID
	return nil
}

func (t *testContext) iAmLoggedIn(email, password string) error {
	payload, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err := t.doRequest(http.MethodPost, "/api/v1/auth/login", payload); err != nil {
		return err
	}
	if t.status != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %s", t.status, string(t.rawBody))
	}

	body, ok := t.body.(map[string]any)
	if !ok {
		return fmt.Errorf("unexpected login response: %s", string(t.rawBody))
	}
	t.accessToken, _ = body["access_token"].(string)
	t.refreshToken, _ = body["refresh_token"].(string)
	if t.accessToken == "" {
		return fmt.Errorf("login response did not include an access token")
	}
	return nil
}

func (t *testContext) iHaveAnExpenseCategory(name string) error {
	return t.createCategory(name, "expense")
}

func (t *testContext) iHaveAnIncomeCategory(name string) error {
	return t.createCategory(name, "income")
}

func (t *testContext) createCategory(name, categoryType string) error {
	if t.currentUserID == uuid.Nil {
		return fmt.Errorf("no registered user; add the registered user step first")
	}

	now := time.Now().UTC()
	category := &model.CategoryModel{
		ID:        uuid.New(),
		UserID:    t.currentUserID,
		Name:      name,
		Color:     "#6366F1",
		Icon:      "tag",
		Type:      categoryType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := testDB.DbConn.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	t.categoryIDs[name] = category.ID
	return nil
}

func (t *testContext) iHaveSpentThisMonth(amount, categoryName string) error {
	now := time.Now().UTC()
	date := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return t.createExpense(amount, categoryName, date)
}

func (t *testContext) iHaveSpentLastMonth(amount, categoryName string) error {
	now := time.Now().UTC()
	date := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.createExpense(amount, categoryName, date)
}

func (t *testContext) createExpense(amount, categoryName string, date time.Time) error {
	categoryID, ok := t.categoryIDs[categoryName]
	if !ok {
		return fmt.Errorf("unknown category %q; create it first", categoryName)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	now := time.Now().UTC()
	txn := &model.TransactionModel{
		ID:          uuid.New(),
		UserID:      t.currentUserID,
		Date:        date,
		Description: "Spending on " + categoryName,
		Amount:      value,
		Type:        "expense",
		CategoryID:  &categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := testDB.DbConn.Create(txn).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// Request step implementations

func (t *testContext) iSendARequest(method, endpoint string) error {
	return t.doRequest(method, t.expand(endpoint), nil)
}

func (t *testContext) iSendARequestWithBody(method, endpoint string, body *godog.DocString) error {
	return t.doRequest(method, t.expand(endpoint), []byte(t.expand(body.Content)))
}

func (t *testContext) iSetHeader(header, value string) error {
	t.headers[header] = value
	return nil
}

func (t *testContext) doRequest(method, endpoint string, payload []byte) error {
	var reader *bytes.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, testServer.URL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	t.status = resp.StatusCode
	t.rawBody = nil
	t.body = nil

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	t.rawBody = buf.Bytes()
	if len(t.rawBody) > 0 {
		_ = json.Unmarshal(t.rawBody, &t.body)
	}
	return nil
}

// expand substitutes placeholders so scenarios can reference generated IDs
// and the moving calendar. Supported forms: ${month}, ${last_month} and
// ${category:Name}.
func (t *testContext) expand(s string) string {
	now := time.Now().UTC()
	s = strings.ReplaceAll(s, "${month}", now.Format("2006-01"))
	s = strings.ReplaceAll(s, "${last_month}", now.AddDate(0, -1, 0).Format("2006-01"))
	s = strings.ReplaceAll(s, "${refresh_token}", t.refreshToken)

	for name, id := range t.categoryIDs {
		s = strings.ReplaceAll(s, "${category:"+name+"}", id.String())
	}
	return s
}

// Assertion step implementations

func (t *testContext) theResponseStatusShouldBe(expected int) error {
	if t.status != expected {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expected, t.status, string(t.rawBody))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(path, expected string) error {
	value, ok := t.lookup(path)
	if !ok {
		return fmt.Errorf("field %q not found in response: %s", path, string(t.rawBody))
	}

	actual := fmt.Sprintf("%v", value)
	if actual != t.expand(expected) {
		return fmt.Errorf("field %q expected %q, got %q", path, t.expand(expected), actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(path string) error {
	if _, ok := t.lookup(path); !ok {
		return fmt.Errorf("field %q not found in response: %s", path, string(t.rawBody))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeNull(path string) error {
	value, ok := t.lookup(path)
	if !ok {
		return fmt.Errorf("field %q not found in response: %s", path, string(t.rawBody))
	}
	if value != nil {
		return fmt.Errorf("field %q expected null, got %v", path, value)
	}
	return nil
}

func (t *testContext) theResponseListShouldHaveItems(path string, count int) error {
	value, ok := t.lookup(path)
	if !ok {
		return fmt.Errorf("field %q not found in response: %s", path, string(t.rawBody))
	}
	list, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field %q is not a list: %v", path, value)
	}
	if len(list) != count {
		return fmt.Errorf("field %q expected %d items, got %d. Body: %s", path, count, len(list), string(t.rawBody))
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if !strings.Contains(string(t.rawBody), t.expand(expected)) {
		return fmt.Errorf("response does not contain %q. Body: %s", t.expand(expected), string(t.rawBody))
	}
	return nil
}

// lookup navigates a dot-separated path through the parsed response body.
// Numeric segments index into arrays.
func (t *testContext) lookup(path string) (any, bool) {
	current := t.body
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}
	return current, true
}
