// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spaarbot/backend/config"
	"github.com/spaarbot/backend/internal/infra/dependency"
	"github.com/spaarbot/backend/test/integration/mock"
)

const (
	testBotToken  = "12345:INTEGRATION-TEST-TOKEN"
	testJWTSecret = "integration-test-secret"

	// Telegram identity used by the default authenticated user.
	testTelegramID = int64(777000111)
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	token  string
	userID uuid.UUID

	// Seeded entities, by name, for endpoint placeholders
	categories    map[string]uuid.UUID
	transactions  map[string]uuid.UUID
	subscriptions map[string]uuid.UUID

	// Infrastructure
	db     *gorm.DB
	botAPI *mock.BotApi
	cfg    *config.Config
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		// Disables the per-IP auth rate limiter during scenarios.
		os.Setenv("ENV", "test")
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc := &TestContext{
			requestHeaders: make(map[string]string),
			categories:     make(map[string]uuid.UUID),
			transactions:   make(map[string]uuid.UUID),
			subscriptions:  make(map[string]uuid.UUID),
		}

		tc.db = mock.NewDb()
		if err := mock.ClearDb(tc.db); err != nil {
			return ctx, err
		}

		redisClient := mock.NewRedis()
		if err := mock.ClearRedis(redisClient); err != nil {
			return ctx, err
		}

		tc.botAPI = mock.NewBotApi()

		tc.cfg = &config.Config{
			Server: config.ServerConfig{Environment: "test"},
			Redis: config.RedisConfig{
				URL:      "redis://" + mock.RedisAddr(),
				CacheTTL: time.Minute,
			},
			JWT: config.JWTConfig{
				Secret:      testJWTSecret,
				TokenExpiry: time.Hour,
			},
			Telegram: config.TelegramConfig{
				BotToken:       testBotToken,
				InitDataMaxAge: 24 * time.Hour,
			},
			Reminder: config.ReminderConfig{
				Schedule:   "0 9 * * *",
				WindowDays: 3,
			},
		}

		injector := dependency.NewInjector(tc.cfg, tc.db)
		tc.engine = injector.Router.Setup("test")
		tc.server = httptest.NewServer(tc.engine)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil {
			if tc.server != nil {
				tc.server.Close()
			}
			if tc.botAPI != nil {
				tc.botAPI.Close()
			}
		}
		return ctx, nil
	})

	registerHTTPSteps(ctx)
	registerResponseSteps(ctx)
	registerDomainSteps(ctx)
}
