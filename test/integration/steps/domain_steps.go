package steps

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/domain/entity"
	"github.com/spaarbot/backend/internal/integration/adapters"
	"github.com/spaarbot/backend/internal/integration/persistence"
	"github.com/spaarbot/backend/internal/integration/reminder"
)

// registerDomainSteps registers seeding and worker steps.
func registerDomainSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^an authenticated user$`, anAuthenticatedUser)
	ctx.Step(`^I authenticate with valid Telegram init data$`, iAuthenticateWithValidInitData)
	ctx.Step(`^the user has a category named "([^"]*)"$`, theUserHasACategoryNamed)
	ctx.Step(`^the user has transactions:$`, theUserHasTransactions)
	ctx.Step(`^the user has a subscription "([^"]*)" of "([^"]*)" per "([^"]*)" renewing in (\d+) days$`, theUserHasASubscription)
	ctx.Step(`^the user has monthly "([^"]*)" expenses of "([^"]*)" for the last (\d+) months$`, theUserHasMonthlyExpenses)
	ctx.Step(`^the renewal reminder sweep runs$`, theRenewalReminderSweepRuns)
	ctx.Step(`^the bot should have received (\d+) reminder messages?$`, theBotShouldHaveReceivedMessages)
	ctx.Step(`^the last reminder message should contain "([^"]*)"$`, theLastReminderMessageShouldContain)
}

// signInitData produces valid Telegram Mini App init data for the given bot
// token: the data-check-string is every key=value pair sorted and joined
// with newlines, signed with HMAC-SHA256(key=HMAC-SHA256("WebAppData", token)).
func signInitData(botToken string, values url.Values) string {
	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secret := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strings.Join(pairs, "\n")))
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))

	return values.Encode()
}

func validInitData() string {
	values := url.Values{}
	values.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
	values.Set("query_id", "AAHdF6IQAAAAAN0XohDhrOrc")
	values.Set("user", fmt.Sprintf(
		`{"id":%d,"first_name":"Sanne","username":"sanne_test","language_code":"nl"}`,
		testTelegramID,
	))
	return signInitData(testBotToken, values)
}

func authenticate(tc *TestContext) error {
	body := fmt.Sprintf(`{"init_data":%q}`, validInitData())
	if err := tc.doRequest("POST", "/api/v1/auth/telegram", strings.NewReader(body)); err != nil {
		return err
	}
	if tc.response.StatusCode >= 300 {
		return fmt.Errorf("authentication failed with status %d: %s",
			tc.response.StatusCode, string(tc.responseBody))
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(tc.responseBody, &resp); err != nil {
		return fmt.Errorf("failed to parse auth response: %w", err)
	}

	userID, err := uuid.Parse(resp.User.ID)
	if err != nil {
		return fmt.Errorf("auth response carries invalid user id %q", resp.User.ID)
	}

	tc.token = resp.Token
	tc.userID = userID
	return nil
}

func anAuthenticatedUser(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if err := authenticate(tc); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iAuthenticateWithValidInitData(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	body := fmt.Sprintf(`{"init_data":%q}`, validInitData())
	if err := tc.doRequest("POST", "/api/v1/auth/telegram", strings.NewReader(body)); err != nil {
		return ctx, err
	}
	// Keep the session when authentication succeeded so follow-up requests
	// can use it; failures leave the previous state untouched.
	if tc.response.StatusCode < 300 {
		var resp struct {
			Token string `json:"token"`
			User  struct {
				ID string `json:"id"`
			} `json:"user"`
		}
		if err := json.Unmarshal(tc.responseBody, &resp); err == nil {
			if userID, err := uuid.Parse(resp.User.ID); err == nil {
				tc.token = resp.Token
				tc.userID = userID
			}
		}
	}
	return SetTestContext(ctx, tc), nil
}

func theUserHasACategoryNamed(ctx context.Context, name string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	category := entity.NewCategory(tc.userID, name, "#6366F1", "tag")
	repo := persistence.NewCategoryRepository(tc.db)
	if err := repo.Create(ctx, category); err != nil {
		return ctx, fmt.Errorf("failed to seed category %q: %w", name, err)
	}

	tc.categories[name] = category.ID
	return SetTestContext(ctx, tc), nil
}

// theUserHasTransactions seeds transactions from a table with columns
// date, description, amount, kind and an optional category.
func theUserHasTransactions(ctx context.Context, table *godog.Table) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	if len(table.Rows) < 2 {
		return ctx, fmt.Errorf("transactions table needs a header and at least one row")
	}

	columns := make(map[string]int, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		columns[strings.ToLower(strings.TrimSpace(cell.Value))] = i
	}

	cell := func(rowIndex int, name string) string {
		index, ok := columns[name]
		if !ok || index >= len(table.Rows[rowIndex].Cells) {
			return ""
		}
		return strings.TrimSpace(table.Rows[rowIndex].Cells[index].Value)
	}

	repo := persistence.NewTransactionRepository(tc.db)
	for row := 1; row < len(table.Rows); row++ {
		date, err := time.Parse("2006-01-02", cell(row, "date"))
		if err != nil {
			return ctx, fmt.Errorf("invalid date %q: %w", cell(row, "date"), err)
		}

		amount, err := decimal.NewFromString(cell(row, "amount"))
		if err != nil {
			return ctx, fmt.Errorf("invalid amount %q: %w", cell(row, "amount"), err)
		}

		var categoryID *uuid.UUID
		if name := cell(row, "category"); name != "" {
			id, ok := tc.categories[name]
			if !ok {
				return ctx, fmt.Errorf("category %q was not seeded", name)
			}
			categoryID = &id
		}

		transaction := entity.NewTransaction(
			tc.userID,
			date,
			cell(row, "description"),
			amount,
			entity.TransactionKind(cell(row, "kind")),
			categoryID,
			entity.TransactionSourceManual,
		)
		if err := repo.Create(ctx, transaction); err != nil {
			return ctx, fmt.Errorf("failed to seed transaction %q: %w", transaction.Description, err)
		}

		tc.transactions[transaction.Description] = transaction.ID
	}

	return SetTestContext(ctx, tc), nil
}

func theUserHasASubscription(ctx context.Context, name, amount, period string, days int) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return ctx, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	subscription := entity.NewSubscription(
		tc.userID,
		name,
		value,
		entity.BillingPeriod(period),
		time.Now().UTC().AddDate(0, 0, days),
		nil,
	)
	repo := persistence.NewSubscriptionRepository(tc.db)
	if err := repo.Create(ctx, subscription); err != nil {
		return ctx, fmt.Errorf("failed to seed subscription %q: %w", name, err)
	}

	tc.subscriptions[name] = subscription.ID
	return SetTestContext(ctx, tc), nil
}

// theUserHasMonthlyExpenses seeds one expense per calendar month, newest
// this month, so the charges form a monthly cadence.
func theUserHasMonthlyExpenses(ctx context.Context, description, amount string, months int) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return ctx, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	repo := persistence.NewTransactionRepository(tc.db)
	for i := months - 1; i >= 0; i-- {
		transaction := entity.NewTransaction(
			tc.userID,
			time.Now().UTC().AddDate(0, -i, 0),
			description,
			value,
			entity.TransactionKindExpense,
			nil,
			entity.TransactionSourceImport,
		)
		if err := repo.Create(ctx, transaction); err != nil {
			return ctx, fmt.Errorf("failed to seed charge %q: %w", description, err)
		}
	}

	return SetTestContext(ctx, tc), nil
}

func theRenewalReminderSweepRuns(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	worker := reminder.NewWorker(
		persistence.NewSubscriptionRepository(tc.db),
		persistence.NewUserRepository(tc.db),
		adapters.NewTelegramNotifierWithBaseURL(testBotToken, tc.botAPI.URL()),
		tc.cfg.Reminder.Schedule,
		tc.cfg.Reminder.WindowDays,
	)
	worker.Run(ctx)

	return nil
}

func theBotShouldHaveReceivedMessages(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	sent := tc.botAPI.Sent()
	if len(sent) != count {
		return fmt.Errorf("expected %d reminder messages, got %d: %+v", count, len(sent), sent)
	}
	return nil
}

func theLastReminderMessageShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	sent := tc.botAPI.Sent()
	if len(sent) == 0 {
		return fmt.Errorf("no reminder messages were sent")
	}

	last := sent[len(sent)-1]
	if !strings.Contains(last.Text, expected) {
		return fmt.Errorf("reminder %q does not contain %q", last.Text, expected)
	}
	if last.ChatID != testTelegramID {
		return fmt.Errorf("reminder went to chat %d, expected %d", last.ChatID, testTelegramID)
	}
	return nil
}
