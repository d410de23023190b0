package subscription

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/analytics"
	"github.com/spaarbot/backend/internal/domain/entity"
)

const (
	// minOccurrences is how many charges a pattern needs before it is
	// suggested as a subscription.
	minOccurrences = 3

	// Interval bounds for a "roughly monthly" cadence, in days.
	minIntervalDays = 25
	maxIntervalDays = 35
)

// amountTolerance allows small price variations (currency conversion,
// pro-rated months) within a detected pattern.
var amountTolerance = decimal.NewFromFloat(0.15)

// DetectRecurringInput represents the input for recurring charge detection.
type DetectRecurringInput struct {
	UserID uuid.UUID
}

// DetectRecurringOutput represents the output of recurring charge detection.
type DetectRecurringOutput struct {
	Candidates []*entity.RecurringCandidate
}

// DetectRecurringUseCase scans transaction history for charge patterns that
// look like untracked subscriptions.
type DetectRecurringUseCase struct {
	transactionRepo  adapter.TransactionRepository
	subscriptionRepo adapter.SubscriptionRepository
}

// NewDetectRecurringUseCase creates a new DetectRecurringUseCase instance.
func NewDetectRecurringUseCase(
	transactionRepo adapter.TransactionRepository,
	subscriptionRepo adapter.SubscriptionRepository,
) *DetectRecurringUseCase {
	return &DetectRecurringUseCase{
		transactionRepo:  transactionRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute groups expenses by normalized description and keeps groups that
// recur at a roughly monthly cadence with a stable amount. Descriptions the
// user already tracks as subscriptions are skipped.
func (uc *DetectRecurringUseCase) Execute(ctx context.Context, input DetectRecurringInput) (*DetectRecurringOutput, error) {
	transactions, err := uc.transactionRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	subscriptions, err := uc.subscriptionRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	tracked := make(map[string]bool, len(subscriptions))
	for _, s := range subscriptions {
		tracked[normalizeDescription(s.Name)] = true
	}

	groups := make(map[string][]*entity.Transaction)
	for _, t := range transactions {
		if t.Kind != entity.TransactionKindExpense {
			continue
		}
		key := normalizeDescription(t.Description)
		if key == "" || tracked[key] {
			continue
		}
		groups[key] = append(groups[key], t)
	}

	var candidates []*entity.RecurringCandidate
	for _, group := range groups {
		if candidate := analyzeGroup(group); candidate != nil {
			candidates = append(candidates, candidate)
		}
	}

	// Most recent charge first, so fresh patterns surface on top.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].LastDate.After(candidates[j].LastDate)
	})

	return &DetectRecurringOutput{Candidates: candidates}, nil
}

// analyzeGroup decides whether one description's charges form a monthly
// pattern, and builds the candidate if so.
func analyzeGroup(group []*entity.Transaction) *entity.RecurringCandidate {
	if len(group) < minOccurrences {
		return nil
	}

	sort.Slice(group, func(i, j int) bool {
		return group[i].Date.Before(group[j].Date)
	})

	for i := 1; i < len(group); i++ {
		days := int(group[i].Date.Sub(group[i-1].Date).Hours() / 24)
		if days < minIntervalDays || days > maxIntervalDays {
			return nil
		}
	}

	sum := decimal.Zero
	for _, t := range group {
		sum = sum.Add(t.Amount)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(group))))

	// Every charge must stay within the tolerance band around the average.
	band := avg.Mul(amountTolerance)
	for _, t := range group {
		if t.Amount.Sub(avg).Abs().GreaterThan(band) {
			return nil
		}
	}

	first := group[0]
	last := group[len(group)-1]

	return &entity.RecurringCandidate{
		Description: last.Description,
		AvgAmount:   analytics.Round2(avg),
		LastAmount:  last.Amount,
		Occurrences: len(group),
		FirstDate:   first.Date,
		LastDate:    last.Date,
		TypicalDay:  typicalDay(group),
	}
}

// typicalDay returns the most common day of month across the charges.
func typicalDay(group []*entity.Transaction) int {
	counts := make(map[int]int)
	for _, t := range group {
		counts[t.Date.Day()]++
	}
	best, bestCount := 0, 0
	for d, c := range counts {
		if c > bestCount || (c == bestCount && d < best) {
			best, bestCount = d, c
		}
	}
	return best
}

// normalizeDescription collapses a raw statement description into a grouping
// key: lowercased, digits stripped, whitespace collapsed. "Netflix 03-2025"
// and "NETFLIX 04-2025" must land in the same group.
func normalizeDescription(description string) string {
	lower := strings.ToLower(description)
	var b strings.Builder
	for _, r := range lower {
		if r >= '0' && r <= '9' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
