package core

import (
	"strconv"
	"strings"
	"time"
)

// TransactionType narrows entries by flow direction or by the
// service-assigned category. String values mirror the dashboard controls.
type TransactionType string

const (
	TypeAll          TransactionType = "All"
	TypeCredit       TransactionType = "Credit Only"
	TypeDebit        TransactionType = "Debit Only"
	TypeTransfers    TransactionType = "Transfers Only"
	TypeUPI          TransactionType = "UPI Only"
	TypeBankTransfer TransactionType = "Bank Transfer Only"
	TypeCashFlow     TransactionType = "Cash Flow"
	TypeEMI          TransactionType = "EMI"
	TypeLoan         TransactionType = "Loan"
	TypeInvestment   TransactionType = "Investment"
	TypeRefund       TransactionType = "Refund"
	TypeReward       TransactionType = "Reward"
	TypeBills        TransactionType = "Bills"
	TypeSubscription TransactionType = "Subscription"
	TypeUnknown      TransactionType = "Unknown"
)

// AmountRange buckets entries by flow amount. Finite buckets are inclusive
// on both ends; the top bucket is open-ended.
type AmountRange string

const (
	RangeAll      AmountRange = "All"
	RangeUpTo1K   AmountRange = "0-1,000"
	Range1KTo10K  AmountRange = "1,000-10,000"
	Range10KTo50K AmountRange = "10,000-50,000"
	RangeOver50K  AmountRange = "50,000+"
)

// FraudConfidence buckets entries by fraud probability. Lower bounds are
// inclusive, upper bounds exclusive, except Critical which is closed below.
type FraudConfidence string

const (
	FraudAll      FraudConfidence = "All"
	FraudSafe     FraudConfidence = "Safe (<0.30)"
	FraudMedium   FraudConfidence = "Medium (0.30-0.60)"
	FraudHigh     FraudConfidence = "High (0.60-0.80)"
	FraudCritical FraudConfidence = "Critical (>0.80)"
)

// CategoryIntent is a coarse grouping of the fine-grained service
// categories (e.g. Transfer covers both UPI and bank transfers).
type CategoryIntent string

const (
	IntentAll          CategoryIntent = "All"
	IntentIncome       CategoryIntent = "Income"
	IntentExpense      CategoryIntent = "Expense"
	IntentTransfer     CategoryIntent = "Transfer"
	IntentEMI          CategoryIntent = "EMI"
	IntentLoan         CategoryIntent = "Loan"
	IntentInvestment   CategoryIntent = "Investment"
	IntentRefund       CategoryIntent = "Refund"
	IntentReward       CategoryIntent = "Reward"
	IntentBills        CategoryIntent = "Bills"
	IntentSubscription CategoryIntent = "Subscription"
	IntentUnknown      CategoryIntent = "Unknown"
)

// typeCategories maps each category-backed transaction type to the exact
// category labels it accepts. Direction-backed types (credit/debit) are
// handled separately.
var typeCategories = map[TransactionType][]string{
	TypeTransfers:    {"UPI Transfer", "Bank Transfer"},
	TypeUPI:          {"UPI Transfer"},
	TypeBankTransfer: {"Bank Transfer"},
	TypeCashFlow:     {"Cash Flow"},
	TypeEMI:          {"EMI"},
	TypeLoan:         {"Loan"},
	TypeInvestment:   {"Investment"},
	TypeRefund:       {"Refund"},
	TypeReward:       {"Reward", "Reward/Cashback"},
	TypeBills:        {"Bill Payment"},
	TypeSubscription: {"Subscription"},
	TypeUnknown:      {"Unknown"},
}

// intentCategories maps each intent to the category labels it covers.
var intentCategories = map[CategoryIntent][]string{
	IntentIncome:       {"Income"},
	IntentExpense:      {"Expense"},
	IntentTransfer:     {"UPI Transfer", "Bank Transfer"},
	IntentEMI:          {"EMI"},
	IntentLoan:         {"Loan"},
	IntentInvestment:   {"Investment"},
	IntentRefund:       {"Refund"},
	IntentReward:       {"Reward/Cashback"},
	IntentBills:        {"Bill Payment"},
	IntentSubscription: {"Subscription"},
	IntentUnknown:      {"Unknown"},
}

// Criteria is a configuration-with-defaults: the zero value (or "All" /
// empty string in any field) places no restriction on that dimension.
// Active dimensions combine with logical AND.
type Criteria struct {
	FlaggedOnly     bool
	TransactionType TransactionType
	AmountRange     AmountRange
	FraudConfidence FraudConfidence
	CategoryIntent  CategoryIntent
	// CategoryFilter is the legacy single-select exact match, applied
	// independently of CategoryIntent.
	CategoryFilter string
	// MinAmount/MaxAmount are inclusive bounds on the flow amount; the
	// empty string leaves that side unbounded.
	MinAmount string
	MaxAmount string
	// DateFrom/DateTo are inclusive bounds on the transaction date. The
	// zero time leaves that side unbounded. A transaction whose date fails
	// to parse is excluded whenever a bound is active.
	DateFrom time.Time
	DateTo   time.Time
}

// IsZero reports whether the criteria places no restriction at all.
func (c Criteria) IsZero() bool {
	return !c.FlaggedOnly &&
		noRestriction(string(c.TransactionType)) &&
		noRestriction(string(c.AmountRange)) &&
		noRestriction(string(c.FraudConfidence)) &&
		noRestriction(string(c.CategoryIntent)) &&
		noRestriction(c.CategoryFilter) &&
		strings.TrimSpace(c.MinAmount) == "" &&
		strings.TrimSpace(c.MaxAmount) == "" &&
		c.DateFrom.IsZero() && c.DateTo.IsZero()
}

func noRestriction(v string) bool {
	return v == "" || v == "All"
}

// Filter returns the stable subsequence of entries satisfying every active
// criterion. It never mutates or reorders its input; for a fixed input and
// criteria the output is identical between calls.
func Filter(entries []Entry, c Criteria) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if matches(e, c) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e Entry, c Criteria) bool {
	if c.FlaggedOnly && (e.Fraud == nil || !e.Fraud.IsFlagged) {
		return false
	}
	if !matchesType(e.Txn, c.TransactionType) {
		return false
	}
	if !matchesAmountRange(e.Txn.FlowAmount(), c.AmountRange) {
		return false
	}
	if !matchesFraudBucket(e.Fraud, c.FraudConfidence) {
		return false
	}
	if !noRestriction(string(c.CategoryIntent)) {
		if !containsCategory(intentCategories[c.CategoryIntent], e.Txn.CategoryOrUnknown()) {
			return false
		}
	}
	if !noRestriction(c.CategoryFilter) && e.Txn.CategoryOrUnknown() != c.CategoryFilter {
		return false
	}
	if !matchesAmountBounds(e.Txn.FlowAmount(), c.MinAmount, c.MaxAmount) {
		return false
	}
	if !matchesDateRange(e.Txn.Date, c.DateFrom, c.DateTo) {
		return false
	}
	return true
}

func matchesType(t Transaction, tt TransactionType) bool {
	switch {
	case noRestriction(string(tt)):
		return true
	case tt == TypeCredit:
		return t.Credit > 0
	case tt == TypeDebit:
		return t.Debit > 0
	}
	cats, ok := typeCategories[tt]
	if !ok {
		// Unrecognized value: no restriction rather than an error.
		return true
	}
	return containsCategory(cats, t.Category)
}

func matchesAmountRange(amount float64, r AmountRange) bool {
	switch r {
	case RangeUpTo1K:
		return amount >= 0 && amount <= 1_000
	case Range1KTo10K:
		return amount >= 1_000 && amount <= 10_000
	case Range10KTo50K:
		return amount >= 10_000 && amount <= 50_000
	case RangeOver50K:
		return amount >= 50_000
	default:
		return true
	}
}

func matchesFraudBucket(f *FraudAnnotation, fc FraudConfidence) bool {
	// Entries without an annotation are scored 0 and land in Safe.
	var p float64
	if f != nil {
		p = f.FraudProbability
	}
	switch fc {
	case FraudSafe:
		return p < 0.30
	case FraudMedium:
		return p >= 0.30 && p < 0.60
	case FraudHigh:
		return p >= 0.60 && p < 0.80
	case FraudCritical:
		return p >= 0.80
	default:
		return true
	}
}

func matchesAmountBounds(amount float64, minStr, maxStr string) bool {
	if v, ok := parseAmount(minStr); ok && amount < v {
		return false
	}
	if v, ok := parseAmount(maxStr); ok && amount > v {
		return false
	}
	return true
}

// parseAmount parses a bound, reporting false for empty or unparseable
// values so they leave that side unbounded.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func matchesDateRange(date string, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	d, err := ParseStatementDate(date)
	if err != nil {
		// Fails closed: an unparseable date must not leak into a
		// date-bounded result set.
		return false
	}
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}

func containsCategory(cats []string, c string) bool {
	for _, v := range cats {
		if v == c {
			return true
		}
	}
	return false
}
