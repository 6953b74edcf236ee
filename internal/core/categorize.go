package core

import "regexp"

// CategoryLabel is a semantic spending category derived from a
// transaction's description text.
type CategoryLabel string

const (
	CategoryUPI          CategoryLabel = "UPI"
	CategoryTransfer     CategoryLabel = "Transfer"
	CategoryShopping     CategoryLabel = "Shopping"
	CategoryBills        CategoryLabel = "Bills"
	CategoryATM          CategoryLabel = "ATM"
	CategorySalary       CategoryLabel = "Salary"
	CategoryFood         CategoryLabel = "Food"
	CategoryTravel       CategoryLabel = "Travel"
	CategoryInsurance    CategoryLabel = "Insurance"
	CategorySubscription CategoryLabel = "Subscription"
	CategoryOther        CategoryLabel = "Other"
)

// CategoryRule pairs a label with the description pattern that selects it.
type CategoryRule struct {
	Label   CategoryLabel
	Pattern *regexp.Regexp
}

// categoryRules is evaluated in order and the first match wins, so earlier
// rules take precedence when a description matches several patterns (a
// description containing both "upi" and "amazon" is UPI, not Shopping).
// The final catch-all guarantees every transaction gets exactly one label.
var categoryRules = []CategoryRule{
	{CategoryUPI, regexp.MustCompile(`(?i)upi|@`)},
	{CategoryTransfer, regexp.MustCompile(`(?i)neft|imps|rtgs|transfer|bank`)},
	{CategoryShopping, regexp.MustCompile(`(?i)amazon|flipkart|swiggy|zomato|myntra|nykaa|shop`)},
	{CategoryBills, regexp.MustCompile(`(?i)electricity|water|gas|phone|mobile|bill|recharge`)},
	{CategoryATM, regexp.MustCompile(`(?i)atm|cash`)},
	{CategorySalary, regexp.MustCompile(`(?i)salary|income|interest|dividend`)},
	{CategoryFood, regexp.MustCompile(`(?i)restaurant|food|cafe|coffee|hotel`)},
	{CategoryTravel, regexp.MustCompile(`(?i)flight|train|bus|taxi|uber|ola|petrol|diesel|fuel`)},
	{CategoryInsurance, regexp.MustCompile(`(?i)insurance|premium|policy`)},
	{CategorySubscription, regexp.MustCompile(`(?i)netflix|spotify|amazon prime|subscription|membership`)},
	{CategoryOther, regexp.MustCompile(`.`)},
}

// Categorize maps a transaction description to its spending category by
// evaluating the ordered rule list and returning the first match. It is a
// pure function of the description text.
func Categorize(description string) CategoryLabel {
	for _, rule := range categoryRules {
		if rule.Pattern.MatchString(description) {
			return rule.Label
		}
	}
	// Unreachable while the catch-all matches any non-empty string, but an
	// empty description skips every rule including `.`.
	return CategoryOther
}

// CategoryRules returns a copy of the ordered rule list so callers (and
// tests) can inspect precedence without being able to mutate it.
func CategoryRules() []CategoryRule {
	rules := make([]CategoryRule, len(categoryRules))
	copy(rules, categoryRules)
	return rules
}
