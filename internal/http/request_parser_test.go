package http

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acutrace/internal/core"
)

func TestParseCriteria(t *testing.T) {
	q := url.Values{}
	q.Set("flagged_only", "true")
	q.Set("type", "Debit Only")
	q.Set("amount_range", "10,000-50,000")
	q.Set("fraud_confidence", "High (0.60-0.80)")
	q.Set("intent", "Transfer")
	q.Set("category", "Shopping")
	q.Set("min_amount", "1,000")
	q.Set("max_amount", "25,000")
	q.Set("date_from", "2025-01-01")
	q.Set("date_to", "2025-03-31")

	c := parseCriteria(q)
	assert.True(t, c.FlaggedOnly)
	assert.Equal(t, core.TypeDebit, c.TransactionType)
	assert.Equal(t, core.Range10KTo50K, c.AmountRange)
	assert.Equal(t, core.FraudHigh, c.FraudConfidence)
	assert.Equal(t, core.IntentTransfer, c.CategoryIntent)
	assert.Equal(t, "Shopping", c.CategoryFilter)
	assert.Equal(t, "1,000", c.MinAmount)
	assert.Equal(t, "25,000", c.MaxAmount)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), c.DateFrom)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), c.DateTo)
}

func TestParseCriteriaEmptyQuery(t *testing.T) {
	c := parseCriteria(url.Values{})
	assert.True(t, c.IsZero())
}

func TestParseCriteriaIgnoresBadValues(t *testing.T) {
	q := url.Values{}
	q.Set("flagged_only", "maybe")
	q.Set("date_from", "01/01/2025")

	c := parseCriteria(q)
	assert.False(t, c.FlaggedOnly)
	assert.True(t, c.DateFrom.IsZero())
}

func TestCriteriaCacheKey(t *testing.T) {
	a := core.Criteria{TransactionType: core.TypeDebit, AmountRange: core.RangeOver50K}
	b := core.Criteria{TransactionType: core.TypeDebit, AmountRange: core.RangeOver50K}
	c := core.Criteria{TransactionType: core.TypeCredit}

	require.Equal(t, criteriaCacheKey(a), criteriaCacheKey(b))
	assert.NotEqual(t, criteriaCacheKey(a), criteriaCacheKey(c))
	assert.Empty(t, criteriaCacheKey(core.Criteria{}))
}
