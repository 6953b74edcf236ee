package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(txn Transaction, fraud *FraudAnnotation) Entry {
	return Entry{Txn: txn, Fraud: fraud}
}

func TestFilterEmptyInput(t *testing.T) {
	out := Filter(nil, Criteria{FlaggedOnly: true, TransactionType: TypeDebit})
	assert.Empty(t, out)
}

func TestFilterZeroCriteriaKeepsEverything(t *testing.T) {
	entries := []Entry{
		entry(Transaction{Date: "01/01/2025", Debit: 100}, nil),
		entry(Transaction{Date: "bogus", Credit: 50}, nil),
	}
	out := Filter(entries, Criteria{})
	assert.Equal(t, entries, out)
}

func TestFilterFlaggedOnly(t *testing.T) {
	entries := []Entry{
		entry(Transaction{Debit: 100}, &FraudAnnotation{IsFlagged: false}),
		entry(Transaction{Debit: 200}, &FraudAnnotation{IsFlagged: true}),
		// No annotation at all: treated as not flagged.
		entry(Transaction{Debit: 300}, nil),
	}
	out := Filter(entries, Criteria{FlaggedOnly: true})
	require.Len(t, out, 1)
	assert.Equal(t, 200.0, out[0].Txn.Debit)
}

// Scenario from the dashboard: Debit type plus the 10,000-50,000 bucket
// must isolate the EMI transaction.
func TestFilterTypeAndAmountRange(t *testing.T) {
	entries := []Entry{
		entry(Transaction{Credit: 50000, Category: "Income"}, nil),
		entry(Transaction{Debit: 1200, Category: "Shopping"}, nil),
		entry(Transaction{Debit: 15000, Category: "EMI"}, nil),
	}
	out := Filter(entries, Criteria{
		TransactionType: TypeDebit,
		AmountRange:     Range10KTo50K,
	})
	require.Len(t, out, 1)
	assert.Equal(t, "EMI", out[0].Txn.Category)
}

func TestFilterAmountRangeBoundaries(t *testing.T) {
	amounts := []float64{0, 1000, 1001, 10000, 10001, 50000, 50001}
	entries := make([]Entry, len(amounts))
	for i, a := range amounts {
		entries[i] = entry(Transaction{Debit: a}, nil)
	}

	cases := []struct {
		r    AmountRange
		want []float64
	}{
		{RangeUpTo1K, []float64{0, 1000}},
		{Range1KTo10K, []float64{1000, 1001, 10000}},
		{Range10KTo50K, []float64{10000, 10001, 50000}},
		{RangeOver50K, []float64{50000, 50001}},
	}
	for _, tc := range cases {
		t.Run(string(tc.r), func(t *testing.T) {
			out := Filter(entries, Criteria{AmountRange: tc.r})
			got := make([]float64, len(out))
			for i, e := range out {
				got[i] = e.Txn.Debit
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

// Medium keeps [0.30, 0.60): the lower bound is inclusive and the upper
// exclusive.
func TestFilterFraudBucketBoundaries(t *testing.T) {
	probs := []float64{0.29, 0.30, 0.59, 0.60}
	entries := make([]Entry, len(probs))
	for i, p := range probs {
		entries[i] = entry(Transaction{Debit: 10}, &FraudAnnotation{FraudProbability: p})
	}

	out := Filter(entries, Criteria{FraudConfidence: FraudMedium})
	got := make([]float64, len(out))
	for i, e := range out {
		got[i] = e.Fraud.FraudProbability
	}
	assert.Equal(t, []float64{0.30, 0.59}, got)
}

func TestFilterFraudMissingAnnotationIsSafe(t *testing.T) {
	entries := []Entry{entry(Transaction{Debit: 10}, nil)}
	assert.Len(t, Filter(entries, Criteria{FraudConfidence: FraudSafe}), 1)
	assert.Empty(t, Filter(entries, Criteria{FraudConfidence: FraudCritical}))
}

func TestFilterCategoryIntent(t *testing.T) {
	entries := []Entry{
		entry(Transaction{Category: "UPI Transfer", Debit: 10}, nil),
		entry(Transaction{Category: "Bank Transfer", Debit: 20}, nil),
		entry(Transaction{Category: "Reward/Cashback", Credit: 5}, nil),
		entry(Transaction{Debit: 30}, nil), // no category -> Unknown
	}

	out := Filter(entries, Criteria{CategoryIntent: IntentTransfer})
	require.Len(t, out, 2)

	out = Filter(entries, Criteria{CategoryIntent: IntentReward})
	require.Len(t, out, 1)
	assert.Equal(t, 5.0, out[0].Txn.Credit)

	out = Filter(entries, Criteria{CategoryIntent: IntentUnknown})
	require.Len(t, out, 1)
	assert.Equal(t, 30.0, out[0].Txn.Debit)
}

func TestFilterLegacyCategoryAndBounds(t *testing.T) {
	entries := []Entry{
		entry(Transaction{Category: "Bills", Debit: 1000}, nil),
		entry(Transaction{Category: "Bills", Debit: 2000}, nil),
		entry(Transaction{Category: "Food", Debit: 1500}, nil),
	}

	out := Filter(entries, Criteria{CategoryFilter: "Bills"})
	assert.Len(t, out, 2)

	out = Filter(entries, Criteria{MinAmount: "1500"})
	assert.Len(t, out, 2)

	out = Filter(entries, Criteria{MaxAmount: "1500"})
	assert.Len(t, out, 2)

	// Inclusive on both sides, and both bounds must pass together.
	out = Filter(entries, Criteria{MinAmount: "1500", MaxAmount: "1500"})
	require.Len(t, out, 1)
	assert.Equal(t, "Food", out[0].Txn.Category)

	// Unparseable bounds leave that side unbounded.
	out = Filter(entries, Criteria{MinAmount: "lots"})
	assert.Len(t, out, 3)
}

func TestFilterDateRange(t *testing.T) {
	entries := []Entry{
		entry(Transaction{Date: "01/01/2025", Debit: 1}, nil),
		entry(Transaction{Date: "15/06/2025", Debit: 2}, nil),
		entry(Transaction{Date: "01/01/2026", Debit: 3}, nil),
		entry(Transaction{Date: "not-a-date", Debit: 4}, nil),
	}
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	out := Filter(entries, Criteria{DateFrom: from, DateTo: to})
	require.Len(t, out, 2)
	// Bounds are inclusive; the unparseable date fails closed.
	assert.Equal(t, 1.0, out[0].Txn.Debit)
	assert.Equal(t, 2.0, out[1].Txn.Debit)

	// Without active date bounds the unparseable date passes through.
	out = Filter(entries, Criteria{})
	assert.Len(t, out, 4)
}

func TestFilterUnrecognizedEnumMeansAll(t *testing.T) {
	entries := []Entry{
		entry(Transaction{Debit: 10, Category: "Food"}, nil),
		entry(Transaction{Credit: 20, Category: "Income"}, nil),
	}
	out := Filter(entries, Criteria{
		TransactionType: TransactionType("Mystery"),
		AmountRange:     AmountRange("garbage"),
		FraudConfidence: FraudConfidence("??"),
	})
	assert.Len(t, out, 2)
}

func TestFilterIdempotent(t *testing.T) {
	entries := []Entry{
		entry(Transaction{Date: "01/02/2025", Debit: 900, Category: "Bills"}, &FraudAnnotation{FraudProbability: 0.4}),
		entry(Transaction{Date: "02/02/2025", Credit: 42000, Category: "Income"}, nil),
		entry(Transaction{Date: "03/02/2025", Debit: 77000, Category: "EMI"}, &FraudAnnotation{FraudProbability: 0.9, IsFlagged: true}),
	}
	criteria := Criteria{
		TransactionType: TypeDebit,
		FraudConfidence: FraudMedium,
	}

	once := Filter(entries, criteria)
	twice := Filter(once, criteria)
	assert.Equal(t, once, twice)
}

// Adding a restriction can only shrink the result.
func TestFilterMonotonicNarrowing(t *testing.T) {
	entries := []Entry{
		entry(Transaction{Date: "01/02/2025", Debit: 900, Category: "Bills"}, nil),
		entry(Transaction{Date: "02/02/2025", Credit: 42000, Category: "Income"}, nil),
		entry(Transaction{Date: "03/02/2025", Debit: 15000, Category: "EMI"}, nil),
	}

	base := Criteria{TransactionType: TypeDebit}
	narrowed := base
	narrowed.AmountRange = Range10KTo50K

	broad := Filter(entries, base)
	narrow := Filter(entries, narrowed)
	assert.LessOrEqual(t, len(broad), len(entries))
	assert.LessOrEqual(t, len(narrow), len(broad))
}

func TestCriteriaIsZero(t *testing.T) {
	assert.True(t, Criteria{}.IsZero())
	assert.True(t, Criteria{TransactionType: TypeAll, AmountRange: RangeAll}.IsZero())
	assert.False(t, Criteria{FlaggedOnly: true}.IsZero())
	assert.False(t, Criteria{MinAmount: "10"}.IsZero())
}
