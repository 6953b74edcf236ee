package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CategoryRecord is one slice of the spend-by-category breakdown.
type CategoryRecord struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// MonthBucket is one calendar month of transaction volume. Key is a
// zero-padded YYYY-MM string so lexicographic order is calendar order
// across year boundaries; Label is the short display form.
type MonthBucket struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// unknownMonthKey sorts after every YYYY-MM key, keeping unparseable dates
// visible at the end of the series instead of silently dropped.
const unknownMonthKey = "Unknown"

// Stats is the enhanced-statistics summary over a transaction set. The
// zero value is the defined "no data" state for an empty input.
type Stats struct {
	TotalCount int     `json:"total_count"`
	MinAmount  float64 `json:"min_amount"`
	MaxAmount  float64 `json:"max_amount"`
	AvgAmount  float64 `json:"avg_amount"`
	UPICount   int     `json:"upi_count"`
	// TransferCount counts transfer-flagged transactions that are not UPI,
	// DirectCount those that are neither UPI nor transfers.
	TransferCount int `json:"transfer_count"`
	DirectCount   int `json:"direct_count"`
	CreditCount   int `json:"credit_count"`
	DebitCount    int `json:"debit_count"`
	// CreditShare is CreditCount over TotalCount for the proportion bar,
	// 0 when the set is empty.
	CreditShare float64 `json:"credit_share"`
	StartDate   string  `json:"start_date,omitempty"`
	EndDate     string  `json:"end_date,omitempty"`
}

// CategoryBreakdown groups debit-side amounts by derived category, summing
// amount and count per category. Credits are excluded from spend, and
// categories with no debit activity are omitted. The result is sorted by
// descending total with stable ties, so equal categories keep first-seen
// order.
func CategoryBreakdown(entries []Entry) []CategoryRecord {
	index := make(map[CategoryLabel]int)
	var records []CategoryRecord
	for _, e := range entries {
		if e.Txn.Debit <= 0 {
			continue
		}
		label := Categorize(e.Txn.Description)
		i, ok := index[label]
		if !ok {
			i = len(records)
			index[label] = i
			records = append(records, CategoryRecord{Name: string(label)})
		}
		records[i].Value += e.Txn.Debit
		records[i].Count++
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Value > records[j].Value
	})
	return records
}

// MonthlyTrend buckets flow amounts by calendar month. Dates that fail
// standard parsing fall back to numeric reconstruction from `/` or `-`
// separated parts, and dates that defeat both land in a literal "Unknown"
// bucket so no amount disappears from the series. Buckets are sorted by
// their YYYY-MM key.
func MonthlyTrend(entries []Entry) []MonthBucket {
	index := make(map[string]int)
	var buckets []MonthBucket
	for _, e := range entries {
		if e.Txn.Date == "" {
			continue
		}
		key, label := monthKey(e.Txn.Date)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, MonthBucket{Key: key, Label: label})
		}
		buckets[i].Total += e.Txn.FlowAmount()
		buckets[i].Count++
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})
	return buckets
}

// monthKey derives the sortable bucket key and display label for a date
// string. The sort key stays zero-padded YYYY-MM even for reconstructed
// dates, so cross-year ordering cannot break the way a locale-formatted
// label would.
func monthKey(date string) (key, label string) {
	if t, err := ParseStatementDate(date); err == nil {
		return t.Format("2006-01"), t.Format("Jan/06")
	}
	parts := strings.FieldsFunc(date, func(r rune) bool {
		return r == '/' || r == '-'
	})
	if len(parts) >= 2 {
		// Three parts read as day/month/year, two as month/year.
		monthPart := parts[0]
		if len(parts) >= 3 {
			monthPart = parts[1]
		}
		month, merr := strconv.Atoi(monthPart)
		year, yerr := strconv.Atoi(parts[len(parts)-1])
		if merr == nil && yerr == nil && month >= 1 && month <= 12 {
			if year < 100 {
				year += 2000
			}
			t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			return t.Format("2006-01"), t.Format("Jan/06")
		}
	}
	return unknownMonthKey, unknownMonthKey
}

// ComputeStats derives the enhanced-statistics summary: min/max/mean over
// all positive flow amounts (credits and debits pooled), the UPI/transfer/
// direct split, credit-vs-debit counts, and the earliest/latest parseable
// date. An empty input yields the zero Stats value; nothing divides by
// zero.
func ComputeStats(entries []Entry) Stats {
	s := Stats{TotalCount: len(entries)}
	var amounts []float64
	var minDate, maxDate time.Time
	for _, e := range entries {
		t := e.Txn
		if t.Credit > 0 {
			amounts = append(amounts, t.Credit)
			s.CreditCount++
		}
		if t.Debit > 0 {
			amounts = append(amounts, t.Debit)
			s.DebitCount++
		}
		switch {
		case t.IsUPI:
			s.UPICount++
		case t.IsTransfer:
			s.TransferCount++
		default:
			s.DirectCount++
		}
		if d, err := ParseStatementDate(t.Date); err == nil {
			if minDate.IsZero() || d.Before(minDate) {
				minDate = d
				s.StartDate = t.Date
			}
			if maxDate.IsZero() || d.After(maxDate) {
				maxDate = d
				s.EndDate = t.Date
			}
		}
	}
	if len(amounts) > 0 {
		s.MinAmount = floats.Min(amounts)
		s.MaxAmount = floats.Max(amounts)
		s.AvgAmount = stat.Mean(amounts, nil)
	}
	if s.TotalCount > 0 {
		s.CreditShare = float64(s.CreditCount) / float64(s.TotalCount)
	}
	return s
}

// ConservedDebitTotal sums the debit side of a breakdown, used to check
// that categorization neither loses nor double-counts amounts.
func ConservedDebitTotal(records []CategoryRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.Value
	}
	return total
}

// FormatBucketRange renders a bucket interval for display, e.g. "Jan/25 -
// Mar/25" for a non-empty trend.
func FormatBucketRange(buckets []MonthBucket) string {
	if len(buckets) == 0 {
		return ""
	}
	if len(buckets) == 1 {
		return buckets[0].Label
	}
	return fmt.Sprintf("%s - %s", buckets[0].Label, buckets[len(buckets)-1].Label)
}
