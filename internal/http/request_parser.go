package http

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"acutrace/internal/core"
)

// queryDateLayout is the wire format for date range bounds.
const queryDateLayout = "2006-01-02"

// parseCriteria builds filter criteria from query parameters. Absent
// parameters leave their dimension unrestricted; unparseable dates are
// ignored the same way.
func parseCriteria(q url.Values) core.Criteria {
	c := core.Criteria{
		TransactionType: core.TransactionType(strings.TrimSpace(q.Get("type"))),
		AmountRange:     core.AmountRange(strings.TrimSpace(q.Get("amount_range"))),
		FraudConfidence: core.FraudConfidence(strings.TrimSpace(q.Get("fraud_confidence"))),
		CategoryIntent:  core.CategoryIntent(strings.TrimSpace(q.Get("intent"))),
		CategoryFilter:  strings.TrimSpace(q.Get("category")),
		MinAmount:       strings.TrimSpace(q.Get("min_amount")),
		MaxAmount:       strings.TrimSpace(q.Get("max_amount")),
	}

	if v := strings.TrimSpace(q.Get("flagged_only")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.FlaggedOnly = b
		}
	}
	if v := strings.TrimSpace(q.Get("date_from")); v != "" {
		if t, err := time.Parse(queryDateLayout, v); err == nil {
			c.DateFrom = t
		}
	}
	if v := strings.TrimSpace(q.Get("date_to")); v != "" {
		if t, err := time.Parse(queryDateLayout, v); err == nil {
			c.DateTo = t
		}
	}

	return c
}

// criteriaCacheKey renders criteria as a canonical cache key fragment.
// Two requests with the same effective criteria share one entry.
func criteriaCacheKey(c core.Criteria) string {
	var b strings.Builder
	if c.FlaggedOnly {
		b.WriteString("f1;")
	}
	writePart(&b, "t", string(c.TransactionType))
	writePart(&b, "a", string(c.AmountRange))
	writePart(&b, "p", string(c.FraudConfidence))
	writePart(&b, "i", string(c.CategoryIntent))
	writePart(&b, "c", c.CategoryFilter)
	writePart(&b, "lo", c.MinAmount)
	writePart(&b, "hi", c.MaxAmount)
	if !c.DateFrom.IsZero() {
		writePart(&b, "df", c.DateFrom.Format(queryDateLayout))
	}
	if !c.DateTo.IsZero() {
		writePart(&b, "dt", c.DateTo.Format(queryDateLayout))
	}
	return b.String()
}

func writePart(b *strings.Builder, tag, value string) {
	if value == "" {
		return
	}
	b.WriteString(tag)
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteByte(';')
}
