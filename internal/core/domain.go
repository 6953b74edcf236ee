// Package core implements the transaction analytics engine: pure,
// deterministic transforms from a flat list of bank-statement transactions
// (plus optional fraud and party annotations) to every derived view the
// dashboard shows. Nothing in this package performs I/O or mutates its
// input; every function returns freshly derived data and is safe to re-run
// on each filter change.
package core

import (
	"errors"
	"time"
)

// Transaction is one statement row as produced by the upstream analysis
// service, normalized at the ingest boundary. At most one of Credit/Debit
// is positive; the pair is treated as a single signed flow.
type Transaction struct {
	Date          string  `json:"date"`
	Description   string  `json:"description"`
	Credit        float64 `json:"credit"`
	Debit         float64 `json:"debit"`
	Category      string  `json:"category,omitempty"`
	IsUPI         bool    `json:"is_upi,omitempty"`
	IsTransfer    bool    `json:"is_transfer,omitempty"`
	DetectedParty string  `json:"detected_party,omitempty"`
}

// FraudAnnotation is the fraud-scoring output for one transaction, paired
// by list position with the transaction list.
type FraudAnnotation struct {
	FraudProbability float64 `json:"fraud_probability"`
	IsFlagged        bool    `json:"is_flagged"`
}

// Entry pairs a transaction with its optional fraud annotation. The filter
// engine and aggregators operate on entries so fraud criteria can be
// evaluated alongside transaction criteria.
type Entry struct {
	Txn   Transaction      `json:"txn"`
	Fraud *FraudAnnotation `json:"fraud,omitempty"`
}

// PartyLedgerEntry is the per-party aggregate produced by the upstream
// party-detection step. The engine only consumes it.
type PartyLedgerEntry struct {
	PartyName        string  `json:"party_name"`
	TotalCredit      float64 `json:"total_credit"`
	TotalDebit       float64 `json:"total_debit"`
	TransactionCount int     `json:"transaction_count"`
	EntityType       string  `json:"entity_type"`
}

// EntityTypeMerchant marks a counterparty identified as a business.
const EntityTypeMerchant = "Merchant"

var ErrNoTransactions = errors.New("no transactions in analysis result")

// FlowAmount returns the single non-zero value between credit and debit.
// With a well-formed transaction exactly one side is positive, so the max
// of the two is the active flow.
func (t Transaction) FlowAmount() float64 {
	if t.Credit > t.Debit {
		return t.Credit
	}
	return t.Debit
}

// CategoryOrUnknown returns the service-assigned category, defaulting to
// "Unknown" when the field is absent.
func (t Transaction) CategoryOrUnknown() string {
	if t.Category == "" {
		return "Unknown"
	}
	return t.Category
}

// Merge zips transactions with their positionally aligned fraud
// annotations. A missing or shorter annotation list leaves the tail
// entries unannotated.
func Merge(txns []Transaction, frauds []FraudAnnotation) []Entry {
	entries := make([]Entry, len(txns))
	for i, txn := range txns {
		entries[i] = Entry{Txn: txn}
		if i < len(frauds) {
			f := frauds[i]
			entries[i].Fraud = &f
		}
	}
	return entries
}

// statementDateLayouts are the day-precision formats seen in statement
// exports, tried in order. DD/MM/YYYY comes first: it is what the
// extraction service emits for Indian bank statements.
var statementDateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"2/1/2006",
}

// ParseStatementDate parses a statement date string in any of the supported
// day-precision formats. Callers decide how a parse failure degrades:
// date-bounded filters fail closed, monthly aggregation falls back to its
// own label reconstruction.
func ParseStatementDate(s string) (time.Time, error) {
	for _, layout := range statementDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format: " + s)
}
