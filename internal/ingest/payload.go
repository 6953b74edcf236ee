// Package ingest decodes analysis-service payloads and normalizes them
// into the canonical schema at the boundary, so the engine never branches
// on field-name variants internally.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"acutrace/internal/core"
)

// AnalysisResult is one normalized analysis payload. Narrative and risk
// fields the engine does not transform are carried verbatim for display.
type AnalysisResult struct {
	Timestamp    string             `json:"timestamp,omitempty"`
	Metadata     json.RawMessage    `json:"metadata,omitempty"`
	Transactions []core.Transaction `json:"transactions"`
	// Frauds is positionally aligned with Transactions and may be shorter
	// when the scoring step annotated only a prefix.
	Frauds          []core.FraudAnnotation  `json:"fraud_annotations,omitempty"`
	FraudSummary    *FraudSummary           `json:"fraud_summary,omitempty"`
	PartyLedger     []core.PartyLedgerEntry `json:"party_ledger,omitempty"`
	EntityRelations json.RawMessage         `json:"entity_relations,omitempty"`
	Recurring       json.RawMessage         `json:"recurring_transactions,omitempty"`
}

// FraudSummary holds the fraud-analysis fields that are displayed verbatim
// rather than recomputed.
type FraudSummary struct {
	FlaggedCount        int             `json:"flagged_count"`
	FlaggedTransactions json.RawMessage `json:"flagged_transactions,omitempty"`
	PremiumAnalysis     json.RawMessage `json:"premium_analysis,omitempty"`
	RiskScore           json.RawMessage `json:"risk_score,omitempty"`
	Summary             json.RawMessage `json:"summary,omitempty"`
}

// payload mirrors the wire shape of the analysis service.
type payload struct {
	Timestamp     string            `json:"timestamp"`
	Metadata      json.RawMessage   `json:"metadata"`
	Transactions  []rawTransaction  `json:"transactions"`
	FraudAnalysis *rawFraudAnalysis `json:"fraud_analysis"`
	PartyLedger   []rawLedgerEntry  `json:"party_ledger"`
	Relations     json.RawMessage   `json:"entity_relations"`
	Recurring     json.RawMessage   `json:"recurring_transactions"`
}

// rawTransaction accepts the duck-typed field variants different extractor
// versions emit (`date` vs `transaction_date`, `description` vs
// `narration`).
type rawTransaction struct {
	Date            string  `json:"date"`
	TransactionDate string  `json:"transaction_date"`
	Description     string  `json:"description"`
	Narration       string  `json:"narration"`
	Credit          float64 `json:"credit"`
	Debit           float64 `json:"debit"`
	Category        string  `json:"category"`
	IsUPI           bool    `json:"is_upi"`
	IsTransfer      bool    `json:"is_transfer"`
	DetectedParty   string  `json:"detected_party"`
}

func (r rawTransaction) normalize() core.Transaction {
	date := r.Date
	if date == "" {
		date = r.TransactionDate
	}
	desc := r.Description
	if desc == "" {
		desc = r.Narration
	}
	return core.Transaction{
		Date:          date,
		Description:   desc,
		Credit:        r.Credit,
		Debit:         r.Debit,
		Category:      r.Category,
		IsUPI:         r.IsUPI,
		IsTransfer:    r.IsTransfer,
		DetectedParty: r.DetectedParty,
	}
}

type rawFraudAnalysis struct {
	AllTransactions     []core.FraudAnnotation `json:"all_transactions"`
	FlaggedCount        int                    `json:"flagged_count"`
	FlaggedTransactions json.RawMessage        `json:"flagged_transactions"`
	PremiumAnalysis     json.RawMessage        `json:"premium_analysis"`
	RiskScore           json.RawMessage        `json:"risk_score"`
	Summary             json.RawMessage        `json:"summary"`
}

type rawLedgerEntry struct {
	PartyName        string  `json:"party_name"`
	TotalCredit      float64 `json:"total_credit"`
	TotalDebit       float64 `json:"total_debit"`
	TransactionCount int     `json:"transaction_count"`
	EntityType       string  `json:"entity_type"`
}

// ParseResult decodes and normalizes an analysis payload. Missing optional
// sections (fraud analysis, party ledger, relations) degrade to empty
// values; a payload without transactions is rejected because the dashboard
// has nothing to show for it.
func ParseResult(r io.Reader) (*AnalysisResult, error) {
	var p payload
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode analysis payload: %w", err)
	}
	if len(p.Transactions) == 0 {
		return nil, core.ErrNoTransactions
	}

	result := &AnalysisResult{
		Timestamp:       p.Timestamp,
		Metadata:        p.Metadata,
		Transactions:    make([]core.Transaction, len(p.Transactions)),
		EntityRelations: p.Relations,
		Recurring:       p.Recurring,
	}
	for i, raw := range p.Transactions {
		result.Transactions[i] = raw.normalize()
	}

	if fa := p.FraudAnalysis; fa != nil {
		result.Frauds = fa.AllTransactions
		result.FraudSummary = &FraudSummary{
			FlaggedCount:        fa.FlaggedCount,
			FlaggedTransactions: fa.FlaggedTransactions,
			PremiumAnalysis:     fa.PremiumAnalysis,
			RiskScore:           fa.RiskScore,
			Summary:             fa.Summary,
		}
	}

	if len(p.PartyLedger) > 0 {
		result.PartyLedger = make([]core.PartyLedgerEntry, len(p.PartyLedger))
		for i, raw := range p.PartyLedger {
			result.PartyLedger[i] = core.PartyLedgerEntry(raw)
		}
	}

	return result, nil
}

// Entries merges the normalized transactions with their fraud annotations
// for the filter engine.
func (a *AnalysisResult) Entries() []core.Entry {
	return core.Merge(a.Transactions, a.Frauds)
}
