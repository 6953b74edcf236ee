package core

import "sort"

// PartySummary is one ranked counterparty in the highlights view.
type PartySummary struct {
	PartyName        string  `json:"party_name"`
	TotalCredit      float64 `json:"total_credit"`
	TotalDebit       float64 `json:"total_debit"`
	TransactionCount int     `json:"transaction_count"`
	Net              float64 `json:"net"`
}

// PartyHighlights ranks the party ledger three ways for the top-parties
// cards: most received from, most paid to, most frequent.
type PartyHighlights struct {
	TopByCredit    []PartySummary `json:"top_by_credit"`
	TopByDebit     []PartySummary `json:"top_by_debit"`
	TopByFrequency []PartySummary `json:"top_by_frequency"`
}

const highlightsPerRanking = 3

// TopParties derives the party highlights from the ledger. Each ranking is
// independent, descending, and stable, keeping ledger order for ties. An
// empty ledger yields empty rankings, never nil dereferences.
func TopParties(ledger []PartyLedgerEntry) PartyHighlights {
	return PartyHighlights{
		TopByCredit: rankParties(ledger, func(a, b PartyLedgerEntry) bool {
			return a.TotalCredit > b.TotalCredit
		}),
		TopByDebit: rankParties(ledger, func(a, b PartyLedgerEntry) bool {
			return a.TotalDebit > b.TotalDebit
		}),
		TopByFrequency: rankParties(ledger, func(a, b PartyLedgerEntry) bool {
			return a.TransactionCount > b.TransactionCount
		}),
	}
}

func rankParties(ledger []PartyLedgerEntry, less func(a, b PartyLedgerEntry) bool) []PartySummary {
	ranked := make([]PartyLedgerEntry, len(ledger))
	copy(ranked, ledger)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	if len(ranked) > highlightsPerRanking {
		ranked = ranked[:highlightsPerRanking]
	}
	out := make([]PartySummary, len(ranked))
	for i, p := range ranked {
		out[i] = PartySummary{
			PartyName:        p.PartyName,
			TotalCredit:      p.TotalCredit,
			TotalDebit:       p.TotalDebit,
			TransactionCount: p.TransactionCount,
			Net:              p.TotalCredit - p.TotalDebit,
		}
	}
	return out
}
