// Package services orchestrates ingest, session storage, and the analytics
// engine for the HTTP layer.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"acutrace/internal/core"
	"acutrace/internal/ingest"
	"acutrace/internal/session"
)

// AnalysisService owns the session store and exposes every derived view
// the dashboard requests. Each view call recomputes from the immutable
// stored snapshot; no view is incrementally patched.
type AnalysisService struct {
	store *session.Store
}

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = fmt.Errorf("session not found")

func NewAnalysisService(store *session.Store) *AnalysisService {
	return &AnalysisService{store: store}
}

// Ingest parses an analysis payload and stores it under a new session id.
func (s *AnalysisService) Ingest(ctx context.Context, r io.Reader) (string, error) {
	result, err := ingest.ParseResult(r)
	if err != nil {
		return "", fmt.Errorf("ingest analysis result: %w", err)
	}

	id := s.store.Put(result)
	slog.InfoContext(ctx, "Stored analysis result",
		"session_id", id,
		"transactions", len(result.Transactions),
		"parties", len(result.PartyLedger))
	return id, nil
}

// Discard drops a session. Unknown ids are a no-op.
func (s *AnalysisService) Discard(id string) {
	s.store.Delete(id)
}

// Result returns the stored result verbatim, including the narrative and
// risk fields the engine does not transform.
func (s *AnalysisService) Result(id string) (*ingest.AnalysisResult, error) {
	result, ok := s.store.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return result, nil
}

// FilteredEntries applies the criteria to a session's merged entries.
func (s *AnalysisService) FilteredEntries(id string, c core.Criteria) ([]core.Entry, error) {
	result, err := s.Result(id)
	if err != nil {
		return nil, err
	}
	return core.Filter(result.Entries(), c), nil
}

// Categories returns the spend-by-category breakdown of the filtered set.
func (s *AnalysisService) Categories(id string, c core.Criteria) ([]core.CategoryRecord, error) {
	entries, err := s.FilteredEntries(id, c)
	if err != nil {
		return nil, err
	}
	return core.CategoryBreakdown(entries), nil
}

// Trend returns the monthly volume series of the filtered set.
func (s *AnalysisService) Trend(id string, c core.Criteria) ([]core.MonthBucket, error) {
	entries, err := s.FilteredEntries(id, c)
	if err != nil {
		return nil, err
	}
	return core.MonthlyTrend(entries), nil
}

// Stats returns the enhanced-statistics summary of the filtered set.
func (s *AnalysisService) Stats(id string, c core.Criteria) (core.Stats, error) {
	entries, err := s.FilteredEntries(id, c)
	if err != nil {
		return core.Stats{}, err
	}
	return core.ComputeStats(entries), nil
}

// Network returns the radial party-graph layout for a session.
func (s *AnalysisService) Network(id string) ([]core.GraphNode, error) {
	result, err := s.Result(id)
	if err != nil {
		return nil, err
	}
	return core.Layout(result.PartyLedger), nil
}

// Parties returns the ranked party highlights for a session.
func (s *AnalysisService) Parties(id string) (core.PartyHighlights, error) {
	result, err := s.Result(id)
	if err != nil {
		return core.PartyHighlights{}, err
	}
	return core.TopParties(result.PartyLedger), nil
}

// Dashboard bundles every derived view in one response.
type Dashboard struct {
	Transactions []core.Entry          `json:"transactions"`
	Categories   []core.CategoryRecord `json:"categories"`
	Trend        []core.MonthBucket    `json:"trend"`
	Stats        core.Stats            `json:"stats"`
	Network      []core.GraphNode      `json:"network"`
	Parties      core.PartyHighlights  `json:"parties"`
}

// ComputeDashboard derives all views for one criteria set. The sections
// are independent pure transforms over the same immutable snapshot, so
// they run concurrently; the engine itself stays free of shared state.
func (s *AnalysisService) ComputeDashboard(ctx context.Context, id string, c core.Criteria) (*Dashboard, error) {
	result, err := s.Result(id)
	if err != nil {
		return nil, err
	}

	entries := core.Filter(result.Entries(), c)
	dash := &Dashboard{Transactions: entries}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		dash.Categories = core.CategoryBreakdown(entries)
		return nil
	})
	g.Go(func() error {
		dash.Trend = core.MonthlyTrend(entries)
		return nil
	})
	g.Go(func() error {
		dash.Stats = core.ComputeStats(entries)
		return nil
	})
	g.Go(func() error {
		dash.Network = core.Layout(result.PartyLedger)
		dash.Parties = core.TopParties(result.PartyLedger)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dash, nil
}

// Close releases the session store's background resources.
func (s *AnalysisService) Close() {
	if s.store != nil {
		s.store.Stop()
	}
}
