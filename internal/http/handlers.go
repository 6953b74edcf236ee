package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"acutrace/internal/core"
	"acutrace/internal/services"
)

// handleIngest accepts an analysis payload and opens a session for it.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.maxPayloadBytes)
	defer body.Close()

	id, err := s.service.Ingest(r.Context(), body)
	if err != nil {
		if errors.Is(err, core.ErrNoTransactions) {
			writeError(w, http.StatusUnprocessableEntity, "payload contains no transactions")
			return
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		slog.WarnContext(r.Context(), "Payload rejected", "error", err)
		writeError(w, http.StatusBadRequest, "malformed analysis payload")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

// handleResult returns the stored payload verbatim.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Result(r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.service.Discard(id)
	s.viewCache.DeletePrefix(id + "|")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	c := parseCriteria(r.URL.Query())
	s.respondView(w, r, "transactions", c, func() (any, error) {
		return s.service.FilteredEntries(r.PathValue("id"), c)
	})
}

// categoryView attaches a chart color to each breakdown slice.
type categoryView struct {
	core.CategoryRecord
	Color string `json:"color"`
}

func (s *Server) colorCategories(records []core.CategoryRecord) []categoryView {
	views := make([]categoryView, len(records))
	for i, rec := range records {
		views[i] = categoryView{CategoryRecord: rec, Color: s.palette.CategoryColor(i)}
	}
	return views
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	c := parseCriteria(r.URL.Query())
	s.respondView(w, r, "categories", c, func() (any, error) {
		records, err := s.service.Categories(r.PathValue("id"), c)
		if err != nil {
			return nil, err
		}
		return s.colorCategories(records), nil
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	c := parseCriteria(r.URL.Query())
	s.respondView(w, r, "trend", c, func() (any, error) {
		return s.service.Trend(r.PathValue("id"), c)
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	c := parseCriteria(r.URL.Query())
	s.respondView(w, r, "stats", c, func() (any, error) {
		return s.service.Stats(r.PathValue("id"), c)
	})
}

// nodeView attaches the role color to a graph node.
type nodeView struct {
	core.GraphNode
	Color string `json:"color"`
}

func (s *Server) colorNodes(nodes []core.GraphNode) []nodeView {
	views := make([]nodeView, len(nodes))
	for i, n := range nodes {
		views[i] = nodeView{GraphNode: n, Color: s.palette.NodeColor(n.Role)}
	}
	return views
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	s.respondView(w, r, "network", core.Criteria{}, func() (any, error) {
		nodes, err := s.service.Network(r.PathValue("id"))
		if err != nil {
			return nil, err
		}
		return s.colorNodes(nodes), nil
	})
}

func (s *Server) handleParties(w http.ResponseWriter, r *http.Request) {
	s.respondView(w, r, "parties", core.Criteria{}, func() (any, error) {
		return s.service.Parties(r.PathValue("id"))
	})
}

// dashboardView is the bundled response with display colors applied.
type dashboardView struct {
	Transactions []core.Entry         `json:"transactions"`
	Categories   []categoryView       `json:"categories"`
	Trend        []core.MonthBucket   `json:"trend"`
	Stats        core.Stats           `json:"stats"`
	Network      []nodeView           `json:"network"`
	Parties      core.PartyHighlights `json:"parties"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	c := parseCriteria(r.URL.Query())
	s.respondView(w, r, "dashboard", c, func() (any, error) {
		dash, err := s.service.ComputeDashboard(r.Context(), r.PathValue("id"), c)
		if err != nil {
			return nil, err
		}
		return dashboardView{
			Transactions: dash.Transactions,
			Categories:   s.colorCategories(dash.Categories),
			Trend:        dash.Trend,
			Stats:        dash.Stats,
			Network:      s.colorNodes(dash.Network),
			Parties:      dash.Parties,
		}, nil
	})
}

// respondView serves a derived view through the response cache. Views are
// pure functions of the stored snapshot and the criteria, so the encoded
// body can be reused until the session changes or the entry expires.
func (s *Server) respondView(w http.ResponseWriter, r *http.Request, view string, c core.Criteria, compute func() (any, error)) {
	key := r.PathValue("id") + "|" + view + "|" + criteriaCacheKey(c)

	if body, found := s.viewCache.Get(key); found {
		slog.DebugContext(r.Context(), "View cache hit", "view", view, "session_id", r.PathValue("id"))
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	v, err := compute()
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	body, err := json.Marshal(v)
	if err != nil {
		slog.ErrorContext(r.Context(), "View encoding failed", "view", view, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.viewCache.Set(key, body)
	writeRawJSON(w, http.StatusOK, body)
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	slog.ErrorContext(r.Context(), "View computation failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
