package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"listinha/internal/core"
	"listinha/internal/export"
)

type addItemRequest struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"price"` // decimal, "5.99" or "5,99"
}

type addItemResponse struct {
	Item   core.Item    `json:"item"`
	Alerts []core.Alert `json:"alerts,omitempty"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cents, err := core.ParseDecimalToCents(req.Price)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid price")
		return
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	item, alerts, err := s.lists.AddItem(r.Context(), req.Name, qty, core.Money{Cents: cents})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, addItemResponse{Item: item, Alerts: alerts})
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := s.lists.RemoveItem(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]core.Item{"removed": item})
}

type updateBudgetRequest struct {
	Budget string `json:"budget"` // decimal; zero (or empty) clears the budget
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req updateBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var cents int64
	if v := strings.TrimSpace(req.Budget); v != "" {
		parsed, err := core.ParseBudgetToCents(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid budget")
			return
		}
		cents = parsed
	}

	alerts, err := s.lists.UpdateBudget(r.Context(), core.Money{Cents: cents})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"alerts": alerts, "summary": s.lists.Summary()})
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	rec, err := s.lists.Finalize(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if s.share != nil {
		s.share.Revoke(rec.List.ID)
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.lists.List())
}

func (s *Server) handleGetGroups(w http.ResponseWriter, r *http.Request) {
	groups := s.lists.Groups(r.URL.Query().Get("q"))
	if groups == nil {
		groups = []core.CategoryGroup{}
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.lists.Summary())
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	history := s.lists.History()
	if history == nil {
		history = []core.HistoryRecord{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleGetShare(w http.ResponseWriter, r *http.Request) {
	if s.share == nil {
		writeError(w, http.StatusServiceUnavailable, "sharing not configured")
		return
	}
	l := s.lists.List()
	writeJSON(w, http.StatusOK, map[string]string{
		"list_id": l.ID,
		"url":     s.share.Link(l.ID),
	})
}

func (s *Server) handleExportText(w http.ResponseWriter, r *http.Request) {
	l := s.lists.List()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.RenderList(&l)))
}

type compareResponse struct {
	Quotes  map[string][]compareQuote `json:"quotes"`
	Partial bool                      `json:"partial"`
}

type compareQuote struct {
	Store string     `json:"store"`
	Price core.Money `json:"price"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if s.compare == nil {
		writeError(w, http.StatusServiceUnavailable, "price comparison not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.compareWait)
	defer cancel()

	l := s.lists.List()
	quotes, err := s.compare.Compare(ctx, l.Items)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		writeError(w, http.StatusBadGateway, "price comparison failed")
		return
	}

	resp := compareResponse{Quotes: make(map[string][]compareQuote, len(quotes)), Partial: err != nil}
	for name, qs := range quotes {
		out := make([]compareQuote, 0, len(qs))
		for _, q := range qs {
			out = append(out, compareQuote{Store: q.Store, Price: q.Price})
		}
		resp.Quotes[name] = out
	}
	writeJSON(w, http.StatusOK, resp)
}
