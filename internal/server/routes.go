package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/leapstack-labs/graphload/internal/store"
	"github.com/leapstack-labs/graphload/pkg/graph"
)

// ingestRequest is the body of a PUT /api/v1/nodes request. Edges may
// arrive with the nodes of their batch or in a later one.
type ingestRequest struct {
	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
}

// ingestResponse reports how many records an ingest request upserted.
type ingestResponse struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

func (s *Server) handlePutNodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ingestRequest
	defer func() { _ = r.Body.Close() }()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	nodes, err := s.store.UpsertNodes(ctx, req.Nodes)
	if err != nil {
		s.logger.Error("failed to upsert nodes", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	edges, err := s.store.UpsertEdges(ctx, req.Edges)
	if err != nil {
		s.logger.Error("failed to upsert edges", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.logger.Debug("ingested batch", "nodes", nodes, "edges", edges)
	respondJSON(w, http.StatusOK, ingestResponse{Nodes: nodes, Edges: edges})
}

func (s *Server) handleGetNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.store.ListNodes(r.Context(), queryFromRequest(r))
	if err != nil {
		s.logger.Error("failed to list nodes", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, nodes)
}

func (s *Server) handleGetEdges(w http.ResponseWriter, r *http.Request) {
	edges, err := s.store.ListEdges(r.Context(), queryFromRequest(r))
	if err != nil {
		s.logger.Error("failed to list edges", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, edges)
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.logger.Error("failed to get stats", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// queryFromRequest reads the label and limit query parameters.
func queryFromRequest(r *http.Request) store.Query {
	q := store.Query{Label: r.URL.Query().Get("label")}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		q.Limit = l
	}
	return q
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
