package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"stockrates-service/internal/application"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	ranges *application.RangeQuery
	stats  *application.Stats
	ping   func(ctx context.Context) error
}

func NewServer(ranges *application.RangeQuery, stats *application.Stats, ping func(context.Context) error) *Server {
	return &Server{ranges: ranges, stats: stats, ping: ping}
}

// GET /prices/{symbol}?start=YYYY-MM-DD&end=YYYY-MM-DD
func (s *Server) getPrices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := s.ranges.Fetch(r.Context(), chi.URLParam(r, "symbol"), q.Get("start"), q.Get("end"), "")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GET /prices?symbols=A,B&start=YYYY-MM-DD&end=YYYY-MM-DD
func (s *Server) getPricesMulti(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := s.ranges.FetchMulti(r.Context(), splitSymbols(q.Get("symbols")), q.Get("start"), q.Get("end"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GET /stats?symbols=A,B&start=YYYY-MM-DD&end=YYYY-MM-DD
func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := s.stats.Compute(r.Context(), splitSymbols(q.Get("symbols")), q.Get("start"), q.Get("end"), "")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func splitSymbols(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, application.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
