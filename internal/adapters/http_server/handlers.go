// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"polimanage/internal/app"
	"polimanage/internal/domain"
)

const (
	serviceName = "polimanage-api"
	pingTimeout = 2 * time.Second
)

// Pinger reports database reachability for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function, e.g. (*sql.DB).PingContext.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Handlers struct {
	Pistas  *app.PistaService
	Clubs   *app.ClubService
	DB      Pinger // nil skips the database check
	Version string
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/", h.root)
	s.mux.Get("/health", h.health)

	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/pistas", h.listPistas)
		r.Get("/pistas/{id}", h.getPista)
		r.Get("/clubs", h.listClubs)
		r.Get("/clubs/{id}", h.getClub)
		r.Get("/clubs/slug/{slug}", h.getClubBySlug)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses. Driver text never
// reaches the client; it is logged with the request id instead.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, title, detail := http.StatusInternalServerError, "Internal Server Error", "unexpected error"
	if errors.Is(err, domain.ErrStorageUnavailable) {
		status, title, detail = http.StatusServiceUnavailable, "Service Unavailable", "database unavailable"
	}
	log.Error().Err(err).
		Str("route", routePattern(r)).
		Str("request_id", chimw.GetReqID(r.Context())).
		Int("status", status).
		Msg("request failed")
	writeProblem(w, status, title, detail)
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON sends v with a weak ETag and answers 304 when the client already has it.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "unexpected error")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("route", routePattern(r)).Msg("failed to write body")
	}
}

func writePlainJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return 0, false
	}
	return id, true
}

func (h *Handlers) root(w http.ResponseWriter, r *http.Request) {
	writePlainJSON(w, http.StatusOK, map[string]string{
		"message": "PoliManage API está corriendo correctamente",
		"status":  "ok",
		"version": h.Version,
	})
}

type check struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Status  string           `json:"status"`
		Service string           `json:"service"`
		Checks  map[string]check `json:"checks"`
	}{Status: "healthy", Service: serviceName, Checks: map[string]check{}}

	status := http.StatusOK
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		start := time.Now()
		if err := h.DB.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("health: database ping failed")
			resp.Status = "unhealthy"
			resp.Checks["database"] = check{Status: "unhealthy", Error: "database unreachable"}
			status = http.StatusServiceUnavailable
		} else {
			resp.Checks["database"] = check{Status: "healthy", ResponseTime: time.Since(start).String()}
		}
	}
	writePlainJSON(w, status, resp)
}

func (h *Handlers) listPistas(w http.ResponseWriter, r *http.Request) {
	out, err := h.Pistas.GetAllPistas(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) getPista(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	p, err := h.Pistas.GetPistaByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if p == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "Pista not found")
		return
	}
	writeJSON(w, r, p)
}

func (h *Handlers) listClubs(w http.ResponseWriter, r *http.Request) {
	out, err := h.Clubs.GetAllClubs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) getClub(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	c, err := h.Clubs.GetClubByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if c == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "Club not found")
		return
	}
	writeJSON(w, r, c)
}

func (h *Handlers) getClubBySlug(w http.ResponseWriter, r *http.Request) {
	c, err := h.Clubs.GetClubBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if c == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "Club not found")
		return
	}
	writeJSON(w, r, c)
}
