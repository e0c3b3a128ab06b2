package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "polimanage/internal/adapters/http_server"
	"polimanage/internal/app"
	"polimanage/internal/domain"
	"polimanage/internal/storage/memory"
)

type failingPistas struct{ err error }

func (f failingPistas) GetAll(context.Context) ([]domain.Pista, error)        { return nil, f.err }
func (f failingPistas) GetByID(context.Context, int64) (*domain.Pista, error) { return nil, f.err }

type failingClubs struct{ err error }

func (f failingClubs) GetAll(context.Context) ([]domain.Club, error)           { return nil, f.err }
func (f failingClubs) GetByID(context.Context, int64) (*domain.Club, error)    { return nil, f.err }
func (f failingClubs) GetBySlug(context.Context, string) (*domain.Club, error) { return nil, f.err }

type problemBody struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func seededServer(t *testing.T, opts httpserver.Options, db httpserver.Pinger) http.Handler {
	t.Helper()
	s := memory.NewStore()
	s.SeedPistas(
		domain.Pista{ID: 3, Nombre: "C", Tipo: "padel", PrecioHoraBase: decimal.RequireFromString("9.5"), EsActiva: true, Estado: "DISPONIBLE"},
		domain.Pista{ID: 1, Nombre: "A", Tipo: "tenis", PrecioHoraBase: decimal.NewFromInt(12), EsActiva: false, Estado: "CERRADA"},
		domain.Pista{ID: 2, Nombre: "B", Tipo: "padel", PrecioHoraBase: decimal.NewFromInt(15), EsActiva: true, Estado: "OCUPADA"},
	)
	s.SeedClubs(
		domain.Club{ID: 5, Name: "Dormido", Slug: "dormido", IsActive: false, CreatedAt: time.Now()},
		domain.Club{ID: 6, Name: "Vivo", Slug: "vivo", IsActive: true, CreatedAt: time.Now()},
	)
	srv := httpserver.New(opts)
	srv.MountHandlers(&httpserver.Handlers{
		Pistas:  app.NewPistaService(memory.NewPistaRepo(s)),
		Clubs:   app.NewClubService(memory.NewClubRepo(s)),
		DB:      db,
		Version: "test",
	})
	return srv.Mux()
}

func failingServer(err error) http.Handler {
	srv := httpserver.New(httpserver.Options{})
	srv.MountHandlers(&httpserver.Handlers{
		Pistas: app.NewPistaService(failingPistas{err}),
		Clubs:  app.NewClubService(failingClubs{err}),
	})
	return srv.Mux()
}

func get(h http.Handler, path string, hdr ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeProblem(t *testing.T, rr *httptest.ResponseRecorder) problemBody {
	t.Helper()
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	var p problemBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	return p
}

func TestListPistas(t *testing.T) {
	h := seededServer(t, httpserver.Options{}, nil)

	rr := get(h, "/api/pistas")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, []any{out[0]["id"], out[1]["id"], out[2]["id"]})
	assert.Equal(t, false, out[0]["es_activa"])
	assert.Contains(t, rr.Body.String(), `"precio_hora_base":9.50`)
}

func TestListPistas_ETagNotModified(t *testing.T) {
	h := seededServer(t, httpserver.Options{}, nil)

	first := get(h, "/api/pistas")
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	second := get(h, "/api/pistas", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.String())
}

func TestGetPista(t *testing.T) {
	h := seededServer(t, httpserver.Options{}, nil)

	rr := get(h, "/api/pistas/2")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"nombre":"B"`)

	rr = get(h, "/api/pistas/999")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Pista not found", decodeProblem(t, rr).Detail)
}

func TestListClubs_OnlyActive(t *testing.T) {
	h := seededServer(t, httpserver.Options{}, nil)

	rr := get(h, "/api/clubs")
	require.Equal(t, http.StatusOK, rr.Code)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "vivo", out[0]["slug"])
	assert.NotContains(t, out[0], "owner_id")
	assert.NotContains(t, out[0], "is_active")
}

func TestGetClub_InactiveStillReturned(t *testing.T) {
	h := seededServer(t, httpserver.Options{}, nil)

	rr := get(h, "/api/clubs/5")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":5,"name":"Dormido","slug":"dormido","description":null,"logo_url":null}`, rr.Body.String())
}

func TestGetClub_NotFound(t *testing.T) {
	h := seededServer(t, httpserver.Options{}, nil)

	rr := get(h, "/api/clubs/999")
	require.Equal(t, http.StatusNotFound, rr.Code)
	p := decodeProblem(t, rr)
	assert.Equal(t, 404, p.Status)
	assert.Equal(t, "Club not found", p.Detail)
}

func TestGetClub_InvalidID(t *testing.T) {
	h := seededServer(t, httpserver.Options{}, nil)

	rr := get(h, "/api/clubs/abc")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid ID", decodeProblem(t, rr).Title)
}

func TestGetClubBySlug(t *testing.T) {
	h := seededServer(t, httpserver.Options{}, nil)

	rr := get(h, "/api/clubs/slug/dormido")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":5`)

	rr = get(h, "/api/clubs/slug/nadie")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStorageUnavailableMapsTo503(t *testing.T) {
	h := failingServer(&domain.StorageUnavailableError{Op: "clubs.GetAll", Err: errors.New("dial tcp 10.0.0.1:5432: connection refused")})

	for _, path := range []string{"/api/clubs", "/api/clubs/1", "/api/pistas", "/api/pistas/1", "/api/clubs/slug/x"} {
		rr := get(h, path)
		require.Equal(t, http.StatusServiceUnavailable, rr.Code, path)
		p := decodeProblem(t, rr)
		assert.Equal(t, "database unavailable", p.Detail)
		assert.NotContains(t, rr.Body.String(), "10.0.0.1")
	}
}

func TestMissingFieldMapsTo500(t *testing.T) {
	h := failingServer(&domain.MissingFieldError{Entity: "pista", Field: "tipo"})

	rr := get(h, "/api/pistas")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "tipo")
}

func TestRoot(t *testing.T) {
	h := seededServer(t, httpserver.Options{}, nil)

	rr := get(h, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
	assert.Contains(t, body["message"], "PoliManage")
}

func TestHealth(t *testing.T) {
	ok := seededServer(t, httpserver.Options{}, httpserver.PingFunc(func(context.Context) error { return nil }))
	rr := get(ok, "/health")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"healthy"`)

	down := seededServer(t, httpserver.Options{}, httpserver.PingFunc(func(context.Context) error { return errors.New("refused") }))
	rr = get(down, "/health")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"unhealthy"`)
	assert.NotContains(t, rr.Body.String(), "refused")
}

func TestRateLimit(t *testing.T) {
	h := seededServer(t, httpserver.Options{RateLimitRPS: 0.001, RateLimitBurst: 1}, nil)

	assert.Equal(t, http.StatusOK, get(h, "/api/clubs").Code)
	rr := get(h, "/api/clubs")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

func TestCORSAllowsAnyOriginByDefault(t *testing.T) {
	h := seededServer(t, httpserver.Options{}, nil)

	rr := get(h, "/api/clubs", "Origin", "http://localhost:3000")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
