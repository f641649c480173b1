package doccast

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/hazyhaar/doccast/internal/store"
)

// APIConfig configures the HTTP surface.
type APIConfig struct {
	// Store records the conversion history; nil disables history routes
	// and recording.
	Store *store.Store

	// PasswordHash is an optional bcrypt hash; when set, every /api route
	// requires HTTP Basic auth with the matching password.
	PasswordHash string

	// MaxBodySize caps request bodies (default 25 MB).
	MaxBodySize int64
}

// Routes returns the HTTP API handler: POST /api/convert, GET /api/history,
// GET /api/stats, GET /healthz.
func (c *Converter) Routes(api APIConfig) http.Handler {
	if api.MaxBodySize <= 0 {
		api.MaxBodySize = 25 * 1024 * 1024
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(maxBody(api.MaxBodySize))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		if api.PasswordHash != "" {
			r.Use(basicAuth(api.PasswordHash))
		}

		r.Post("/convert", c.handleConvert(api.Store))

		if api.Store != nil {
			r.Get("/history", handleHistory(api.Store))
			r.Get("/stats", handleStats(api.Store))
		}
	})

	return r
}

func (c *Converter) handleConvert(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in ConvertInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
			return
		}

		res, err := c.Convert(r.Context(), in)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, ErrInvalidInput):
				status = http.StatusBadRequest
			case errors.Is(err, ErrInputTooLarge):
				status = http.StatusRequestEntityTooLarge
			}
			c.recordConversion(r.Context(), st, &in, nil, err)
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}

		c.recordConversion(r.Context(), st, &in, res, nil)
		writeJSON(w, http.StatusOK, res)
	}
}

// recordConversion writes one history row. Best-effort: a history failure
// never fails the conversion response.
func (c *Converter) recordConversion(ctx context.Context, st *store.Store, in *ConvertInput, res *Result, convErr error) {
	if st == nil {
		return
	}
	row := &store.Conversion{
		SourceFile: in.Filename,
	}
	if res != nil {
		row.ID = res.ID
		row.Title = res.Title
		row.WordCount = res.Content.Meta.WordCount
		row.CharCount = res.Content.Meta.CharCount
		row.DurationMs = res.Duration.Milliseconds()
		for f := range res.Outputs {
			row.Formats = append(row.Formats, string(f))
		}
	} else {
		row.ID = NewID()
		row.Status = "failed"
		if convErr != nil {
			row.Error = convErr.Error()
		}
	}
	if err := st.Insert(ctx, row); err != nil {
		c.logger.Warn("history insert failed", "id", row.ID, "error", err)
	}
}

func handleHistory(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		rows, err := st.Recent(r.Context(), limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if rows == nil {
			rows = []*store.Conversion{}
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func handleStats(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := st.Stats(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// securityHeaders sets the standard response hardening headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		next.ServeHTTP(w, r)
	})
}

// maxBody limits request body size on every route.
func maxBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// basicAuth checks the Basic password against a bcrypt hash.
func basicAuth(passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, pass, ok := r.BasicAuth()
			if !ok || bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pass)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="doccast"`)
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
