package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sergheevdev/event-bus/internal/handler"
	"github.com/sergheevdev/event-bus/internal/manager"
	"github.com/sergheevdev/event-bus/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Kinds() []string
	Publish(kind string, payload []byte) (handler.Event, error)
	Snapshot() manager.Snapshot
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, statusResponse(svc.Snapshot()))
	})

	r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.KindsResponse{Kinds: svc.Kinds()})
	})

	r.Post("/events/{kind}", func(w http.ResponseWriter, r *http.Request) {
		kind := chi.URLParam(r, "kind")
		if !knownKind(svc, kind) {
			writeJSONError(w, http.StatusNotFound, "unknown event kind "+kind)
			return
		}
		// Content-Type check
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		// Limit body size (configurable, default 1MiB)
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		lvl := requestLogLevel(r)
		start := time.Now()
		if lvl >= LevelDebug {
			z := zlog.Debug().Str("kind", kind).RawJSON("payload", jsonOrNull(payload))
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("publish start")
		}

		ev, err := svc.Publish(kind, payload)
		status := http.StatusOK
		if err != nil {
			status = statusFor(err)
		}
		countPublish(kind, status)
		if lvl >= LevelInfo || (err != nil && lvl >= LevelError) {
			z := zlog.Info()
			if err != nil {
				z = zlog.Warn()
			}
			z = z.Str("kind", kind).Int("status", status).Dur("dur", time.Since(start))
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Err(err).Msg("publish end")
		}
		if err != nil {
			writeJSONError(w, status, err.Error())
			return
		}
		writeJSON(w, types.PublishResponse{Kind: kind, Event: ev})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

func knownKind(svc Service, kind string) bool {
	for _, k := range svc.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

func jsonOrNull(b []byte) []byte {
	if !json.Valid(b) {
		return []byte("null")
	}
	return b
}

// statusResponse converts a manager snapshot into its JSON payload.
func statusResponse(s manager.Snapshot) types.StatusResponse {
	resp := types.StatusResponse{
		Variant:       s.Variant,
		Listeners:     s.Listeners,
		Handlers:      s.Handlers,
		Queues:        make([]types.QueueStatus, 0, len(s.Queues)),
		ListenerTypes: make([]types.ListenerTypeStatus, 0, len(s.ListenerTypes)),
	}
	for _, q := range s.Queues {
		resp.Queues = append(resp.Queues, types.QueueStatus{EventType: q.EventType.String(), Handlers: q.Handlers})
	}
	for _, lt := range s.ListenerTypes {
		resp.ListenerTypes = append(resp.ListenerTypes, types.ListenerTypeStatus{
			ListenerType: lt.ListenerType.String(),
			Listeners:    lt.Listeners,
			Handlers:     lt.Handlers,
		})
	}
	return resp
}
