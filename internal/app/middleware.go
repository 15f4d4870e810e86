package app

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/klokku/eventboard/internal/config"
	log "github.com/sirupsen/logrus"
)

const requestIdHeader = "X-Request-Id"

// SetupMiddleware wires the middlewares shared by every route.
func SetupMiddleware(r *mux.Router) {
	r.Use(requestLogging)
}

// requestLogging tags each request with an id and logs its outcome.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestId := req.Header.Get(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		w.Header().Set(requestIdHeader, requestId)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)

		log.WithFields(log.Fields{
			"request_id": requestId,
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start),
		}).Debug("request handled")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// CSRFProtection guards the HTML forms. Disabled config returns next unchanged.
func CSRFProtection(cfg config.Csrf, next http.Handler) (http.Handler, error) {
	if !cfg.Enabled {
		log.Warn("CSRF protection disabled")
		return next, nil
	}
	key, err := csrfKey(cfg.Key)
	if err != nil {
		return nil, err
	}

	protect := csrf.Protect(key,
		csrf.Secure(cfg.Secure),
		csrf.Path("/"),
		csrf.TrustedOrigins(cfg.TrustedOrigins),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Warnf("CSRF validation failed for %s %s: %v", r.Method, r.URL.Path, csrf.FailureReason(r))
			http.Error(w, "Forbidden - CSRF token invalid", http.StatusForbidden)
		})),
	)
	protected := protect(next)
	if cfg.Secure {
		return protected, nil
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	}), nil
}

func csrfKey(keyHex string) ([]byte, error) {
	if keyHex == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate CSRF key: %w", err)
		}
		log.Warn("using random CSRF key (forms won't survive restart). Set EVENTBOARD_CSRF_KEY to keep it stable.")
		return key, nil
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) != 32 {
		return nil, fmt.Errorf("csrf key must be 64 hex characters (32 bytes)")
	}
	return key, nil
}
