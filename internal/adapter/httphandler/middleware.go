package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// LogRequest tags each request with a generated id and logs method and path.
func LogRequest(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		slog.Info("request",
			"reqID", reqID,
			"method", r.Method,
			"path", r.URL.Path,
		)
		w.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}
