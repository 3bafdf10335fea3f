package httpapi

import (
	"log/slog"
	"net/http"
)

// registerRoot serves a minimal liveness page at /, kept from the first
// version of the backend so a browser hit shows the process is up.
func registerRoot(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte("<h1>livesky backend is running</h1>")); err != nil {
			slog.Error("root: write response failed", "error", err)
		}
	})
}
