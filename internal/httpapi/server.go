package httpapi

import (
	"net/http"

	"github.com/pgarat123/livesky/internal/config"
)

func NewServer(cfg config.Config, mux *http.ServeMux) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: requestLogger(corsHeaders(cfg.CORSAllowOrigin, mux)),
	}
}
