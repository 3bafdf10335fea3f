package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewMux(db *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()
	registerRoot(mux)
	registerHealthcheck(mux, db)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}
