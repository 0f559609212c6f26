package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/randevu-app/randevu-server/internal/config"
)

// StartHTTPServer boots the HTTP server with the given handler.
func StartHTTPServer(cfg *config.Config, handler http.Handler) error {
	addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return srv.ListenAndServe()
}
