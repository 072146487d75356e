package controllers

import (
	"net/http"

	"github.com/darshak-ai/restaurant-platform/api/responses"
	"github.com/darshak-ai/restaurant-platform/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Restaurant-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(pingers map[string]func(r *http.Request) error, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Restaurant-Env", cfg.App.Env)
		status := map[string]string{"status": "ready"}
		for name, ping := range pingers {
			if ping == nil {
				continue
			}
			if err := ping(r); err != nil {
				status["status"] = "degraded"
				status[name] = err.Error()
			} else {
				status[name] = "ok"
			}
		}
		responses.WriteSuccess(w, status)
	}
}
