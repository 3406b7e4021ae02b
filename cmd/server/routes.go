package main

import (
	"net/http"

	"github.com/JaimeStill/voice-lab/internal/agents"
	"github.com/JaimeStill/voice-lab/internal/chat"
	"github.com/JaimeStill/voice-lab/internal/config"
	"github.com/JaimeStill/voice-lab/internal/documents"
	"github.com/JaimeStill/voice-lab/internal/infrastructure"
	"github.com/JaimeStill/voice-lab/internal/lifecycle"
	"github.com/JaimeStill/voice-lab/internal/routes"
	"github.com/JaimeStill/voice-lab/internal/speech"
	"github.com/JaimeStill/voice-lab/internal/telephony"
	"github.com/JaimeStill/voice-lab/pkg/middleware"
	pkgroutes "github.com/JaimeStill/voice-lab/pkg/routes"
)

// buildHandler registers all routes and wraps the router in the middleware
// chain.
func buildHandler(infra *infrastructure.Infrastructure, domain *Domain, cfg *config.Config) http.Handler {
	r := routes.New(infra.Logger)
	registerRoutes(r, infra, domain, cfg)

	mw := middleware.New()
	mw.Use(middleware.Logger(infra.Logger))
	mw.Use(middleware.CORS(&cfg.CORS))
	mw.Use(middleware.TrimSlash())

	return mw.Apply(r.Build())
}

func registerRoutes(r pkgroutes.System, infra *infrastructure.Infrastructure, domain *Domain, cfg *config.Config) {
	agentHandler := agents.NewHandler(domain.Agents, infra.Logger, cfg.Pagination)
	r.RegisterGroup(agentHandler.Routes())
	r.RegisterGroup(agentHandler.VoiceRoutes())

	documentHandler := documents.NewHandler(domain.Documents, infra.Logger, cfg.Storage.MaxUploadSizeBytes())
	r.RegisterGroup(documentHandler.Routes())

	speechHandler := speech.NewHandler(domain.Speech, infra.Logger)
	r.RegisterGroup(speechHandler.Routes())

	telephonyHandler := telephony.NewHandler(domain.Telephony, infra.Logger)
	r.RegisterGroup(telephonyHandler.Routes())

	chatHandler := chat.NewHandler(domain.Chat, infra.Logger)
	r.RegisterGroup(chatHandler.Routes())

	r.RegisterRoute(pkgroutes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
	})

	r.RegisterRoute(pkgroutes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: func(w http.ResponseWriter, _ *http.Request) {
			handleReadinessCheck(w, infra.Lifecycle)
		},
	})
}

// handleHealthCheck responds with OK status for health monitoring.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
