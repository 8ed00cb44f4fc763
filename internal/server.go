package internal

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/MarianoPoeta/magnus/internal/budget"
	"github.com/MarianoPoeta/magnus/internal/config"
	"github.com/MarianoPoeta/magnus/internal/cooking"
	"github.com/MarianoPoeta/magnus/internal/notification"
	"github.com/MarianoPoeta/magnus/internal/pushsubscription"
	"github.com/MarianoPoeta/magnus/internal/shopping"
	"github.com/MarianoPoeta/magnus/internal/task"
	"github.com/MarianoPoeta/magnus/pkg/cerr"
	"github.com/MarianoPoeta/magnus/pkg/clog"
)

type Server struct {
	server                 *http.Server
	env                    *config.BaseEnv
	budgetServer           *budget.Server
	taskServer             *task.Server
	shoppingServer         *shopping.Server
	cookingServer          *cooking.Server
	notificationServer     *notification.Server
	pushSubscriptionServer *pushsubscription.Server
}

func NewServer(
	env *config.BaseEnv,
	budgetServer *budget.Server,
	taskServer *task.Server,
	shoppingServer *shopping.Server,
	cookingServer *cooking.Server,
	notificationServer *notification.Server,
	pushSubscriptionServer *pushsubscription.Server,
) *Server {
	return &Server{
		env:                    env,
		budgetServer:           budgetServer,
		taskServer:             taskServer,
		shoppingServer:         shoppingServer,
		cookingServer:          cookingServer,
		notificationServer:     notificationServer,
		pushSubscriptionServer: pushSubscriptionServer,
	}
}

// ListenAndServe starts the HTTP server. The provided context is used as the
// base context for all incoming requests via http.Server.BaseContext, so
// cancelling it (e.g. on shutdown signal) also cancels in-flight handlers.
func (s *Server) ListenAndServe(ctx context.Context) error {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(
			clog.SlogChiMiddleware(),
			cerr.NewJSONResponseChiMiddleware(),
		)
		s.budgetServer.RegisterRoutes(r)
		s.taskServer.RegisterRoutes(r)
		s.shoppingServer.RegisterRoutes(r)
		s.cookingServer.RegisterRoutes(r)
		s.notificationServer.RegisterRoutes(r)
		s.pushSubscriptionServer.RegisterRoutes(r)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			cerr.SetNewJSONError(r.Context(), cerr.NotFound, "not found", nil)
		})
	})

	mux := http.NewServeMux()
	mux.Handle("/health", &HealthChecker{})
	mux.Handle("/api/", r)

	addr := net.JoinHostPort(s.env.HTTPHost, s.env.HTTPPort)
	slog.Info("starting server", "addr", addr)

	s.server = &http.Server{
		Addr: addr,
		Handler: h2c.NewHandler(cors.New(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}).Handler(s.apiKeyMiddleware(mux)), &http2.Server{}),
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type HealthChecker struct{}

func (hc *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) apiKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip API key check for the health endpoint.
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			apiKey = r.Header.Get("Authorization")
			if len(apiKey) > 7 && apiKey[:7] == "Bearer " {
				apiKey = apiKey[7:]
			}
		}
		if apiKey != s.env.APIKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
