package api

import (
	"net/http"
	"strings"
	"time"

	"judge_gateway/internal/api/handler"
	"judge_gateway/internal/api/middleware"
	"judge_gateway/internal/app/service"
	"judge_gateway/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	questionService *service.QuestionService,
	submissionService *service.SubmissionService,
	corsOrigins string,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	// No router-level timeout shorter than the submission poll budget;
	// the poller enforces its own bound.
	r.Use(chiMiddleware.Timeout(5 * time.Minute))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(corsOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Puts access-token claims in context; Authenticator below enforces them.
	r.Use(jwtauth.Verifier(security.AccessAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handler.NewAuthHandler(authService)
	questionHandler := handler.NewQuestionHandler(questionService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)

	// Auth routes (public)
	authHandler.RegisterRoutes(r)

	// Authenticated routes
	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Get("/", authHandler.Greeting)
		submissionHandler.RegisterRoutes(authed)

		// Admin-only routes
		authed.Group(func(admin chi.Router) {
			admin.Use(middleware.AdminOnly)
			questionHandler.RegisterRoutes(admin)
			submissionHandler.RegisterAdminRoutes(admin)
		})
	})

	return r
}

func splitOrigins(origins string) []string {
	var out []string
	for _, p := range strings.Split(origins, ",") {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = []string{"*"}
	}
	return out
}
