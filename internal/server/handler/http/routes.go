package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/digiprop/inspect/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the inspection API.
//
// Routes:
//
//	POST  /api/auth/login           → authHandler.Login
//	POST  /api/auth/signup          → authHandler.Signup
//	POST  /api/auth/forgot-password → authHandler.ForgotPassword
//	POST  /api/auth/verify-code     → authHandler.VerifyCode
//	POST  /api/auth/reset-password  → authHandler.ResetPassword
//	GET   /api/users/{id}           → authHandler.Profile        (auth)
//	CRUD  /api/inspections[/{id}]   → inspectionHandler          (auth)
//	CRUD  /api/properties[/{id}]    → propertyHandler            (auth)
//	POST  /api/images               → mediaHandler.Upload        (auth)
//
// The auth endpoints are public; everything else requires a bearer token
// signed with jwtSecret.
func NewRouter(
	authHandler *AuthHandler,
	inspectionHandler *InspectionHandler,
	propertyHandler *PropertyHandler,
	mediaHandler *MediaHandler,
	jwtSecret []byte,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// The mobile client may run from any origin during development.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/forgot-password", authHandler.ForgotPassword)
		r.Post("/auth/verify-code", authHandler.VerifyCode)
		r.Post("/auth/reset-password", authHandler.ResetPassword)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenAuth(jwtSecret))

			r.Get("/users/{id}", authHandler.Profile)

			r.Get("/inspections", inspectionHandler.List)
			r.Post("/inspections", inspectionHandler.Create)
			r.Get("/inspections/{id}", inspectionHandler.Get)
			r.Patch("/inspections/{id}", inspectionHandler.Update)
			r.Delete("/inspections/{id}", inspectionHandler.Delete)

			r.Get("/properties", propertyHandler.List)
			r.Post("/properties", propertyHandler.Create)
			r.Get("/properties/{id}", propertyHandler.Get)
			r.Patch("/properties/{id}", propertyHandler.Update)
			r.Delete("/properties/{id}", propertyHandler.Delete)

			r.Post("/images", mediaHandler.Upload)
		})
	})

	return r
}
