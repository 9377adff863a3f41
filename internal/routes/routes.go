package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/kderen/bugtrail/internal/auth"
	"github.com/kderen/bugtrail/internal/handlers"
	"github.com/kderen/bugtrail/internal/middleware"
	"github.com/kderen/bugtrail/internal/models"
)

// RegisterRoutes registers all application routes.
//
// The authenticator runs on every route and only populates (or clears) the
// request principal; the Require* middleware on the protected groups is
// what actually rejects unauthenticated or unauthorized requests.
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	bugHandler *handlers.BugHandler,
	codec *auth.TokenCodec,
) {
	router.Use(auth.Authenticator(codec))

	rateLimitConfig := middleware.DefaultAuthRateLimit()

	// Public routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(rateLimitConfig))
		r.Post("/authentication/login", authHandler.Login)
		r.Post("/authentication/register", authHandler.Register)
	})

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuthentication)

		r.Route("/users", func(r chi.Router) {
			r.With(auth.RequireAuthority(models.AuthorityUserRead)).Get("/", userHandler.ListUsers)
			r.With(auth.RequireAuthority(models.AuthorityUserRead)).Get("/{email}", userHandler.GetUser)
			r.With(auth.RequireAuthority(models.AuthorityUserUpdate)).Put("/{email}", userHandler.UpdateUser)
			r.With(auth.RequireAuthority(models.AuthorityUserUpdate)).Post("/{email}/unlock", userHandler.UnlockUser)
			r.With(auth.RequireAuthority(models.AuthorityUserDelete)).Delete("/{email}", userHandler.DeleteUser)
		})

		r.Route("/bugs", func(r chi.Router) {
			r.With(auth.RequireAuthority(models.AuthorityBugRead)).Get("/", bugHandler.ListBugs)
			r.With(auth.RequireAuthority(models.AuthorityBugRead)).Get("/{id}", bugHandler.GetBug)
			r.With(auth.RequireAuthority(models.AuthorityBugCreate)).Post("/", bugHandler.CreateBug)
			r.With(auth.RequireAuthority(models.AuthorityBugUpdate)).Put("/{id}", bugHandler.UpdateBug)
			r.With(auth.RequireAuthority(models.AuthorityBugDelete)).Delete("/{id}", bugHandler.DeleteBug)
		})
	})
}
