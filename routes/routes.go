package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"comments-api/config"
	"comments-api/controllers"
	"comments-api/middleware"
	"comments-api/models"
	"comments-api/utils"
)

// Route binds one method and path to its full handler chain.
type Route struct {
	Method   string
	Path     string
	Handlers []gin.HandlerFunc
}

type Dependencies struct {
	Comments *controllers.CommentController
	Auth     *controllers.AuthController
	Health   *controllers.HealthController
	Tokens   middleware.TokenParser
	// Limiter is shared with the cleanup job; nil builds one from config.
	Limiter *middleware.RateLimiter
}

// Table lists every route the service serves. It is built once at startup.
func Table(d Dependencies) []Route {
	requireAuth := middleware.AuthMiddleware(d.Tokens)

	return []Route{
		{http.MethodGet, "/ping", chain(d.Health.Ping)},
		{http.MethodGet, "/health", chain(d.Health.Health)},

		// Users and auth
		{http.MethodPost, "/api/users", chain(
			middleware.ValidateBody[models.RegisterRequest](),
			d.Auth.Register,
		)},
		{http.MethodPost, "/api/auth", chain(
			middleware.ValidateBody[models.LoginRequest](),
			d.Auth.Login,
		)},
		{http.MethodGet, "/api/auth", chain(
			requireAuth,
			middleware.WithPrincipal(d.Auth.GetCurrentUser),
		)},

		// Comments
		{http.MethodPost, "/api/comments", chain(
			requireAuth,
			middleware.ValidateBody[models.CreateCommentRequest](),
			middleware.WithPrincipal(d.Comments.CreateComment),
		)},
		{http.MethodGet, "/api/comments", chain(d.Comments.GetComments)},
		{http.MethodGet, "/api/comments/:id", chain(d.Comments.GetComment)},
	}
}

func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	return handlers
}

func Register(r gin.IRoutes, table []Route) {
	for _, route := range table {
		r.Handle(route.Method, route.Path, route.Handlers...)
	}
}

// SetupRouter builds the engine with the global middleware stack and the
// route table.
func SetupRouter(cfg *config.Config, d Dependencies, log zerolog.Logger) *gin.Engine {
	limiter := d.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	r := gin.New()

	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Server.CORSAllowedOrigins),
		limiter.Middleware(),
	)

	Register(r, Table(d))

	r.NoRoute(func(c *gin.Context) {
		utils.SendMessage(c, http.StatusNotFound, "Not found")
	})

	return r
}
