package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Dosada05/hackathon-system/handlers"
	"github.com/Dosada05/hackathon-system/middleware"
	"github.com/Dosada05/hackathon-system/models"
)

// SetupRoutes собирает все маршруты API на переданном роутере.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	eventHandler *handlers.EventHandler,
	registrationHandler *handlers.RegistrationHandler,
	teamHandler *handlers.TeamHandler,
	judgeHandler *handlers.JudgeHandler,
	submissionHandler *handlers.SubmissionHandler,
	scoreHandler *handlers.ScoreHandler,
	announcementHandler *handlers.AnnouncementHandler,
	questionHandler *handlers.QuestionHandler,
	chatHandler *handlers.ChatHandler,
	certificateHandler *handlers.CertificateHandler,
	uploadHandler *handlers.UploadHandler,
	docsHandler *handlers.DocsHandler,
	healthHandler *handlers.HealthHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Публичные маршруты
	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)
	router.Get("/health", healthHandler.Check)
	router.Get("/docs", docsHandler.Index)
	router.Get("/leaderboard/{eventID}", scoreHandler.Leaderboard)

	// WebSocket-подписки: канал определяется путём.
	router.Get("/ws/events/{eventID}", webSocketHandler.SubscribeEvent)
	router.Get("/ws/teams/{teamID}", webSocketHandler.SubscribeTeam)

	router.Route("/events", func(r chi.Router) {
		// ?mine=true работает и на публичном списке: токен разбирается,
		// если он передан.
		r.With(auth.AuthenticateOptional).Get("/", eventHandler.List)
		r.Get("/{eventID}", eventHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.With(middleware.RequireRole(models.RoleOrganizer)).Post("/", eventHandler.Create)
			r.Put("/{eventID}", eventHandler.Update)
		})
	})

	// Маршруты, требующие аутентификации
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/users/me", userHandler.Me)
		r.With(middleware.RequireRole(models.RoleOrganizer)).Post("/users/role", userHandler.ChangeRole)

		r.Get("/registrations", registrationHandler.List)
		r.Post("/registrations", registrationHandler.Register)

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.List)
			r.Post("/", teamHandler.Create)
			r.Post("/invite", teamHandler.Invite)
			r.Post("/join", teamHandler.Join)
		})

		r.Route("/judges", func(r chi.Router) {
			r.Get("/assignments", judgeHandler.List)
			r.With(middleware.RequireRole(models.RoleOrganizer)).Post("/assignments", judgeHandler.Assign)
			r.With(middleware.RequireRole(models.RoleJudge)).Get("/my-assignments", judgeHandler.MyAssignments)
		})

		r.Get("/submissions", submissionHandler.List)
		r.Post("/submissions", submissionHandler.Create)

		r.Get("/scores", scoreHandler.List)
		r.With(middleware.RequireRole(models.RoleJudge)).Post("/scores", scoreHandler.Create)

		r.Get("/announcements", announcementHandler.List)
		r.With(middleware.RequireRole(models.RoleOrganizer)).Post("/announcements", announcementHandler.Create)

		r.Get("/questions", questionHandler.List)
		r.Post("/questions", questionHandler.Ask)
		r.With(middleware.RequireRole(models.RoleOrganizer)).Put("/questions", questionHandler.Answer)

		r.Get("/chat", chatHandler.List)
		r.Post("/chat", chatHandler.Post)

		r.Route("/certificates", func(r chi.Router) {
			r.Get("/{eventID}", certificateHandler.List)
			r.With(middleware.RequireRole(models.RoleOrganizer)).Post("/generate", certificateHandler.Generate)
			r.With(middleware.RequireRole(models.RoleOrganizer)).Post("/bulk", certificateHandler.Bulk)
		})

		r.Post("/uploads", uploadHandler.Upload)
	})
}
