package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"

	"github.com/Dosada05/bracket-service/handlers"
	"github.com/Dosada05/bracket-service/middleware"
	"github.com/Dosada05/bracket-service/models"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	divisionHandler *handlers.DivisionHandler,
	registrationHandler *handlers.RegistrationHandler,
	bracketHandler *handlers.BracketHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/divisions", func(r chi.Router) {
		// Публичные маршруты для просмотра
		r.Get("/", divisionHandler.List)
		r.Get("/{divisionID}", divisionHandler.Get)
		r.Get("/{divisionID}/registrations", registrationHandler.List)
		r.Get("/{divisionID}/bracket", bracketHandler.Get)
		r.Get("/{divisionID}/bracket/simulation", bracketHandler.Simulate)
		r.Get("/{divisionID}/bracket/captains", bracketHandler.Captains)

		// Заявки подают сами капитаны
		r.Post("/{divisionID}/registrations", registrationHandler.Register)
		r.Delete("/{divisionID}/registrations/{userID}", registrationHandler.Withdraw)

		// Защищённые маршруты только для организаторов
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(models.RoleOrganizer, models.RoleAdmin))

			r.Put("/{divisionID}", divisionHandler.Configure)
			r.Post("/{divisionID}/bracket", bracketHandler.Create)
			r.Post("/{divisionID}/bracket/matches/{matchID}/winner", bracketHandler.ReportWinner)
			r.Post("/{divisionID}/bracket/publish", bracketHandler.Publish)
		})
	})

	router.Get("/ws/divisions/{divisionID}", webSocketHandler.ServeWs)
}
