package routes

import (
	"github.com/Bekzhan07/swiss-system/handlers"
	"github.com/Bekzhan07/swiss-system/middleware"
	"github.com/Bekzhan07/swiss-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	corsOrigin string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	standingsHandler *handlers.StandingsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/register", authHandler.RegisterHandler)
	router.Post("/auth/login", authHandler.LoginHandler)

	organizerOnly := func(r chi.Router) chi.Router {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize(string(models.RoleOrganizer)))
		return r
	}

	router.Route("/tournaments", func(r chi.Router) {
		// Публичные маршруты для просмотра турниров
		r.Get("/", tournamentHandler.ListTournamentsHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetTournamentHandler)
		r.Get("/{tournamentID}/players", playerHandler.ListPlayersHandler)
		r.Get("/{tournamentID}/matches", matchHandler.ListMatchesHandler)
		r.Get("/{tournamentID}/standings", standingsHandler.GetStandingsHandler)
		r.Get("/{tournamentID}/rankings", standingsHandler.GetFinalRankingsHandler)
		r.Get("/{tournamentID}/pairings", standingsHandler.GetPairingsHandler)

		// Защищённые маршруты только для организаторов
		r.Group(func(r chi.Router) {
			organizerOnly(r)

			r.Post("/", tournamentHandler.CreateTournamentHandler)
			r.Put("/{tournamentID}", tournamentHandler.RenameTournamentHandler)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteTournamentHandler)

			r.Post("/{tournamentID}/players", playerHandler.RegisterPlayerHandler)
			r.Post("/{tournamentID}/matches", matchHandler.ReportMatchHandler)
			r.Delete("/{tournamentID}/matches", matchHandler.ClearMatchesHandler)
			r.Post("/{tournamentID}/bye", matchHandler.AwardByeHandler)
			r.Post("/{tournamentID}/export", standingsHandler.ExportFinalRankingsHandler)
		})
	})

	// Служебный сброс всех игроков (тестовые стенды)
	router.Group(func(r chi.Router) {
		organizerOnly(r)
		r.Delete("/players", playerHandler.DeleteAllPlayersHandler)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
