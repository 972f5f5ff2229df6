package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/devakhil7/plyr-sub003/handlers"
	"github.com/devakhil7/plyr-sub003/middleware"
	"github.com/devakhil7/plyr-sub003/models"
)

// SetupRoutes wires every handler into the router. Read endpoints are public;
// anything that mutates state requires a valid token, and owner/organizer
// endpoints additionally require the matching role.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Auth,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	venueHandler *handlers.VenueHandler,
	bookingHandler *handlers.BookingHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	paymentHandler *handlers.PaymentHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/users", func(r chi.Router) {
		r.Get("/{userID}", userHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Put("/me/logo", userHandler.UploadLogo)
		})
	})

	router.Route("/venues", func(r chi.Router) {
		r.Get("/", venueHandler.List)
		r.Get("/{venueID}", venueHandler.GetByID)
		r.Get("/{venueID}/price-range", venueHandler.PriceRange)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.Authorize(models.RoleVenueOwner, models.RoleAdmin))

			r.Post("/", venueHandler.Create)
			r.Put("/{venueID}", venueHandler.Update)
			r.Put("/{venueID}/pricing-rules", venueHandler.ReplaceRules)
			r.Put("/{venueID}/photo", venueHandler.UploadPhoto)
		})
	})

	router.Route("/bookings", func(r chi.Router) {
		r.Post("/quote", bookingHandler.Quote)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Post("/", bookingHandler.Create)
			r.Get("/", bookingHandler.List)
			r.Get("/{bookingID}", bookingHandler.GetByID)
			r.Get("/{bookingID}/ws", webSocketHandler.SubscribeBooking)
			r.Get("/{bookingID}/payments", paymentHandler.ListByBooking)
			r.Post("/{bookingID}/payment-order", paymentHandler.RecordBookingOrder)
			r.Post("/{bookingID}/payment-callback", paymentHandler.ConfirmBookingPayment)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authorize(models.RoleVenueOwner, models.RoleAdmin))
				r.Post("/{bookingID}/approve", bookingHandler.Approve)
				r.Post("/{bookingID}/reject", bookingHandler.Reject)
			})
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.GetByID)
		r.Get("/{tournamentID}/ws", webSocketHandler.SubscribeTournament)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Post("/", tournamentHandler.Create)
			r.Patch("/{tournamentID}/status", tournamentHandler.UpdateStatus)
			r.Post("/{tournamentID}/teams", tournamentHandler.RegisterTeam)
			r.Post("/{tournamentID}/schedule", tournamentHandler.GenerateSchedule)
			r.Put("/{tournamentID}/schedule/{entryID}/score", tournamentHandler.UpdateEntryScore)
			r.Put("/{tournamentID}/logo", tournamentHandler.UploadLogo)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/{teamID}/payment-callback", paymentHandler.ConfirmTeamFeePayment)
			r.Put("/{teamID}/logo", tournamentHandler.UploadTeamLogo)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.List)
		r.Get("/{matchID}", matchHandler.GetByID)
		r.Get("/{matchID}/ws", webSocketHandler.SubscribeMatch)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/", matchHandler.Create)
			r.Put("/{matchID}/score", matchHandler.UpdateScore)
		})
	})
}
