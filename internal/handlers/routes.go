package handlers

import (
	"pawnder-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Set groups the handlers served by the API
type Set struct {
	Auth      *AuthHandler
	Dogs      *DogHandler
	Photos    *PhotoHandler
	Feed      *FeedHandler
	Matches   *MatchHandler
	WebSocket *WebSocketHandler
}

// Mount registers the API and WebSocket routes on r
func Mount(r chi.Router, h Set, auth middleware.SessionAuthenticator) {
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/signup", h.Auth.Signup)
		r.Post("/auth/login", h.Auth.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(auth))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/me", h.Auth.Me)
			r.Put("/me/push-token", h.Auth.UpdatePushToken)

			r.Get("/dogs", h.Dogs.ListDogs)
			r.Post("/dogs", h.Dogs.CreateDog)
			r.Get("/dogs/current", h.Dogs.GetCurrentDog)
			r.Put("/dogs/current", h.Dogs.SetCurrentDog)
			r.Post("/dogs/photos/upload", h.Photos.UploadPhoto)
			r.Patch("/dogs/{dog_id}", h.Dogs.UpdateDog)
			r.Delete("/dogs/{dog_id}", h.Dogs.DeleteDog)

			r.Get("/feed", h.Feed.GetFeed)
			r.Post("/feed/refresh", h.Feed.RefreshFeed)

			r.Post("/swipes/right", h.Matches.SwipeRight)
			r.Post("/swipes/left", h.Matches.SwipeLeft)

			r.Get("/matches", h.Matches.ListMatches)
			r.Get("/matches/{match_id}/messages", h.Matches.ListMessages)
			r.Post("/matches/{match_id}/messages", h.Matches.SendMessage)
		})
	})

	r.Get("/ws", h.WebSocket.HandleWebSocket)
}
