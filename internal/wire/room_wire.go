package wire

import (
	"net/http"

	"dorm-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRoom(
	r chi.Router,
	roomHandler *adaptor.RoomHandler,
	auth, admin func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/rooms", roomHandler.ListRooms)
	r.Get("/api/rooms/featured", roomHandler.FeaturedRooms)
	r.Post("/api/rooms/search", roomHandler.SearchRooms)
	r.Get("/api/rooms/{id}", roomHandler.GetRoom)

	// Requires query params: ?start=2024-01-10&end=2024-01-15
	r.Get("/api/rooms/{id}/availability", roomHandler.Availability)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(admin)

		r.Post("/api/admin/rooms", roomHandler.CreateRoom)
		r.Delete("/api/admin/rooms/{id}", roomHandler.DeleteRoom) // also deletes the room's reservations
	})
}
