package wire

import (
	"net/http"

	"dorm-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	auth, admin func(http.Handler) http.Handler,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/api/rooms/{id}/reservation-form", reservationHandler.ReservationForm)
		r.Post("/api/rooms/{id}/reservations", reservationHandler.Submit)

		// live open/closed view
		r.Get("/api/user/reservations", reservationHandler.MyReservations)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(admin)

		r.Get("/api/admin/rooms/{id}/reservations", reservationHandler.AdminList)
		r.Post("/api/admin/reservations", reservationHandler.AdminCreate)
	})
}
