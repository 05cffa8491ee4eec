package adaptor

import (
	"encoding/json"
	"net/http"

	"dorm-booking/internal/dto/request"
	"dorm-booking/internal/dto/response"
	"dorm-booking/internal/usecase"
	"dorm-booking/pkg/utils"

	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	catalog usecase.CatalogService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, catalog usecase.CatalogService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		catalog: catalog,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// ReservationForm handles GET /api/rooms/{id}/reservation-form (auth)
func (h *ReservationHandler) ReservationForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	roomID, ok := roomIDParam(w, r)
	if !ok {
		return
	}

	form, err := h.catalog.ReservationForm(r.Context(), roomID)
	if err != nil {
		handleServiceError(h.log, w, err, "get reservation form")
		return
	}

	partition, err := h.service.ListAdmittedForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "list admitted reservations")
		return
	}
	form.Reservations = partitionToResponse(partition)

	utils.ResponseSuccess(w, "success", form)
}

// Submit handles POST /api/rooms/{id}/reservations (auth)
func (h *ReservationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	roomID, ok := roomIDParam(w, r)
	if !ok {
		return
	}

	var form request.ReservationForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		// an unknown room is reported before a malformed form
		if _, lookupErr := h.catalog.GetRoom(r.Context(), roomID); lookupErr != nil {
			handleServiceError(h.log, w, lookupErr, "submit reservation")
			return
		}
		h.log.Warn("Reservation form could not be decoded", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid reservation form", bodyFieldErrors(err))
		return
	}

	reservation, err := h.service.Submit(r.Context(), userID, roomID, &form)
	if err != nil {
		handleServiceError(h.log, w, err, "submit reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation confirmed", response.ReservationToResponse(reservation))
}

// MyReservations handles GET /api/user/reservations (auth)
func (h *ReservationHandler) MyReservations(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	partition, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "list user reservations")
		return
	}

	utils.ResponseSuccess(w, "success", partitionToResponse(partition))
}

// AdminCreate handles POST /api/admin/reservations
func (h *ReservationHandler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req request.AdminReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.service.AdminCreate(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "admin create reservation")
		return
	}

	utils.ResponseCreated(w, "success", response.ReservationToResponse(reservation))
}

// AdminList handles GET /api/admin/rooms/{id}/reservations
func (h *ReservationHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomIDParam(w, r)
	if !ok {
		return
	}

	reservations, err := h.service.AdminList(r.Context(), roomID)
	if err != nil {
		handleServiceError(h.log, w, err, "list room reservations")
		return
	}

	utils.ResponseSuccess(w, "success", response.ReservationsToResponse(reservations))
}

func partitionToResponse(p *usecase.ReservationPartition) response.UserReservationsResponse {
	return response.UserReservationsResponse{
		Open:   response.ReservationsToResponse(p.Open),
		Closed: response.ReservationsToResponse(p.Closed),
	}
}
