package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"dorm-booking/internal/usecase"
	"dorm-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Room        *RoomHandler
	Reservation *ReservationHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		Room:        NewRoomHandler(service.Catalog, config.Catalog.FeaturedRooms, log),
		Reservation: NewReservationHandler(service.Reservation, service.Catalog, log),
	}
}

// handleServiceError maps service errors onto the response envelope.
// Rejections carry their own user-facing message and field errors.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	message := err.Error()
	var fields any

	var rejected *usecase.AdmissionError
	if errors.As(err, &rejected) {
		message = rejected.Message
		if errs := rejected.FieldErrors(); len(errs) > 0 {
			fields = errs
		}
	}

	switch {
	case errors.Is(err, usecase.ErrRoomNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, message)

	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrInvalidDateOrder),
		errors.Is(err, usecase.ErrCapacityExceeded),
		errors.Is(err, usecase.ErrInvalidDateRange):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, message, fields)

	case errors.Is(err, usecase.ErrRoomAlreadyTaken),
		errors.Is(err, usecase.ErrAlreadyExists):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, message, fields)

	case errors.Is(err, usecase.ErrUnauthenticated),
		errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - unauthenticated", zap.Error(err))
		utils.ResponseUnauthorized(w, message)

	case errors.Is(err, usecase.ErrInsufficientInventory):
		log.Warn(operation+" failed - not enough rooms", zap.Error(err))
		utils.ResponseUnavailable(w, "Not enough rooms in the catalog")

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// roomIDParam reads {id}. An unparseable id cannot name a room, so it is a 404.
func roomIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseNotFound(w, usecase.ErrRoomNotFound.Error())
		return uuid.Nil, false
	}
	return id, true
}

func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// bodyFieldErrors turns a JSON decode failure into field errors. A value of
// the wrong type is reported on its field, anything else on "body".
func bodyFieldErrors(err error) map[string]string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		switch typeErr.Type.Kind() {
		case reflect.Int, reflect.Int32, reflect.Int64:
			return map[string]string{typeErr.Field: "Enter a whole number"}
		default:
			return map[string]string{typeErr.Field: "Enter a valid " + typeErr.Type.String()}
		}
	}
	return map[string]string{"body": "Request body must be a JSON object"}
}
