package adaptor

import (
	"encoding/json"
	"mime"
	"net/http"

	"dorm-booking/internal/data/entity"
	"dorm-booking/internal/dto/request"
	"dorm-booking/internal/dto/response"
	"dorm-booking/internal/usecase"
	"dorm-booking/pkg/utils"

	"go.uber.org/zap"
)

type RoomHandler struct {
	service  usecase.CatalogService
	featured int
	log      *zap.Logger
}

func NewRoomHandler(service usecase.CatalogService, featured int, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service:  service,
		featured: featured,
		log:      log.With(zap.String("handler", "room")),
	}
}

// ListRooms handles GET /api/rooms (public)
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.ListAll(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list rooms")
		return
	}

	utils.ResponseSuccess(w, "success", response.RoomsToResponse(rooms))
}

// FeaturedRooms handles GET /api/rooms/featured?count= (public)
func (h *RoomHandler) FeaturedRooms(w http.ResponseWriter, r *http.Request) {
	count := utils.ParseInt(r.URL.Query().Get("count"), h.featured)

	rooms, err := h.service.SampleRandom(r.Context(), count)
	if err != nil {
		handleServiceError(h.log, w, err, "sample rooms")
		return
	}

	utils.ResponseSuccess(w, "success", response.RoomsToResponse(rooms))
}

// SearchRooms handles POST /api/rooms/search (public).
// Accepts the search form either as a JSON body or as form fields.
func (h *RoomHandler) SearchRooms(w http.ResponseWriter, r *http.Request) {
	var criteria request.SearchRoomsRequest

	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	} else {
		criteria = request.SearchRoomsRequest{
			Keyword:          r.FormValue("keyword"),
			ArrivalDeparture: r.FormValue("arrival_departure"),
			City:             r.FormValue("city"),
			RoomType:         r.FormValue("room_type"),
			MiniKitchenette:  r.FormValue("mini_kitchenette"),
			PrivateBathroom:  r.FormValue("private_bathroom"),
			Price:            r.FormValue("price"),
		}
	}

	rooms, err := h.service.Search(r.Context(), &criteria)
	if err != nil {
		handleServiceError(h.log, w, err, "search rooms")
		return
	}

	utils.ResponseSuccess(w, "success", response.RoomsToResponse(rooms))
}

// GetRoom handles GET /api/rooms/{id} (public)
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomIDParam(w, r)
	if !ok {
		return
	}

	room, err := h.service.GetRoom(r.Context(), roomID)
	if err != nil {
		handleServiceError(h.log, w, err, "get room")
		return
	}

	utils.ResponseSuccess(w, "success", response.RoomToResponse(room))
}

// Availability handles GET /api/rooms/{id}/availability?start=&end= (public)
func (h *RoomHandler) Availability(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomIDParam(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := request.AvailabilityRequest{
		Start: query.Get("start"),
		End:   query.Get("end"),
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	start, _ := entity.ParseDate(req.Start)
	end, _ := entity.ParseDate(req.End)

	available, err := h.service.IsAvailable(r.Context(), roomID, start, end)
	if err != nil {
		handleServiceError(h.log, w, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", response.AvailabilityResponse{
		RoomID:    roomID.String(),
		Start:     req.Start,
		End:       req.End,
		Available: available,
	})
}

// CreateRoom handles POST /api/admin/rooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	room, err := h.service.CreateRoom(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create room")
		return
	}

	utils.ResponseCreated(w, "success", response.RoomToResponse(room))
}

// DeleteRoom handles DELETE /api/admin/rooms/{id}
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(r.Context(), roomID); err != nil {
		handleServiceError(h.log, w, err, "delete room")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
