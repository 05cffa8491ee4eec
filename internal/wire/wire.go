package wire

import (
	"net/http"

	"dorm-booking/internal/adaptor"
	"dorm-booking/internal/data/repository"
	"dorm-booking/internal/usecase"
	"dorm-booking/pkg/middleware"
	"dorm-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the assembled router and the services behind it
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes. cache and publisher are optional.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	cache usecase.RoomCache,
	publisher usecase.ReservationPublisher,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, cache, publisher, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	auth := middleware.AuthSession(repo.Session, repo.User, logger)
	admin := middleware.Admin(logger)

	wireAuth(r, handler.Auth, auth)
	wireRoom(r, handler.Room, auth, admin)
	wireReservation(r, handler.Reservation, auth, admin)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
