package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_listings/internal/app"
	"hotel_listings/internal/domain"
	"hotel_listings/internal/storage/images"
)

type Handlers struct {
	Hotels *app.HotelService
	Rooms  *app.RoomService
	Images *images.Store
	Out    Responder
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	})
	s.mux.Handle(h.Images.Prefix()+"/*", h.Images.Handler())

	hotelFiles := Uploads(h.Images, UploadRule{Field: "images", MaxFiles: 5}, h.Out)
	roomFiles := Uploads(h.Images, UploadRule{Field: "room_image"}, h.Out)
	roomFile := Uploads(h.Images, UploadRule{Field: "room_image", MaxFiles: 1}, h.Out)

	s.mux.Route("/hotels", func(r chi.Router) {
		r.Get("/", h.listHotels)
		r.With(hotelFiles).Post("/", h.createHotel)
		r.Get("/{slug}", h.getHotel)
		r.With(hotelFiles).Put("/{slug}", h.updateHotel)
		r.Delete("/{slug}", h.deleteHotel)

		r.Get("/{slug}/rooms", h.listRooms)
		r.With(roomFiles).Post("/{slug}/rooms", h.createRoom)
		r.With(roomFile).Put("/{slug}/rooms/{room_slug}", h.updateRoom)
		r.Delete("/{slug}/rooms/{room_slug}", h.deleteRoom)
	})
}

// fail maps a service error to 404 or 500. Files stored for the failed
// request are removed first.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error, notFound, failed string, uploaded []string) {
	app.RemoveImages(r.Context(), h.Images, uploaded)
	if errors.Is(err, domain.ErrNotFound) {
		h.Out.NotFound(w, r, notFound)
		return
	}
	log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg(failed)
	h.Out.Fail(w, r, http.StatusInternalServerError, failed, err)
}

// badBody answers a write whose attributes could not be read. Unreadable
// JSON is the client's fault; an unparsable number is reported like any
// other failed write.
func (h *Handlers) badBody(w http.ResponseWriter, r *http.Request, err error, failed string, uploaded []string) {
	app.RemoveImages(r.Context(), h.Images, uploaded)
	if errors.Is(err, errBadBody) {
		h.Out.Fail(w, r, http.StatusBadRequest, "Malformed request body", err)
		return
	}
	log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg(failed)
	h.Out.Fail(w, r, http.StatusInternalServerError, failed, err)
}
