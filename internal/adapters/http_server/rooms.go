package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	out, err := h.Rooms.List(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err, "", "Error retrieving rooms", nil)
		return
	}
	h.Out.OK(w, r, http.StatusOK, "Rooms retrieved successfully", out)
}

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	f, uploaded, err := readForm(r)
	if err != nil {
		h.badBody(w, r, err, "Error creating room", uploaded)
		return
	}
	in, err := f.room()
	if err != nil {
		h.badBody(w, r, err, "Error creating room", uploaded)
		return
	}
	out, err := h.Rooms.Create(r.Context(), chi.URLParam(r, "slug"), in, uploaded)
	if err != nil {
		h.fail(w, r, err, "Room not found", "Error creating room", uploaded)
		return
	}
	h.Out.OK(w, r, http.StatusCreated, "Room created successfully", out)
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	f, uploaded, err := readForm(r)
	if err != nil {
		h.badBody(w, r, err, "Error updating room", uploaded)
		return
	}
	in, err := f.room()
	if err != nil {
		h.badBody(w, r, err, "Error updating room", uploaded)
		return
	}
	var file string
	if len(uploaded) > 0 {
		file = uploaded[0]
	}
	out, err := h.Rooms.Update(r.Context(), chi.URLParam(r, "slug"), chi.URLParam(r, "room_slug"), in, file)
	if err != nil {
		h.fail(w, r, err, "Room not found", "Error updating room", uploaded)
		return
	}
	h.Out.OK(w, r, http.StatusOK, "Room updated successfully", out)
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Rooms.Delete(r.Context(), chi.URLParam(r, "slug"), chi.URLParam(r, "room_slug")); err != nil {
		h.fail(w, r, err, "Room not found", "Error deleting room", nil)
		return
	}
	h.Out.OK(w, r, http.StatusOK, "Room deleted successfully", nil)
}
