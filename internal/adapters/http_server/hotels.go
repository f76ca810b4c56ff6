package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	out, err := h.Hotels.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "", "Error retrieving hotels", nil)
		return
	}
	h.Out.OK(w, r, http.StatusOK, "Hotels retrieved successfully", out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	out, err := h.Hotels.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err, "Hotel not found", "Error retrieving hotel", nil)
		return
	}
	h.Out.OK(w, r, http.StatusOK, "Hotel retrieved successfully", out)
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	f, uploaded, err := readForm(r)
	if err != nil {
		h.badBody(w, r, err, "Error creating hotel", uploaded)
		return
	}
	in, err := f.hotel()
	if err != nil {
		h.badBody(w, r, err, "Error creating hotel", uploaded)
		return
	}
	out, err := h.Hotels.Create(r.Context(), in, uploaded)
	if err != nil {
		h.fail(w, r, err, "Hotel not found", "Error creating hotel", uploaded)
		return
	}
	h.Out.OK(w, r, http.StatusCreated, "Hotel created successfully", out)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	f, uploaded, err := readForm(r)
	if err != nil {
		h.badBody(w, r, err, "Error updating hotel", uploaded)
		return
	}
	in, err := f.hotel()
	if err != nil {
		h.badBody(w, r, err, "Error updating hotel", uploaded)
		return
	}
	out, err := h.Hotels.Update(r.Context(), chi.URLParam(r, "slug"), in, uploaded)
	if err != nil {
		h.fail(w, r, err, "Hotel not found", "Error updating hotel", uploaded)
		return
	}
	h.Out.OK(w, r, http.StatusOK, "Hotel updated successfully", out)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Hotels.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		h.fail(w, r, err, "Hotel not found", "Error deleting hotel", nil)
		return
	}
	h.Out.OK(w, r, http.StatusOK, "Hotel deleted successfully", nil)
}
