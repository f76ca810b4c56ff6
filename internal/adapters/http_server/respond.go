package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	ModeEnvelope = "envelope"
	ModeRaw      = "raw"

	contentTypeJSON = "application/json; charset=utf-8"
)

// Responder renders every outcome of a handler in one of two shapes:
//
//	envelope: {"status":N,"message":"...","data":...}
//	raw:      the data itself, {"message":"..."} on 404, {"error":"..."} otherwise
type Responder struct{ raw bool }

// NewResponder returns the envelope responder unless mode is "raw".
func NewResponder(mode string) Responder { return Responder{raw: mode == ModeRaw} }

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type errorData struct {
	Error string `json:"error"`
}

// OK writes a success. A nil data is an empty body in raw mode.
func (rs Responder) OK(w http.ResponseWriter, r *http.Request, status int, msg string, data any) {
	if rs.raw {
		if data == nil {
			w.WriteHeader(status)
			return
		}
		rs.write(w, r, status, data)
		return
	}
	rs.write(w, r, status, envelope{Status: status, Message: msg, Data: data})
}

func (rs Responder) NotFound(w http.ResponseWriter, r *http.Request, msg string) {
	if rs.raw {
		rs.write(w, r, http.StatusNotFound, map[string]string{"message": msg})
		return
	}
	rs.write(w, r, http.StatusNotFound, envelope{Status: http.StatusNotFound, Message: msg})
}

// Fail writes status with err exposed to the client.
func (rs Responder) Fail(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	rs.write(w, r, status, rs.failure(status, msg, err))
}

func (rs Responder) failure(status int, msg string, err error) any {
	detail := msg
	if err != nil {
		detail = err.Error()
	}
	if rs.raw {
		return errorData{Error: detail}
	}
	return envelope{Status: status, Message: msg, Data: errorData{Error: detail}}
}

// failBody is the encoded failure for writers that only take a string.
func (rs Responder) failBody(status int, msg string) string {
	_, body := calcETagAndBody(rs.failure(status, msg, nil))
	return string(body)
}

func (rs Responder) write(w http.ResponseWriter, r *http.Request, status int, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if r.Method == http.MethodGet && status == http.StatusOK && etag != "" {
		// If client already has this version, short-circuit.
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.Header().Set("ETag", etag) // include ETag on 304
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write response body failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}
