package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"hotel_listings/internal/domain"
)

// form is the attribute source of a write request: the values of a multipart
// body, or the members of a JSON object.
type form struct {
	values url.Values
	doc    map[string]json.RawMessage
}

var errBadBody = errors.New("malformed request body")

// readForm returns the request attributes and the paths of files stored by
// the Uploads middleware.
func readForm(r *http.Request) (form, []string, error) {
	if up, ok := uploadFrom(r.Context()); ok {
		return form{values: up.values}, up.paths, nil
	}

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "application/json" || r.Body == nil {
		return form{}, nil, nil
	}
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return form{}, nil, fmt.Errorf("%w: %v", errBadBody, err)
	}
	return form{doc: doc}, nil, nil
}

// lookup returns the raw value of name. JSON strings are unquoted; a JSON
// null is absent.
func (f form) lookup(name string) (string, bool) {
	if f.values != nil {
		vs, ok := f.values[name]
		if !ok || len(vs) == 0 {
			return "", false
		}
		return vs[0], true
	}
	v, ok := f.doc[name]
	if !ok || string(v) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, true
	}
	return string(v), true
}

func (f form) String(name string) *string {
	s, ok := f.lookup(name)
	if !ok {
		return nil
	}
	return &s
}

func (f form) Key(name string) string {
	if s := f.String(name); s != nil {
		return *s
	}
	return ""
}

func (f form) Int(name string) (*int64, error) {
	s, ok := f.lookup(name)
	if !ok {
		return nil, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer for %s: %q", name, s)
	}
	return &n, nil
}

func (f form) Float(name string) (*float64, error) {
	s, ok := f.lookup(name)
	if !ok {
		return nil, nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	// JSON has no Inf or NaN
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return nil, fmt.Errorf("invalid number for %s: %q", name, s)
	}
	return &n, nil
}

// Opaque keeps JSON members verbatim. Form values that hold JSON are kept as
// is, anything else becomes a JSON string.
func (f form) Opaque(name string) json.RawMessage {
	if f.values == nil {
		if v, ok := f.doc[name]; ok && string(v) != "null" {
			return v
		}
		return nil
	}
	s, ok := f.lookup(name)
	if !ok {
		return nil
	}
	return domain.Opaque(s)
}

func (f form) hotel() (domain.Hotel, error) {
	h := domain.Hotel{
		Slug:            f.Key("slug"),
		Title:           f.String("title"),
		Description:     f.String("description"),
		Amenities:       f.Opaque("amenities"),
		HostInformation: f.Opaque("host_information"),
		Address:         f.Opaque("address"),
	}
	var err error
	if h.GuestCount, err = f.Int("guest_count"); err != nil {
		return h, err
	}
	if h.BedroomCount, err = f.Int("bedroom_count"); err != nil {
		return h, err
	}
	if h.BathroomCount, err = f.Int("bathroom_count"); err != nil {
		return h, err
	}
	if h.Latitude, err = f.Float("latitude"); err != nil {
		return h, err
	}
	if h.Longitude, err = f.Float("longitude"); err != nil {
		return h, err
	}
	return h, nil
}

func (f form) room() (domain.Room, error) {
	rm := domain.Room{
		RoomSlug:  f.Key("room_slug"),
		RoomTitle: f.String("room_title"),
	}
	var err error
	rm.BedroomCount, err = f.Int("bedroom_count")
	return rm, err
}
