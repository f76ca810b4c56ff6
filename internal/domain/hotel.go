package domain

import (
	"encoding/json"
	"strings"
)

// Hotel is one row of hotel_details. Every attribute but Slug and Images is
// nullable; a write stores exactly what it was given.
type Hotel struct {
	Slug            string          `json:"slug"`
	Images          []string        `json:"images"`
	Title           *string         `json:"title"`
	Description     *string         `json:"description"`
	GuestCount      *int64          `json:"guest_count"`
	BedroomCount    *int64          `json:"bedroom_count"`
	BathroomCount   *int64          `json:"bathroom_count"`
	Amenities       json.RawMessage `json:"amenities"`
	HostInformation json.RawMessage `json:"host_information"`
	Address         json.RawMessage `json:"address"`
	Latitude        *float64        `json:"latitude"`
	Longitude       *float64        `json:"longitude"`
}

// Opaque turns a client-supplied value into a JSON document. Valid JSON is kept
// as-is, anything else is stored as a JSON string.
func Opaque(s string) json.RawMessage {
	t := strings.TrimSpace(s)
	if t != "" && json.Valid([]byte(t)) {
		return json.RawMessage(t)
	}
	b, _ := json.Marshal(s)
	return b
}
