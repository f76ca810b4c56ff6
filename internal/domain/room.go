package domain

// Room is one row of room_information, keyed by (HotelSlug, RoomSlug).
// HotelSlug refers to Hotel.Slug but nothing enforces it.
type Room struct {
	HotelSlug    string   `json:"hotel_slug"`
	RoomSlug     string   `json:"room_slug"`
	RoomImage    []string `json:"room_image"`
	RoomTitle    *string  `json:"room_title"`
	BedroomCount *int64   `json:"bedroom_count"`
}
