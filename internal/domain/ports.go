package domain

import (
	"context"
	"time"
)

type HotelRepository interface {
	// Write paths
	InsertHotel(ctx context.Context, h Hotel) (Hotel, error)
	UpdateHotel(ctx context.Context, h Hotel) (Hotel, error)
	DeleteHotel(ctx context.Context, slug string) (Hotel, error)

	// Read paths
	ListHotels(ctx context.Context) ([]Hotel, error)
	GetHotel(ctx context.Context, slug string) (Hotel, error)
	HotelImages(ctx context.Context, slug string) ([]string, error)
}

type RoomRepository interface {
	// Write paths
	InsertRoom(ctx context.Context, rm Room) (Room, error)
	UpdateRoom(ctx context.Context, rm Room) (Room, error)
	DeleteRoom(ctx context.Context, hotelSlug, roomSlug string) (Room, error)

	// Read paths
	ListRooms(ctx context.Context, hotelSlug string) ([]Room, error)
	RoomImages(ctx context.Context, hotelSlug, roomSlug string) ([]string, error)
}

// ImageIndex reports every image path referenced by a stored row.
type ImageIndex interface {
	ReferencedImages(ctx context.Context) ([]string, error)
}

// ImageStore is the removal side of the upload directory.
type ImageStore interface {
	Remove(ctx context.Context, path string) error
}

// ImageFiles lists what is physically in the upload directory.
type ImageFiles interface {
	ImageStore
	Files() ([]StoredFile, error)
}

// StoredFile describes one file in the upload directory.
type StoredFile struct {
	Path    string // stored path, e.g. /uploads/1700000000000-a.jpg
	Size    int64
	ModTime time.Time
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
