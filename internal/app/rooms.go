package app

import (
	"context"
	"time"

	"hotel_listings/internal/domain"
)

type RoomService struct {
	repo   domain.RoomRepository
	images domain.ImageStore
	cache  readCache
}

func NewRoomService(r domain.RoomRepository, img domain.ImageStore, c domain.Cache, ttl time.Duration) *RoomService {
	return &RoomService{repo: r, images: img, cache: newReadCache(c, ttl)}
}

func (s *RoomService) List(ctx context.Context, hotelSlug string) ([]domain.Room, error) {
	key := roomsKey(hotelSlug)
	var out []domain.Room
	if s.cache.get(ctx, key, &out) {
		return out, nil
	}
	out, err := s.repo.ListRooms(ctx, hotelSlug)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, key, out)
	return out, nil
}

// Create inserts rm under hotelSlug. The hotel is not required to exist.
func (s *RoomService) Create(ctx context.Context, hotelSlug string, rm domain.Room, uploaded []string) (domain.Room, error) {
	rm.HotelSlug = hotelSlug
	rm.RoomImage = uploaded
	if rm.RoomImage == nil {
		rm.RoomImage = []string{}
	}
	out, err := s.repo.InsertRoom(ctx, rm)
	if err != nil {
		return domain.Room{}, err
	}
	s.cache.del(ctx, roomsKey(hotelSlug))
	return out, nil
}

// Update replaces the room's attributes. A new upload becomes the only image;
// without one the current images are kept.
func (s *RoomService) Update(ctx context.Context, hotelSlug, roomSlug string, rm domain.Room, uploaded string) (domain.Room, error) {
	rm.HotelSlug, rm.RoomSlug = hotelSlug, roomSlug
	if uploaded != "" {
		rm.RoomImage = []string{uploaded}
	} else {
		cur, err := s.repo.RoomImages(ctx, hotelSlug, roomSlug)
		if err != nil {
			return domain.Room{}, err
		}
		rm.RoomImage = cur
	}

	out, err := s.repo.UpdateRoom(ctx, rm)
	if err != nil {
		return domain.Room{}, err
	}
	s.cache.del(ctx, roomsKey(hotelSlug))
	return out, nil
}

func (s *RoomService) Delete(ctx context.Context, hotelSlug, roomSlug string) (domain.Room, error) {
	out, err := s.repo.DeleteRoom(ctx, hotelSlug, roomSlug)
	if err != nil {
		return domain.Room{}, err
	}
	s.cache.del(ctx, roomsKey(hotelSlug))
	RemoveImages(ctx, s.images, out.RoomImage)
	return out, nil
}
