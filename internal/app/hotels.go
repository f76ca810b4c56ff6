package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel_listings/internal/domain"
)

type HotelService struct {
	repo   domain.HotelRepository
	images domain.ImageStore
	cache  readCache
}

// NewHotelService wires the hotel use cases. c may be nil to disable caching.
func NewHotelService(r domain.HotelRepository, img domain.ImageStore, c domain.Cache, ttl time.Duration) *HotelService {
	return &HotelService{repo: r, images: img, cache: newReadCache(c, ttl)}
}

func (s *HotelService) List(ctx context.Context) ([]domain.Hotel, error) {
	var out []domain.Hotel
	if s.cache.get(ctx, hotelsKey, &out) {
		return out, nil
	}
	out, err := s.repo.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, hotelsKey, out)
	return out, nil
}

func (s *HotelService) Get(ctx context.Context, slug string) (domain.Hotel, error) {
	key := hotelKey(slug)
	var h domain.Hotel
	if s.cache.get(ctx, key, &h) {
		return h, nil
	}
	h, err := s.repo.GetHotel(ctx, slug)
	if err != nil {
		return domain.Hotel{}, err
	}
	s.cache.set(ctx, key, h)
	return h, nil
}

// Create inserts h. Without uploads the images stored under the same slug are
// reused, or [] when there is no such row.
func (s *HotelService) Create(ctx context.Context, h domain.Hotel, uploaded []string) (domain.Hotel, error) {
	if len(uploaded) > 0 {
		h.Images = uploaded
	} else {
		cur, err := s.repo.HotelImages(ctx, h.Slug)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.Images = []string{}
		case err != nil:
			return domain.Hotel{}, fmt.Errorf("read current images: %w", err)
		default:
			h.Images = cur
		}
	}

	out, err := s.repo.InsertHotel(ctx, h)
	if err != nil {
		return domain.Hotel{}, err
	}
	s.cache.del(ctx, hotelsKey, hotelKey(out.Slug))
	return out, nil
}

// Update replaces every attribute of the hotel at slug. Without uploads the
// current images are kept; a missing row is domain.ErrNotFound.
func (s *HotelService) Update(ctx context.Context, slug string, h domain.Hotel, uploaded []string) (domain.Hotel, error) {
	h.Slug = slug
	if len(uploaded) > 0 {
		h.Images = uploaded
	} else {
		cur, err := s.repo.HotelImages(ctx, slug)
		if err != nil {
			return domain.Hotel{}, err
		}
		h.Images = cur
	}

	out, err := s.repo.UpdateHotel(ctx, h)
	if err != nil {
		return domain.Hotel{}, err
	}
	s.cache.del(ctx, hotelsKey, hotelKey(slug))
	return out, nil
}

// Delete removes the hotel, then its image files on a best-effort basis.
// Rooms under the hotel are left alone.
func (s *HotelService) Delete(ctx context.Context, slug string) (domain.Hotel, error) {
	out, err := s.repo.DeleteHotel(ctx, slug)
	if err != nil {
		return domain.Hotel{}, err
	}
	s.cache.del(ctx, hotelsKey, hotelKey(slug))
	RemoveImages(ctx, s.images, out.Images)
	return out, nil
}
