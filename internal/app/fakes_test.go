package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"hotel_listings/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu     sync.Mutex
	hotels map[string]domain.Hotel
	rooms  map[[2]string]domain.Room
	calls  map[string]int
	err    error // returned by every call when set
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		hotels: map[string]domain.Hotel{},
		rooms:  map[[2]string]domain.Room{},
		calls:  map[string]int{},
	}
}

func (f *fakeRepo) hit(name string) error {
	f.calls[name]++
	return f.err
}

func (f *fakeRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("ListHotels"); err != nil {
		return nil, err
	}
	out := []domain.Hotel{}
	for _, h := range f.hotels {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeRepo) GetHotel(ctx context.Context, slug string) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("GetHotel"); err != nil {
		return domain.Hotel{}, err
	}
	h, ok := f.hotels[slug]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (f *fakeRepo) HotelImages(ctx context.Context, slug string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("HotelImages"); err != nil {
		return nil, err
	}
	h, ok := f.hotels[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return h.Images, nil
}

func (f *fakeRepo) InsertHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("InsertHotel"); err != nil {
		return domain.Hotel{}, err
	}
	if _, dup := f.hotels[h.Slug]; dup || h.Slug == "" {
		return domain.Hotel{}, errors.New("constraint violation")
	}
	f.hotels[h.Slug] = h
	return h, nil
}

func (f *fakeRepo) UpdateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("UpdateHotel"); err != nil {
		return domain.Hotel{}, err
	}
	if _, ok := f.hotels[h.Slug]; !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	f.hotels[h.Slug] = h
	return h, nil
}

func (f *fakeRepo) DeleteHotel(ctx context.Context, slug string) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("DeleteHotel"); err != nil {
		return domain.Hotel{}, err
	}
	h, ok := f.hotels[slug]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	delete(f.hotels, slug)
	return h, nil
}

func (f *fakeRepo) ListRooms(ctx context.Context, hotelSlug string) ([]domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("ListRooms"); err != nil {
		return nil, err
	}
	out := []domain.Room{}
	for k, rm := range f.rooms {
		if k[0] == hotelSlug {
			out = append(out, rm)
		}
	}
	return out, nil
}

func (f *fakeRepo) RoomImages(ctx context.Context, hotelSlug, roomSlug string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("RoomImages"); err != nil {
		return nil, err
	}
	rm, ok := f.rooms[[2]string{hotelSlug, roomSlug}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rm.RoomImage, nil
}

func (f *fakeRepo) InsertRoom(ctx context.Context, rm domain.Room) (domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("InsertRoom"); err != nil {
		return domain.Room{}, err
	}
	k := [2]string{rm.HotelSlug, rm.RoomSlug}
	if _, dup := f.rooms[k]; dup {
		return domain.Room{}, errors.New("constraint violation")
	}
	f.rooms[k] = rm
	return rm, nil
}

func (f *fakeRepo) UpdateRoom(ctx context.Context, rm domain.Room) (domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("UpdateRoom"); err != nil {
		return domain.Room{}, err
	}
	k := [2]string{rm.HotelSlug, rm.RoomSlug}
	if _, ok := f.rooms[k]; !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	f.rooms[k] = rm
	return rm, nil
}

func (f *fakeRepo) DeleteRoom(ctx context.Context, hotelSlug, roomSlug string) (domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("DeleteRoom"); err != nil {
		return domain.Room{}, err
	}
	k := [2]string{hotelSlug, roomSlug}
	rm, ok := f.rooms[k]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	delete(f.rooms, k)
	return rm, nil
}

func (f *fakeRepo) ReferencedImages(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("ReferencedImages"); err != nil {
		return nil, err
	}
	var out []string
	for _, h := range f.hotels {
		out = append(out, h.Images...)
	}
	for _, rm := range f.rooms {
		out = append(out, rm.RoomImage...)
	}
	return out, nil
}

type fakeImages struct {
	mu      sync.Mutex
	files   []domain.StoredFile
	removed []string
	failOn  map[string]bool
}

func (f *fakeImages) Remove(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[path] {
		return errors.New("no such file")
	}
	f.removed = append(f.removed, path)
	return nil
}

func (f *fakeImages) Files() ([]domain.StoredFile, error) { return f.files, nil }

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	fail  bool
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return false, errors.New("cache down")
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(v, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("cache down")
	}
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("cache down")
	}
	delete(c.store, key)
	return nil
}

func ptr[T any](v T) *T { return &v }
