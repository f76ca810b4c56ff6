package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"hotel_listings/internal/domain"
)

func valKey(s string) any {
	if s == "" {
		return nil // let NOT NULL reject it
	}
	return s
}
func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valJSON(b json.RawMessage) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
func valPaths(p []string) string {
	if p == nil {
		p = []string{}
	}
	b, _ := json.Marshal(p)
	return string(b)
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
func f64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
func rawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}
func decodePaths(b []byte) ([]string, error) {
	out := []string{}
	if len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode image paths: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

type scanner interface{ Scan(dest ...any) error }

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ---- hotels ----

func scanHotel(s scanner) (domain.Hotel, error) {
	var (
		h                  domain.Hotel
		images             []byte
		title, desc        sql.NullString
		guests, beds, bath sql.NullInt64
		amen, host, addr   []byte
		lat, lon           sql.NullFloat64
	)
	if err := s.Scan(
		&h.Slug,
		&images,
		&title, &desc,
		&guests, &beds, &bath,
		&amen, &host, &addr,
		&lat, &lon,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, err
	}
	paths, err := decodePaths(images)
	if err != nil {
		return domain.Hotel{}, err
	}
	h.Images = paths
	h.Title = strPtr(title)
	h.Description = strPtr(desc)
	h.GuestCount = int64Ptr(guests)
	h.BedroomCount = int64Ptr(beds)
	h.BathroomCount = int64Ptr(bath)
	h.Amenities = rawJSON(amen)
	h.HostInformation = rawJSON(host)
	h.Address = rawJSON(addr)
	h.Latitude = f64Ptr(lat)
	h.Longitude = f64Ptr(lon)
	return h, nil
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetHotel(ctx context.Context, slug string) (domain.Hotel, error) {
	return scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, slug))
}

func (r *Repo) HotelImages(ctx context.Context, slug string) ([]string, error) {
	var b []byte
	if err := r.db.QueryRowContext(ctx, hotelImagesSQL, slug).Scan(&b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return decodePaths(b)
}

func (r *Repo) InsertHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	var out domain.Hotel
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertHotelSQL,
			valKey(h.Slug),
			valPaths(h.Images),
			valStr(h.Title),
			valStr(h.Description),
			valInt64(h.GuestCount),
			valInt64(h.BedroomCount),
			valInt64(h.BathroomCount),
			valJSON(h.Amenities),
			valJSON(h.HostInformation),
			valJSON(h.Address),
			valF64(h.Latitude),
			valF64(h.Longitude),
		); err != nil {
			return err
		}
		var err error
		out, err = scanHotel(tx.QueryRowContext(ctx, getHotelSQL, h.Slug))
		return err
	})
	return out, err
}

func (r *Repo) UpdateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	var out domain.Hotel
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, updateHotelSQL,
			valPaths(h.Images),
			valStr(h.Title),
			valStr(h.Description),
			valInt64(h.GuestCount),
			valInt64(h.BedroomCount),
			valInt64(h.BathroomCount),
			valJSON(h.Amenities),
			valJSON(h.HostInformation),
			valJSON(h.Address),
			valF64(h.Latitude),
			valF64(h.Longitude),
			h.Slug,
		)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return domain.ErrNotFound
		}
		out, err = scanHotel(tx.QueryRowContext(ctx, getHotelSQL, h.Slug))
		return err
	})
	return out, err
}

// DeleteHotel removes the row and returns it as it was.
func (r *Repo) DeleteHotel(ctx context.Context, slug string) (domain.Hotel, error) {
	var out domain.Hotel
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if out, err = scanHotel(tx.QueryRowContext(ctx, getHotelSQL, slug)); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, deleteHotelSQL, slug)
		return err
	})
	return out, err
}

// ---- rooms ----

func scanRoom(s scanner) (domain.Room, error) {
	var (
		rm     domain.Room
		images []byte
		title  sql.NullString
		beds   sql.NullInt64
	)
	if err := s.Scan(&rm.HotelSlug, &rm.RoomSlug, &images, &title, &beds); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Room{}, domain.ErrNotFound
		}
		return domain.Room{}, err
	}
	paths, err := decodePaths(images)
	if err != nil {
		return domain.Room{}, err
	}
	rm.RoomImage = paths
	rm.RoomTitle = strPtr(title)
	rm.BedroomCount = int64Ptr(beds)
	return rm, nil
}

func (r *Repo) ListRooms(ctx context.Context, hotelSlug string) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, listRoomsSQL, hotelSlug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) RoomImages(ctx context.Context, hotelSlug, roomSlug string) ([]string, error) {
	var b []byte
	if err := r.db.QueryRowContext(ctx, roomImagesSQL, hotelSlug, roomSlug).Scan(&b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return decodePaths(b)
}

func (r *Repo) InsertRoom(ctx context.Context, rm domain.Room) (domain.Room, error) {
	var out domain.Room
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertRoomSQL,
			valKey(rm.HotelSlug),
			valKey(rm.RoomSlug),
			valPaths(rm.RoomImage),
			valStr(rm.RoomTitle),
			valInt64(rm.BedroomCount),
		); err != nil {
			return err
		}
		var err error
		out, err = scanRoom(tx.QueryRowContext(ctx, getRoomSQL, rm.HotelSlug, rm.RoomSlug))
		return err
	})
	return out, err
}

func (r *Repo) UpdateRoom(ctx context.Context, rm domain.Room) (domain.Room, error) {
	var out domain.Room
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, updateRoomSQL,
			valPaths(rm.RoomImage),
			valStr(rm.RoomTitle),
			valInt64(rm.BedroomCount),
			rm.HotelSlug,
			rm.RoomSlug,
		)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return domain.ErrNotFound
		}
		out, err = scanRoom(tx.QueryRowContext(ctx, getRoomSQL, rm.HotelSlug, rm.RoomSlug))
		return err
	})
	return out, err
}

func (r *Repo) DeleteRoom(ctx context.Context, hotelSlug, roomSlug string) (domain.Room, error) {
	var out domain.Room
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if out, err = scanRoom(tx.QueryRowContext(ctx, getRoomSQL, hotelSlug, roomSlug)); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, deleteRoomSQL, hotelSlug, roomSlug)
		return err
	})
	return out, err
}

// ---- image index ----

// ReferencedImages returns every path listed by any hotel or room row.
func (r *Repo) ReferencedImages(ctx context.Context) ([]string, error) {
	var out []string
	for _, q := range []string{allHotelImagesSQL, allRoomImagesSQL} {
		rows, err := r.db.QueryContext(ctx, q)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var b []byte
			if err := rows.Scan(&b); err != nil {
				rows.Close()
				return nil, err
			}
			paths, err := decodePaths(b)
			if err != nil {
				rows.Close()
				return nil, err
			}
			out = append(out, paths...)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
