//go:build integration || !unit

package sqlstore_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hotel_listings/internal/domain"
	"hotel_listings/internal/shared"
	"hotel_listings/internal/storage/sqlstore"
)

func pstr(s string) *string     { return &s }
func pint(i int64) *int64       { return &i }
func pfloat(f float64) *float64 { return &f }

// startMySQL runs an isolated MySQL container and returns a migrated pool.
func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=listings",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	port, _ := strconv.Atoi(resource.GetPort("3306/tcp"))
	cfg := shared.DBConfig{
		Driver:   sqlstore.DriverMySQL,
		Host:     "127.0.0.1",
		Port:     port,
		User:     "root",
		Password: "root",
		Name:     "listings",
	}

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sqlstore.Open(context.Background(), cfg)
		return e
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := sqlstore.Migrate(context.Background(), db, sqlstore.DriverMySQL); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRepo_MySQL_HotelAndRooms(t *testing.T) {
	repo := sqlstore.New(startMySQL(t))
	ctx := context.Background()

	h := domain.Hotel{
		Slug:            "istanbul-loft",
		Images:          []string{"/uploads/1-a.jpg"},
		Title:           pstr("Loft"),
		Description:     pstr("Desc"),
		GuestCount:      pint(3),
		BedroomCount:    pint(1),
		BathroomCount:   pint(1),
		Amenities:       json.RawMessage(`["wifi"]`),
		HostInformation: domain.Opaque("Bob"),
		Address:         domain.Opaque("Somewhere 1"),
		Latitude:        pfloat(41.02),
		Longitude:       pfloat(29.01),
	}
	if _, err := repo.InsertHotel(ctx, h); err != nil {
		t.Fatalf("InsertHotel: %v", err)
	}

	got, err := repo.GetHotel(ctx, "istanbul-loft")
	if err != nil {
		t.Fatalf("GetHotel: %v", err)
	}
	if got.Title == nil || *got.Title != "Loft" || len(got.Images) != 1 || got.Images[0] != "/uploads/1-a.jpg" {
		t.Fatalf("unexpected hotel: %+v", got)
	}
	var addr string
	if err := json.Unmarshal(got.Address, &addr); err != nil || addr != "Somewhere 1" {
		t.Fatalf("unexpected address %s (%v)", got.Address, err)
	}

	// unchanged values must still match one row
	if _, err := repo.UpdateHotel(ctx, got); err != nil {
		t.Fatalf("UpdateHotel same values: %v", err)
	}
	if _, err := repo.UpdateHotel(ctx, domain.Hotel{Slug: "missing"}); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := repo.InsertRoom(ctx, domain.Room{HotelSlug: "istanbul-loft", RoomSlug: "r1", RoomTitle: pstr("Room")}); err != nil {
		t.Fatalf("InsertRoom: %v", err)
	}
	rooms, err := repo.ListRooms(ctx, "istanbul-loft")
	if err != nil || len(rooms) != 1 || len(rooms[0].RoomImage) != 0 {
		t.Fatalf("unexpected rooms: %+v (%v)", rooms, err)
	}

	if _, err := repo.DeleteHotel(ctx, "istanbul-loft"); err != nil {
		t.Fatalf("DeleteHotel: %v", err)
	}
	// no cascade: the room outlives its hotel
	if rooms, _ := repo.ListRooms(ctx, "istanbul-loft"); len(rooms) != 1 {
		t.Fatalf("expected room to survive hotel delete, got %d", len(rooms))
	}
}
