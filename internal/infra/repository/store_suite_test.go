package repository

import (
	"context"
	"testing"
	"time"

	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	"github.com/BruksfildServices01/appointment-booking/internal/timezone"
)

type documentStore interface {
	booking.DocumentStore
	booking.Pinger
}

// runStoreSuite checks behaviour every backend must share. Collections are
// suffixed so repeated runs against a live backend do not collide.
func runStoreSuite(t *testing.T, store documentStore, suffix string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	appointments := booking.CollectionAppointments + suffix
	services := booking.CollectionServices + suffix

	t.Run("ping", func(t *testing.T) {
		if err := store.Ping(ctx); err != nil {
			t.Fatalf("Ping error: %v", err)
		}
	})

	t.Run("appointment round trip", func(t *testing.T) {
		in := booking.AppointmentInput{
			Name:    "Jo",
			Email:   "jo@x.io",
			Phone:   "1234567890",
			Date:    time.Date(2026, 10, 20, 9, 30, 0, 0, time.UTC),
			Service: "svc-1",
		}

		id, err := store.Create(ctx, appointments, in.Fields())
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
		if id == "" {
			t.Fatal("expected store-assigned id")
		}

		recs, err := store.List(ctx, appointments)
		if err != nil {
			t.Fatalf("List error: %v", err)
		}

		var found *booking.Record
		for i := range recs {
			if recs[i].ID == id {
				found = &recs[i]
			}
		}
		if found == nil {
			t.Fatalf("created id %q not listed", id)
		}

		got, err := booking.AppointmentFromRecord(*found)
		if err != nil {
			t.Fatalf("decode error: %v", err)
		}
		want := in.WithID(id)
		if got.Name != want.Name || got.Email != want.Email || got.Phone != want.Phone ||
			got.Service != want.Service || !got.Date.Equal(want.Date) {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	})

	t.Run("parsed timestamp survives storage", func(t *testing.T) {
		date, err := timezone.ParseDate("2026-10-21T11:15:30.987654321Z", time.UTC)
		if err != nil {
			t.Fatalf("ParseDate error: %v", err)
		}
		in := booking.AppointmentInput{Name: "Al", Date: date, Service: "svc-2"}

		id, err := store.Create(ctx, appointments, in.Fields())
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
		recs, err := store.List(ctx, appointments)
		if err != nil {
			t.Fatalf("List error: %v", err)
		}
		for _, rec := range recs {
			if rec.ID != id {
				continue
			}
			got, err := booking.AppointmentFromRecord(rec)
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if !got.Date.Equal(date) {
				t.Fatalf("date = %v, want %v", got.Date, date)
			}
			return
		}
		t.Fatalf("created id %q not listed", id)
	})

	t.Run("service create and delete", func(t *testing.T) {
		in := booking.ServiceInput{Name: "Cut", Duration: 30, Price: 25.5}

		id, err := store.Create(ctx, services, in.Fields())
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}

		recs, err := store.List(ctx, services)
		if err != nil {
			t.Fatalf("List error: %v", err)
		}
		var got booking.Service
		for _, rec := range recs {
			if rec.ID == id {
				got, err = booking.ServiceFromRecord(rec)
				if err != nil {
					t.Fatalf("decode error: %v", err)
				}
			}
		}
		if got != in.WithID(id) {
			t.Fatalf("got %+v, want %+v", got, in.WithID(id))
		}

		if err := store.Delete(ctx, services, id); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
		recs, err = store.List(ctx, services)
		if err != nil {
			t.Fatalf("List error: %v", err)
		}
		for _, rec := range recs {
			if rec.ID == id {
				t.Fatalf("id %q still listed after delete", id)
			}
		}
	})

	t.Run("delete unknown id is not an error", func(t *testing.T) {
		if err := store.Delete(ctx, services, "does-not-exist"); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
	})
}
