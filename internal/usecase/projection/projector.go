package projection

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/pkg/clock"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/usecase/shared"
)

const namesTTL = 5 * time.Minute

type namesEntry struct {
	token   string
	names   booking.Names
	fetched time.Time
}

// Projector turns API bookings into display rows. Location and vehicle names
// missing from the payload are looked up once per session and token and kept
// briefly; a new login in the same browser session starts from scratch.
type Projector struct {
	api    shared.ParkingAPI
	clock  clock.Clock
	loc    *time.Location
	logger *slog.Logger

	mu    sync.Mutex
	names map[string]namesEntry
}

func NewProjector(api shared.ParkingAPI, clk clock.Clock, cfg config.Config, logger *slog.Logger) *Projector {
	return &Projector{
		api:    api,
		clock:  clk,
		loc:    cfg.Booking.Location(),
		logger: logger,
		names:  make(map[string]namesEntry),
	}
}

func (p *Projector) Location() *time.Location {
	return p.loc
}

func (p *Projector) Project(ctx context.Context, ns, token string, list []booking.Booking) []booking.DisplayBooking {
	var names booking.Names
	if needsLookup(list) {
		names = p.lookup(ctx, ns, token)
	}
	return booking.ProjectAll(list, names, p.loc, p.clock.Now())
}

func (p *Projector) ProjectOne(ctx context.Context, ns, token string, b booking.Booking) booking.DisplayBooking {
	return p.Project(ctx, ns, token, []booking.Booking{b})[0]
}

// Forget drops the cached names of a session, e.g. on logout.
func (p *Projector) Forget(ns string) {
	p.mu.Lock()
	delete(p.names, ns)
	p.mu.Unlock()
}

func (p *Projector) lookup(ctx context.Context, ns, token string) booking.Names {
	now := p.clock.Now()
	p.mu.Lock()
	entry, ok := p.names[ns]
	p.mu.Unlock()
	if ok && entry.token == token && now.Sub(entry.fetched) < namesTTL {
		return entry.names
	}

	names := booking.Names{
		Locations: map[string]string{},
		Vehicles:  map[string]string{},
	}
	complete := true
	if locations, err := p.api.ListLocations(ctx, token); err != nil {
		complete = false
		p.logger.Warn("location lookup failed", "namespace", ns, "error", err)
	} else {
		for _, l := range locations {
			names.Locations[l.ID.String()] = l.Name
		}
	}
	if vehicles, err := p.api.ListVehicles(ctx, token); err != nil {
		complete = false
		p.logger.Warn("vehicle lookup failed", "namespace", ns, "error", err)
	} else {
		for _, v := range vehicles {
			names.Vehicles[v.ID.String()] = v.Description()
		}
	}

	if complete {
		p.mu.Lock()
		p.names[ns] = namesEntry{token: token, names: names, fetched: now}
		p.mu.Unlock()
	}
	return names
}

func needsLookup(list []booking.Booking) bool {
	for _, b := range list {
		hasLocation := (b.ParkingLocation != nil && b.ParkingLocation.Name != "") || b.LocationName != ""
		hasVehicle := b.Vehicle != nil && b.Vehicle.NumberPlate != ""
		if !hasLocation || !hasVehicle {
			return true
		}
	}
	return false
}
