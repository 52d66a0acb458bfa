package queries

import (
	"context"

	"parking-booking-gateway/internal/usecase/readmodel"
	"parking-booking-gateway/internal/usecase/shared"
)

//go:generate mockgen -source=catalog.go -destination=../../../tests/mock/queries/catalog_mock.go -package=queriesmock

// CatalogQueries proxies the reference data the booking form needs.
type CatalogQueries interface {
	Locations(ctx context.Context, ns string) ([]readmodel.LocationRM, error)
	Location(ctx context.Context, ns, id string) (*readmodel.LocationRM, error)
	Vehicles(ctx context.Context, ns string) ([]readmodel.VehicleRM, error)
}

type catalogQueriesImpl struct {
	api   shared.ParkingAPI
	creds shared.Credentials
}

func NewCatalogQueries(api shared.ParkingAPI, creds shared.Credentials) CatalogQueries {
	return &catalogQueriesImpl{api: api, creds: creds}
}

func (q *catalogQueriesImpl) Locations(ctx context.Context, ns string) ([]readmodel.LocationRM, error) {
	token, err := q.creds.Token(ctx, ns)
	if err != nil {
		return nil, err
	}
	list, err := q.api.ListLocations(ctx, token)
	if err != nil {
		return nil, shared.Reject(ctx, q.creds, ns, err, "Failed to load parking locations.")
	}
	if list == nil {
		list = []readmodel.LocationRM{}
	}
	return list, nil
}

func (q *catalogQueriesImpl) Location(ctx context.Context, ns, id string) (*readmodel.LocationRM, error) {
	token, err := q.creds.Token(ctx, ns)
	if err != nil {
		return nil, err
	}
	loc, err := q.api.GetLocation(ctx, token, id)
	if err != nil {
		return nil, shared.Reject(ctx, q.creds, ns, err, "Failed to load parking location.")
	}
	return loc, nil
}

func (q *catalogQueriesImpl) Vehicles(ctx context.Context, ns string) ([]readmodel.VehicleRM, error) {
	token, err := q.creds.Token(ctx, ns)
	if err != nil {
		return nil, err
	}
	list, err := q.api.ListVehicles(ctx, token)
	if err != nil {
		return nil, shared.Reject(ctx, q.creds, ns, err, "Failed to load vehicles.")
	}
	if list == nil {
		list = []readmodel.VehicleRM{}
	}
	return list, nil
}
