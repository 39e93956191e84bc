package pms

import (
	"context"

	"github.com/stay-tools/pms-atlas/pkg/models/domain"
)

// Backend is the primitive read set a property-management system must
// provide. Quantities follow one shared semantic: OccupiedUnitDays is the
// sum, over every day of the period, of the count of occupied bookable
// units, whatever shape the backend's own payloads use.
type Backend interface {
	// TotalSpaces returns the number of bookable units in the property.
	TotalSpaces(ctx context.Context) (int, error)
	// RoomRevenue returns net accommodation revenue within the period.
	RoomRevenue(ctx context.Context, p domain.Period) (float64, error)
	// OccupiedUnitDays returns the occupied unit-day sum for the period.
	OccupiedUnitDays(ctx context.Context, p domain.Period) (float64, error)
	// ServiceIDByName resolves a named ancillary service to the backend's
	// identifier for it.
	ServiceIDByName(ctx context.Context, name string) (string, error)
	// ServiceRevenue returns net revenue for the identified ancillary
	// service within the period.
	ServiceRevenue(ctx context.Context, p domain.Period, serviceID string) (float64, error)
}

// Engine computes the derived report metrics. Implementations hold no
// per-request state; one instance is selected at startup and shared by all
// concurrent report executions.
type Engine interface {
	// OccupancyRate returns the percentage of bookable unit-days occupied
	// within the period.
	OccupancyRate(ctx context.Context, p domain.Period) (float64, error)
	// AverageDailyRate returns mean accommodation revenue per bookable
	// unit per day.
	AverageDailyRate(ctx context.Context, p domain.Period) (float64, error)
	// RevenuePAR returns accommodation revenue per occupied unit-day.
	RevenuePAR(ctx context.Context, p domain.Period) (float64, error)
	// ServiceRevenue returns net revenue for a named ancillary service.
	ServiceRevenue(ctx context.Context, p domain.Period, serviceName string) (float64, error)
}
