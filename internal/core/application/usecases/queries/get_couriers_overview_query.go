package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetCouriersOverviewQueryIsNotConstructed = errors.New(
	"GetCouriersOverviewQuery must be created via NewGetCouriersOverviewQuery constructor",
)

// Sort fields accepted by GetCouriersOverviewQuery.
const (
	OverviewSortByAverageRating   = "averageRating"
	OverviewSortByTotalRatings    = "totalRatings"
	OverviewSortByTotalDeliveries = "totalDeliveries"
)

// GetCouriersOverviewQuery retrieves the per-courier figures for the
// operations dashboard, plus system-wide totals, in one round trip per table.
type GetCouriersOverviewQuery struct {
	sortBy  string
	sortDir string

	guard guard.ConstructorGuard
}

// NewGetCouriersOverviewQuery creates a query for the courier overview.
// Empty sortBy and sortDir fall back to averageRating descending.
func NewGetCouriersOverviewQuery(sortBy, sortDir string) (GetCouriersOverviewQuery, error) {
	switch sortBy {
	case "":
		sortBy = OverviewSortByAverageRating
	case OverviewSortByAverageRating, OverviewSortByTotalRatings, OverviewSortByTotalDeliveries:
	default:
		return GetCouriersOverviewQuery{}, errs.NewValueIsInvalidError("sortBy")
	}

	switch sortDir {
	case "":
		sortDir = SortDesc
	case SortAsc, SortDesc:
	default:
		return GetCouriersOverviewQuery{}, errs.NewValueIsInvalidError("sortDir")
	}

	return GetCouriersOverviewQuery{
		sortBy:  sortBy,
		sortDir: sortDir,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCouriersOverviewQuery) Validate() error {
	return q.guard.Validate(ErrGetCouriersOverviewQueryIsNotConstructed)
}

// SortBy returns the whitelisted sort field.
func (q GetCouriersOverviewQuery) SortBy() string {
	return q.sortBy
}

// SortDir returns the whitelisted sort direction.
func (q GetCouriersOverviewQuery) SortDir() string {
	return q.sortDir
}

// GetCouriersOverviewQueryResponse is the dashboard read model: one row per
// courier plus the global aggregates.
type GetCouriersOverviewQueryResponse struct {
	Couriers            []CourierOverviewResponse
	TotalDeliveries     int64
	TotalRatings        int64
	OverallDeliveryRate int
}

// CourierOverviewResponse represents one courier's figures in the overview.
type CourierOverviewResponse struct {
	ID              kernel.UUID
	Name            string
	IsActive        bool
	TotalAssigned   int64
	TotalDeliveries int64
	AverageRating   float64
	TotalRatings    int64
}
