package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetCourierRatingsQueryIsNotConstructed = errors.New(
	"GetCourierRatingsQuery must be created via NewGetCourierRatingsQuery constructor",
)

// Sort fields accepted by GetCourierRatingsQuery.
const (
	RatingsSortByRatedAt = "ratedAt"
	RatingsSortByStars   = "stars"
)

// Sort directions shared by the list queries.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// GetCourierRatingsQuery retrieves one courier's ratings, newest first by
// default, paginated. Sort field and direction are validated up front so the
// handler can splice them into SQL safely.
type GetCourierRatingsQuery struct {
	courierID kernel.UUID
	page      int
	limit     int
	sortBy    string
	sortDir   string

	guard guard.ConstructorGuard
}

// NewGetCourierRatingsQuery creates a query for a courier's rating page.
// Empty sortBy and sortDir fall back to ratedAt descending; page starts at 1.
func NewGetCourierRatingsQuery(
	courierID kernel.UUID,
	page, limit int,
	sortBy, sortDir string,
) (GetCourierRatingsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierRatingsQuery{}, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	switch sortBy {
	case "":
		sortBy = RatingsSortByRatedAt
	case RatingsSortByRatedAt, RatingsSortByStars:
	default:
		return GetCourierRatingsQuery{}, errs.NewValueIsInvalidError("sortBy")
	}

	switch sortDir {
	case "":
		sortDir = SortDesc
	case SortAsc, SortDesc:
	default:
		return GetCourierRatingsQuery{}, errs.NewValueIsInvalidError("sortDir")
	}

	return GetCourierRatingsQuery{
		courierID: courierID,
		page:      page,
		limit:     limit,
		sortBy:    sortBy,
		sortDir:   sortDir,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierRatingsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierRatingsQueryIsNotConstructed)
}

// CourierID returns the courier whose ratings are listed.
func (q GetCourierRatingsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// Page returns the 1-based page number.
func (q GetCourierRatingsQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q GetCourierRatingsQuery) Limit() int {
	return q.limit
}

// SortBy returns the whitelisted sort field.
func (q GetCourierRatingsQuery) SortBy() string {
	return q.sortBy
}

// SortDir returns the whitelisted sort direction.
func (q GetCourierRatingsQuery) SortDir() string {
	return q.sortDir
}

// GetCourierRatingsQueryResponse is one page of a courier's ratings.
type GetCourierRatingsQueryResponse struct {
	Ratings []CourierRatingResponse
	Total   int64
	Page    int
	Limit   int
}

// CourierRatingResponse represents one rating in the read model.
type CourierRatingResponse struct {
	ID       kernel.UUID
	OrderID  kernel.UUID
	Stars    int
	Feedback string
	RatedAt  time.Time
}
