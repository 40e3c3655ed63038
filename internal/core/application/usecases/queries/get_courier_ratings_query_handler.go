package queries

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCourierRatingsQueryHandler pages through one courier's ratings.
type GetCourierRatingsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierRatingsQueryHandler creates a handler for rating list queries.
func NewGetCourierRatingsQueryHandler(db *gorm.DB) GetCourierRatingsQueryHandler {
	return GetCourierRatingsQueryHandler{db: db}
}

// Handle executes the paginated rating query. The sort column is taken from
// the query's whitelisted fields, never from raw client input.
func (h GetCourierRatingsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierRatingsQuery,
) (GetCourierRatingsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierRatingsQueryResponse{}, err
	}

	response := GetCourierRatingsQueryResponse{
		Ratings: make([]CourierRatingResponse, 0, query.Limit()),
		Page:    query.Page(),
		Limit:   query.Limit(),
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM ratings WHERE courier_id = ?
	`, query.CourierID().Bytes()).Scan(&response.Total).Error
	if err != nil {
		return GetCourierRatingsQueryResponse{}, err
	}

	sortColumn := map[string]string{
		RatingsSortByRatedAt: "rated_at",
		RatingsSortByStars:   "stars",
	}[query.SortBy()]

	rows, err := h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			id,
			order_id,
			stars,
			feedback,
			rated_at
		FROM ratings
		WHERE courier_id = ?
		ORDER BY %s %s, id
		LIMIT ? OFFSET ?
	`, sortColumn, query.SortDir()),
		query.CourierID().Bytes(),
		query.Limit(),
		(query.Page()-1)*query.Limit(),
	).Rows()
	if err != nil {
		return GetCourierRatingsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var row CourierRatingResponse
		var id, orderID uuid.UUID

		err = rows.Scan(&id, &orderID, &row.Stars, &row.Feedback, &row.RatedAt)
		if err != nil {
			return GetCourierRatingsQueryResponse{}, err
		}

		ratingID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetCourierRatingsQueryResponse{}, idErr
		}
		row.ID = ratingID

		ratedOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return GetCourierRatingsQueryResponse{}, idErr
		}
		row.OrderID = ratedOrderID

		response.Ratings = append(response.Ratings, row)
	}

	if err = rows.Err(); err != nil {
		return GetCourierRatingsQueryResponse{}, err
	}

	return response, nil
}
