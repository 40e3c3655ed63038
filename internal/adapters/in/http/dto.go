package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
)

// Request bodies.

type registerOrderRequest struct {
	OrderNumber      string `json:"order_number"`
	TotalAmountCents int64  `json:"total_amount_cents"`
}

type assignOrderRequest struct {
	CourierID string `json:"delivery_person_id"`
}

type changeStatusRequest struct {
	Status                string     `json:"status"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
	DeliveryNotes         *string    `json:"delivery_notes,omitempty"`
}

type deliveryDetailsRequest struct {
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
	DeliveryNotes         *string    `json:"delivery_notes,omitempty"`
}

type recordRatingRequest struct {
	Stars    int    `json:"stars"`
	Feedback string `json:"feedback"`
}

type registerCourierRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type courierActivityRequest struct {
	Active bool `json:"active"`
}

// Response bodies.

type registerOrderResponse struct {
	ID string `json:"id"`
}

type registerCourierResponse struct {
	ID string `json:"id"`
}

type purgeResponse struct {
	Purged int64 `json:"purged"`
}

type orderResponse struct {
	ID                    string     `json:"id"`
	OrderNumber           string     `json:"order_number"`
	Status                string     `json:"status"`
	TotalAmountCents      int64      `json:"total_amount_cents"`
	CourierID             *string    `json:"delivery_person_id,omitempty"`
	AssignedAt            *time.Time `json:"assigned_at,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
	DeliveryNotes         string     `json:"delivery_notes,omitempty"`
	DeliveredAt           *time.Time `json:"delivered_at,omitempty"`
}

func toOrderResponse(o *order.Order) orderResponse {
	out := orderResponse{
		ID:                    o.ID().String(),
		OrderNumber:           o.OrderNumber(),
		Status:                o.Status().String(),
		TotalAmountCents:      o.TotalAmount().Cents(),
		AssignedAt:            o.AssignedAt(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		DeliveryNotes:         o.DeliveryNotes(),
		DeliveredAt:           o.DeliveredAt(),
	}
	if o.CourierID() != nil {
		s := o.CourierID().String()
		out.CourierID = &s
	}
	return out
}

type activeOrderResponse struct {
	ID                    string     `json:"id"`
	OrderNumber           string     `json:"order_number"`
	Status                string     `json:"status"`
	CourierID             *string    `json:"delivery_person_id,omitempty"`
	AssignedAt            *time.Time `json:"assigned_at,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
}

func toActiveOrderResponse(in queries.GetActiveOrdersQueryResponse) activeOrderResponse {
	out := activeOrderResponse{
		ID:                    in.ID.String(),
		OrderNumber:           in.OrderNumber,
		Status:                in.Status.String(),
		AssignedAt:            in.AssignedAt,
		EstimatedDeliveryTime: in.EstimatedDeliveryTime,
	}
	if in.CourierID != nil {
		s := in.CourierID.String()
		out.CourierID = &s
	}
	return out
}

type ratingResponse struct {
	ID       string    `json:"id"`
	OrderID  string    `json:"order_id"`
	Stars    int       `json:"stars"`
	Feedback string    `json:"feedback,omitempty"`
	RatedAt  time.Time `json:"rated_at"`
}

type ratingsPageResponse struct {
	Ratings []ratingResponse `json:"ratings"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

func toRatingsPageResponse(in queries.GetCourierRatingsQueryResponse) ratingsPageResponse {
	out := ratingsPageResponse{
		Ratings: make([]ratingResponse, 0, len(in.Ratings)),
		Total:   in.Total,
		Page:    in.Page,
		Limit:   in.Limit,
	}
	for _, r := range in.Ratings {
		out.Ratings = append(out.Ratings, ratingResponse{
			ID:       r.ID.String(),
			OrderID:  r.OrderID.String(),
			Stars:    r.Stars,
			Feedback: r.Feedback,
			RatedAt:  r.RatedAt,
		})
	}
	return out
}

type courierStatsResponse struct {
	ID                         string        `json:"id"`
	Name                       string        `json:"name"`
	IsActive                   bool          `json:"is_active"`
	TotalAssigned              int64         `json:"total_assigned"`
	TotalDelivered             int64         `json:"total_delivered"`
	DeliveryRate               int           `json:"delivery_rate"`
	AverageDeliveryTimeSeconds float64       `json:"average_delivery_time_seconds"`
	AverageRating              float64       `json:"average_rating"`
	TotalRatings               int64         `json:"total_ratings"`
	RatingDistribution         map[int]int64 `json:"rating_distribution"`
}

func toCourierStatsResponse(in queries.GetCourierStatsQueryResponse) courierStatsResponse {
	return courierStatsResponse{
		ID:                         in.CourierID.String(),
		Name:                       in.Name,
		IsActive:                   in.IsActive,
		TotalAssigned:              in.TotalAssigned,
		TotalDelivered:             in.TotalDelivered,
		DeliveryRate:               in.DeliveryRate,
		AverageDeliveryTimeSeconds: in.AverageDeliveryTimeSeconds,
		AverageRating:              in.AverageRating,
		TotalRatings:               in.TotalRatings,
		RatingDistribution:         in.RatingDistribution,
	}
}

type courierOverviewEntryResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	IsActive        bool    `json:"is_active"`
	TotalAssigned   int64   `json:"total_assigned"`
	TotalDeliveries int64   `json:"total_deliveries"`
	AverageRating   float64 `json:"average_rating"`
	TotalRatings    int64   `json:"total_ratings"`
}

type couriersOverviewResponse struct {
	Couriers            []courierOverviewEntryResponse `json:"delivery_persons"`
	TotalDeliveries     int64                          `json:"total_deliveries"`
	TotalRatings        int64                          `json:"total_ratings"`
	OverallDeliveryRate int                            `json:"overall_delivery_rate"`
}

func toCouriersOverviewResponse(in queries.GetCouriersOverviewQueryResponse) couriersOverviewResponse {
	out := couriersOverviewResponse{
		Couriers:            make([]courierOverviewEntryResponse, 0, len(in.Couriers)),
		TotalDeliveries:     in.TotalDeliveries,
		TotalRatings:        in.TotalRatings,
		OverallDeliveryRate: in.OverallDeliveryRate,
	}
	for _, c := range in.Couriers {
		out.Couriers = append(out.Couriers, courierOverviewEntryResponse{
			ID:              c.ID.String(),
			Name:            c.Name,
			IsActive:        c.IsActive,
			TotalAssigned:   c.TotalAssigned,
			TotalDeliveries: c.TotalDeliveries,
			AverageRating:   c.AverageRating,
			TotalRatings:    c.TotalRatings,
		})
	}
	return out
}
