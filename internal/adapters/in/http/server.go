// Package http exposes the order lifecycle over a JSON REST API. The server
// is a thin layer: it parses requests into commands and queries, lets the
// application layer decide, and maps errors onto stable status codes.
package http

import (
	"net/http"
	"strconv"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP routes to the command and query handlers.
type Server struct {
	registerOrderHandler         commands.RegisterOrderCommandHandler
	assignOrderHandler           commands.AssignOrderCommandHandler
	reassignOrderHandler         commands.ReassignOrderCommandHandler
	changeOrderStatusHandler     commands.ChangeOrderStatusCommandHandler
	updateDeliveryDetailsHandler commands.UpdateDeliveryDetailsCommandHandler
	recordRatingHandler          commands.RecordRatingCommandHandler
	purgeDeliveredHandler        commands.PurgeDeliveredOrdersCommandHandler
	registerCourierHandler       commands.RegisterCourierCommandHandler
	setCourierActivityHandler    commands.SetCourierActivityCommandHandler

	getActiveOrdersHandler     queries.GetActiveOrdersQueryHandler
	getCourierRatingsHandler   queries.GetCourierRatingsQueryHandler
	getCourierStatsHandler     queries.GetCourierStatsQueryHandler
	getCouriersOverviewHandler queries.GetCouriersOverviewQueryHandler
}

// NewServer creates the HTTP server from the application handlers.
func NewServer(
	registerOrderHandler commands.RegisterOrderCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	reassignOrderHandler commands.ReassignOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	updateDeliveryDetailsHandler commands.UpdateDeliveryDetailsCommandHandler,
	recordRatingHandler commands.RecordRatingCommandHandler,
	purgeDeliveredHandler commands.PurgeDeliveredOrdersCommandHandler,
	registerCourierHandler commands.RegisterCourierCommandHandler,
	setCourierActivityHandler commands.SetCourierActivityCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getCourierRatingsHandler queries.GetCourierRatingsQueryHandler,
	getCourierStatsHandler queries.GetCourierStatsQueryHandler,
	getCouriersOverviewHandler queries.GetCouriersOverviewQueryHandler,
) *Server {
	return &Server{
		registerOrderHandler:         registerOrderHandler,
		assignOrderHandler:           assignOrderHandler,
		reassignOrderHandler:         reassignOrderHandler,
		changeOrderStatusHandler:     changeOrderStatusHandler,
		updateDeliveryDetailsHandler: updateDeliveryDetailsHandler,
		recordRatingHandler:          recordRatingHandler,
		purgeDeliveredHandler:        purgeDeliveredHandler,
		registerCourierHandler:       registerCourierHandler,
		setCourierActivityHandler:    setCourierActivityHandler,
		getActiveOrdersHandler:       getActiveOrdersHandler,
		getCourierRatingsHandler:     getCourierRatingsHandler,
		getCourierStatsHandler:       getCourierStatsHandler,
		getCouriersOverviewHandler:   getCouriersOverviewHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1. Every route except /health
// goes through the auth middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1", auth)

	v1.POST("/orders", s.RegisterOrder)
	v1.GET("/orders/active", s.GetActiveOrders)
	v1.DELETE("/orders/delivered", s.PurgeDeliveredOrders)
	v1.POST("/orders/:id/assign", s.AssignOrder)
	v1.POST("/orders/:id/reassign", s.ReassignOrder)
	v1.PATCH("/orders/:id/status", s.ChangeOrderStatus)
	v1.PATCH("/orders/:id/delivery-details", s.UpdateDeliveryDetails)
	v1.POST("/orders/:id/rating", s.RecordRating)

	v1.POST("/delivery-persons", s.RegisterCourier)
	v1.GET("/delivery-persons/overview", s.GetCouriersOverview)
	v1.DELETE("/delivery-persons/:id", s.DeactivateCourier)
	v1.PATCH("/delivery-persons/:id/activity", s.SetCourierActivity)
	v1.GET("/delivery-persons/:id/ratings", s.GetCourierRatings)
	v1.GET("/delivery-persons/:id/stats", s.GetCourierStats)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// RegisterOrder handles POST /api/v1/orders.
func (s *Server) RegisterOrder(ctx echo.Context) error {
	if err := requireAdmin(ctx, "register order"); err != nil {
		return respondError(ctx, err)
	}

	var req registerOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	amount, err := kernel.NewMoneyFromCents(req.TotalAmountCents)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewRegisterOrderCommand(orderID, req.OrderNumber, amount)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.registerOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, registerOrderResponse{ID: orderID.String()})
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]activeOrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toActiveOrderResponse(o))
	}
	return ctx.JSON(http.StatusOK, response)
}

// AssignOrder handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignOrder(ctx echo.Context) error {
	if err := requireAdmin(ctx, "assign order"); err != nil {
		return respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req assignOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}
	courierID, err := parseUUID(req.CourierID, "delivery_person_id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, courierID)
	if err != nil {
		return respondError(ctx, err)
	}
	updated, err := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// ReassignOrder handles POST /api/v1/orders/:id/reassign.
func (s *Server) ReassignOrder(ctx echo.Context) error {
	if err := requireAdmin(ctx, "reassign order"); err != nil {
		return respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req assignOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}
	courierID, err := parseUUID(req.CourierID, "delivery_person_id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewReassignOrderCommand(orderID, courierID)
	if err != nil {
		return respondError(ctx, err)
	}
	updated, err := s.reassignOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:id/status. The acting
// user's role decides which transitions are allowed; that check lives in the
// order aggregate, not here.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondError(ctx, errs.NewValueIsRequiredError("actor"))
	}

	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req changeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, actor, target, req.EstimatedDeliveryTime, req.DeliveryNotes)
	if err != nil {
		return respondError(ctx, err)
	}
	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// UpdateDeliveryDetails handles PATCH /api/v1/orders/:id/delivery-details.
func (s *Server) UpdateDeliveryDetails(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondError(ctx, errs.NewValueIsRequiredError("actor"))
	}

	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req deliveryDetailsRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	cmd, err := commands.NewUpdateDeliveryDetailsCommand(orderID, actor, req.EstimatedDeliveryTime, req.DeliveryNotes)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.updateDeliveryDetailsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordRating handles POST /api/v1/orders/:id/rating. Only customers rate;
// couriers cannot score their own deliveries.
func (s *Server) RecordRating(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondError(ctx, errs.NewValueIsRequiredError("actor"))
	}
	if actor.Role() != kernel.RoleCustomer {
		return respondError(ctx, errs.NewForbiddenError(string(actor.Role()), "rate order"))
	}

	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req recordRatingRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	cmd, err := commands.NewRecordRatingCommand(orderID, req.Stars, req.Feedback)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.recordRatingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// PurgeDeliveredOrders handles DELETE /api/v1/orders/delivered. The confirm
// query parameter must be "true"; the admin check happens in the handler.
func (s *Server) PurgeDeliveredOrders(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return respondError(ctx, errs.NewValueIsRequiredError("actor"))
	}

	confirmed := ctx.QueryParam("confirm") == "true"

	var dateFrom, dateTo time.Time
	var err error
	if raw := ctx.QueryParam("date_from"); raw != "" {
		if dateFrom, err = time.Parse(time.RFC3339, raw); err != nil {
			return respondError(ctx, errs.NewValueIsInvalidError("date_from"))
		}
	}
	if raw := ctx.QueryParam("date_to"); raw != "" {
		if dateTo, err = time.Parse(time.RFC3339, raw); err != nil {
			return respondError(ctx, errs.NewValueIsInvalidError("date_to"))
		}
	}

	var olderThan time.Duration
	if raw := ctx.QueryParam("older_than_days"); raw != "" {
		days, parseErr := strconv.Atoi(raw)
		if parseErr != nil || days < 0 {
			return respondError(ctx, errs.NewValueIsInvalidError("older_than_days"))
		}
		olderThan = time.Duration(days) * 24 * time.Hour
	}

	cmd, err := commands.NewPurgeDeliveredOrdersCommand(actor, dateFrom, dateTo, olderThan, confirmed)
	if err != nil {
		return respondError(ctx, err)
	}

	purged, err := s.purgeDeliveredHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, purgeResponse{Purged: purged})
}

// RegisterCourier handles POST /api/v1/delivery-persons.
func (s *Server) RegisterCourier(ctx echo.Context) error {
	if err := requireAdmin(ctx, "register delivery person"); err != nil {
		return respondError(ctx, err)
	}

	var req registerCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewRegisterCourierCommand(courierID, req.Name, req.Email, req.Phone)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.registerCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, registerCourierResponse{ID: courierID.String()})
}

// SetCourierActivity handles PATCH /api/v1/delivery-persons/:id/activity.
func (s *Server) SetCourierActivity(ctx echo.Context) error {
	if err := requireAdmin(ctx, "change delivery person activity"); err != nil {
		return respondError(ctx, err)
	}

	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req courierActivityRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	cmd, err := commands.NewSetCourierActivityCommand(courierID, req.Active)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.setCourierActivityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeactivateCourier handles DELETE /api/v1/delivery-persons/:id.
// Couriers are never deleted; removal means deactivation, so history and
// statistics stay intact.
func (s *Server) DeactivateCourier(ctx echo.Context) error {
	if err := requireAdmin(ctx, "deactivate delivery person"); err != nil {
		return respondError(ctx, err)
	}

	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewSetCourierActivityCommand(courierID, false)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.setCourierActivityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCourierRatings handles GET /api/v1/delivery-persons/:id/ratings.
func (s *Server) GetCourierRatings(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	page, err := queryInt(ctx, "page")
	if err != nil {
		return respondError(ctx, err)
	}
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetCourierRatingsQuery(
		courierID,
		page,
		limit,
		ctx.QueryParam("sort_by"),
		ctx.QueryParam("sort_dir"),
	)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getCourierRatingsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRatingsPageResponse(result))
}

// GetCourierStats handles GET /api/v1/delivery-persons/:id/stats.
func (s *Server) GetCourierStats(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetCourierStatsQuery(courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getCourierStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCourierStatsResponse(result))
}

// GetCouriersOverview handles GET /api/v1/delivery-persons/overview.
func (s *Server) GetCouriersOverview(ctx echo.Context) error {
	query, err := queries.NewGetCouriersOverviewQuery(
		ctx.QueryParam("sort_by"),
		ctx.QueryParam("sort_dir"),
	)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getCouriersOverviewHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCouriersOverviewResponse(result))
}

func requireAdmin(ctx echo.Context, action string) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return errs.NewValueIsRequiredError("actor")
	}
	if !actor.IsAdmin() {
		return errs.NewForbiddenError(string(actor.Role()), action)
	}
	return nil
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidError(name)
	}
	return id, nil
}

func parseUUID(raw, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidError(name)
	}
	return id, nil
}

func queryInt(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidError(name)
	}
	return value, nil
}
