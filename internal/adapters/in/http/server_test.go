package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	inhttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/identity"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/rating"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore backs the command handlers with in-memory state so the routes can
// be driven end to end without a database.
type fakeStore struct {
	orders      map[kernel.UUID]*order.Order
	couriers    map[kernel.UUID]*courier.Courier
	ratings     map[kernel.UUID]*rating.Rating
	assignments []order.AssignmentRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:   make(map[kernel.UUID]*order.Order),
		couriers: make(map[kernel.UUID]*courier.Courier),
		ratings:  make(map[kernel.UUID]*rating.Rating),
	}
}

type fakeUoW struct{ store *fakeStore }

func (u fakeUoW) Begin(context.Context) error    { return nil }
func (u fakeUoW) Commit(context.Context) error   { return nil }
func (u fakeUoW) Rollback(context.Context) error { return nil }

func (u fakeUoW) OrderRepository() ports.OrderRepository     { return fakeOrderRepo{u.store} }
func (u fakeUoW) CourierRepository() ports.CourierRepository { return fakeCourierRepo{u.store} }
func (u fakeUoW) RatingRepository() ports.RatingRepository   { return fakeRatingRepo{u.store} }

type fakeFactory struct{ store *fakeStore }

func (f fakeFactory) Create() commands.UoW { return fakeUoW{f.store} }

type fakeOrderFactory struct{ store *fakeStore }

func (f fakeOrderFactory) Create() commands.OrderUoW { return fakeUoW{f.store} }

type fakeCourierFactory struct{ store *fakeStore }

func (f fakeCourierFactory) Create() commands.CourierUoW { return fakeUoW{f.store} }

type fakeOrderRatingFactory struct{ store *fakeStore }

func (f fakeOrderRatingFactory) Create() commands.OrderRatingUoW { return fakeUoW{f.store} }

type fakeOrderRepo struct{ store *fakeStore }

func (r fakeOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.store.orders[o.ID()] = o
	return nil
}

func (r fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.store.orders[o.ID()] = o
	return nil
}

func (r fakeOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return o, nil
}

func (r fakeOrderRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r fakeOrderRepo) GetDeliveredBefore(_ context.Context, cutoff time.Time) ([]*order.Order, error) {
	var stale []*order.Order
	for _, o := range r.store.orders {
		if o.Status() == order.Delivered && o.DeliveredAt().Before(cutoff) {
			stale = append(stale, o)
		}
	}
	return stale, nil
}

func (r fakeOrderRepo) DeleteDelivered(_ context.Context, filter ports.DeliveredFilter) (int64, error) {
	var purged int64
	for id, o := range r.store.orders {
		if o.Status() != order.Delivered && o.Status() != order.Completed {
			continue
		}
		if filter.OlderThan > 0 && o.DeliveredAt().After(time.Now().Add(-filter.OlderThan)) {
			continue
		}
		delete(r.store.orders, id)
		purged++
	}
	return purged, nil
}

func (r fakeOrderRepo) LogAssignment(_ context.Context, record order.AssignmentRecord) error {
	r.store.assignments = append(r.store.assignments, record)
	return nil
}

type fakeCourierRepo struct{ store *fakeStore }

func (r fakeCourierRepo) Add(_ context.Context, c *courier.Courier) error {
	r.store.couriers[c.ID()] = c
	return nil
}

func (r fakeCourierRepo) Update(_ context.Context, c *courier.Courier) error {
	r.store.couriers[c.ID()] = c
	return nil
}

func (r fakeCourierRepo) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	c, ok := r.store.couriers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("courierID", id)
	}
	return c, nil
}

type fakeRatingRepo struct{ store *fakeStore }

func (r fakeRatingRepo) Add(_ context.Context, rt *rating.Rating) error {
	r.store.ratings[rt.ID()] = rt
	return nil
}

func (r fakeRatingRepo) ExistsForOrder(_ context.Context, orderID kernel.UUID) (bool, error) {
	for _, rt := range r.store.ratings {
		if rt.OrderID().IsEqual(orderID) {
			return true, nil
		}
	}
	return false, nil
}

type noopNotifier struct{}

func (noopNotifier) OrderAssigned(context.Context, *order.Order)                     {}
func (noopNotifier) OrderStatusChanged(context.Context, *order.Order, order.Status) {}

// fakeIdentity resolves static tokens to pre-registered actors.
type fakeIdentity struct{ actors map[string]kernel.Actor }

func (f fakeIdentity) Resolve(_ context.Context, token string) (kernel.Actor, error) {
	actor, ok := f.actors[token]
	if !ok {
		return kernel.Actor{}, identity.ErrTokenRejected
	}
	return actor, nil
}

type testEnv struct {
	echo   *echo.Echo
	store  *fakeStore
	actors map[string]kernel.Actor
}

func newTestEnv(t *testing.T, actors map[string]kernel.Actor) testEnv {
	t.Helper()
	return newTestEnvWithStore(t, newFakeStore(), actors)
}

func (env testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func adminActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	require.NoError(t, err)
	return actor
}

func courierActor(t *testing.T, id kernel.UUID) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(id, kernel.RoleCourier)
	require.NoError(t, err)
	return actor
}

func customerActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleCustomer)
	require.NoError(t, err)
	return actor
}

func seedConfirmedOrder(t *testing.T, store *fakeStore, admin kernel.Actor) *order.Order {
	t.Helper()
	total, err := kernel.NewMoneyFromCents(4999)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-2001", total)
	require.NoError(t, err)
	require.NoError(t, o.TransitionBy(admin, order.Confirmed, time.Now()))
	store.orders[o.ID()] = o
	return o
}

func seedActiveCourier(t *testing.T, store *fakeStore) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), "Robin Clark", "robin@example.com", "")
	require.NoError(t, err)
	store.couriers[c.ID()] = c
	return c
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body inhttp.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

type orderResponseBody struct {
	ID                    string  `json:"id"`
	OrderNumber           string  `json:"order_number"`
	Status                string  `json:"status"`
	CourierID             *string `json:"delivery_person_id"`
	EstimatedDeliveryTime *string `json:"estimated_delivery_time"`
}

func orderBody(t *testing.T, rec *httptest.ResponseRecorder) orderResponseBody {
	t.Helper()
	var body orderResponseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuth_MissingToken(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodPost, "/api/v1/orders", "", `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", errorCode(t, rec))
}

func TestAuth_RejectedToken(t *testing.T) {
	env := newTestEnv(t, map[string]kernel.Actor{})

	rec := env.do(http.MethodPost, "/api/v1/orders", "stale-token", `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", errorCode(t, rec))
}

func TestHealth_NoAuthRequired(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterOrder_AdminCreates(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})

	rec := env.do(http.MethodPost, "/api/v1/orders", "admin",
		`{"order_number":"ORD-3001","total_amount_cents":2599}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	createdID, err := kernel.UUIDFromString(body["id"])
	require.NoError(t, err)

	stored, ok := env.store.orders[createdID]
	require.True(t, ok)
	assert.Equal(t, order.Pending, stored.Status())
	assert.Equal(t, "ORD-3001", stored.OrderNumber())
}

func TestRegisterOrder_CourierForbidden(t *testing.T) {
	actor := courierActor(t, kernel.NewUUID())
	env := newTestEnv(t, map[string]kernel.Actor{"courier": actor})

	rec := env.do(http.MethodPost, "/api/v1/orders", "courier",
		`{"order_number":"ORD-3002","total_amount_cents":1000}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", errorCode(t, rec))
}

func TestRegisterOrder_MissingNumberRejected(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})

	rec := env.do(http.MethodPost, "/api/v1/orders", "admin",
		`{"order_number":"","total_amount_cents":1000}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_failed", errorCode(t, rec))
}

func TestAssignOrder_Success(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})
	o := seedConfirmedOrder(t, env.store, admin)
	c := seedActiveCourier(t, env.store)

	rec := env.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/assign", "admin",
		`{"delivery_person_id":"`+c.ID().String()+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := orderBody(t, rec)
	assert.Equal(t, o.ID().String(), body.ID)
	assert.Equal(t, "assigned", body.Status)
	require.NotNil(t, body.CourierID)
	assert.Equal(t, c.ID().String(), *body.CourierID)
	assert.Equal(t, order.Assigned, o.Status())
	require.NotNil(t, o.CourierID())
	assert.True(t, o.CourierID().IsEqual(c.ID()))
	assert.Len(t, env.store.assignments, 1)
}

func TestReassignOrder_ReturnsUpdatedOrder(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})
	o := seedConfirmedOrder(t, env.store, admin)
	first := seedActiveCourier(t, env.store)
	require.NoError(t, o.AssignTo(first.ID(), time.Now()))
	replacement := seedActiveCourier(t, env.store)

	rec := env.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/reassign", "admin",
		`{"delivery_person_id":"`+replacement.ID().String()+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := orderBody(t, rec)
	require.NotNil(t, body.CourierID)
	assert.Equal(t, replacement.ID().String(), *body.CourierID)
	require.NotNil(t, o.CourierID())
	assert.True(t, o.CourierID().IsEqual(replacement.ID()))
}

func TestAssignOrder_InactiveCourierConflict(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})
	o := seedConfirmedOrder(t, env.store, admin)
	c := seedActiveCourier(t, env.store)
	c.Deactivate()

	rec := env.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/assign", "admin",
		`{"delivery_person_id":"`+c.ID().String()+`"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "courier_inactive", errorCode(t, rec))
	assert.Equal(t, order.Confirmed, o.Status())
}

func TestAssignOrder_UnknownOrder(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})
	c := seedActiveCourier(t, env.store)

	rec := env.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/assign", "admin",
		`{"delivery_person_id":"`+c.ID().String()+`"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestAssignOrder_MalformedOrderID(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})

	rec := env.do(http.MethodPost, "/api/v1/orders/not-a-uuid/assign", "admin",
		`{"delivery_person_id":"`+kernel.NewUUID().String()+`"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_failed", errorCode(t, rec))
}

func TestChangeOrderStatus_CourierStartsDelivery(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})
	o := seedConfirmedOrder(t, env.store, admin)
	c := seedActiveCourier(t, env.store)
	require.NoError(t, o.AssignTo(c.ID(), time.Now()))
	env.actors["courier"] = courierActor(t, c.ID())

	eta := time.Now().Add(2 * time.Hour).UTC().Format(time.RFC3339)
	rec := env.do(http.MethodPatch, "/api/v1/orders/"+o.ID().String()+"/status", "courier",
		`{"status":"out_for_delivery","estimated_delivery_time":"`+eta+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := orderBody(t, rec)
	assert.Equal(t, "out_for_delivery", body.Status)
	require.NotNil(t, body.EstimatedDeliveryTime)
	assert.Equal(t, order.OutForDelivery, o.Status())
}

func TestChangeOrderStatus_IllegalTransitionConflict(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})
	o := seedConfirmedOrder(t, env.store, admin)

	rec := env.do(http.MethodPatch, "/api/v1/orders/"+o.ID().String()+"/status", "admin",
		`{"status":"delivered"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, order.Confirmed, o.Status())
}

func TestChangeOrderStatus_UnknownStatusRejected(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})
	o := seedConfirmedOrder(t, env.store, admin)

	rec := env.do(http.MethodPatch, "/api/v1/orders/"+o.ID().String()+"/status", "admin",
		`{"status":"teleported"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_failed", errorCode(t, rec))
}

func TestRecordRating_CustomerOnDeliveredOrder(t *testing.T) {
	admin := adminActor(t)
	customer := customerActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin, "customer": customer})

	o := seedConfirmedOrder(t, env.store, admin)
	c := seedActiveCourier(t, env.store)
	require.NoError(t, o.AssignTo(c.ID(), time.Now()))
	courierAct := courierActor(t, c.ID())
	require.NoError(t, o.TransitionBy(courierAct, order.OutForDelivery, time.Now()))
	require.NoError(t, o.TransitionBy(courierAct, order.Delivered, time.Now()))

	rec := env.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/rating", "customer",
		`{"stars":5,"feedback":"spotless"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, env.store.ratings, 1)

	rec = env.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/rating", "customer",
		`{"stars":1,"feedback":"changed my mind"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_rating", errorCode(t, rec))
	assert.Len(t, env.store.ratings, 1)
}

func TestRecordRating_CourierForbidden(t *testing.T) {
	actor := courierActor(t, kernel.NewUUID())
	env := newTestEnv(t, map[string]kernel.Actor{"courier": actor})

	rec := env.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/rating", "courier",
		`{"stars":5}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", errorCode(t, rec))
}

func TestPurgeDelivered_RequiresConfirmation(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})

	rec := env.do(http.MethodDelete, "/api/v1/orders/delivered", "admin", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "confirmation_required", errorCode(t, rec))
}

func TestPurgeDelivered_NonAdminForbidden(t *testing.T) {
	customer := customerActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"customer": customer})

	rec := env.do(http.MethodDelete, "/api/v1/orders/delivered?confirm=true", "customer", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPurgeDelivered_ReportsCount(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})

	o := seedConfirmedOrder(t, env.store, admin)
	c := seedActiveCourier(t, env.store)
	require.NoError(t, o.AssignTo(c.ID(), time.Now()))
	courierAct := courierActor(t, c.ID())
	require.NoError(t, o.TransitionBy(courierAct, order.OutForDelivery, time.Now()))
	require.NoError(t, o.TransitionBy(courierAct, order.Delivered, time.Now()))
	seedConfirmedOrder(t, env.store, admin)

	rec := env.do(http.MethodDelete, "/api/v1/orders/delivered?confirm=true", "admin", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body["purged"])
	assert.Len(t, env.store.orders, 1)
}

func TestRegisterCourier_AdminCreates(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})

	rec := env.do(http.MethodPost, "/api/v1/delivery-persons", "admin",
		`{"name":"Dana Reed","email":"dana@example.com","phone":"+15550102"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, env.store.couriers, 1)
	for _, c := range env.store.couriers {
		assert.Equal(t, "Dana Reed", c.Name())
		assert.True(t, c.IsActive())
	}
}

func TestDeactivateCourier_DeleteRoute(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})
	c := seedActiveCourier(t, env.store)

	rec := env.do(http.MethodDelete, "/api/v1/delivery-persons/"+c.ID().String(), "admin", "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, c.IsActive())
}

func TestSetCourierActivity_Deactivates(t *testing.T) {
	admin := adminActor(t)
	env := newTestEnv(t, map[string]kernel.Actor{"admin": admin})
	c := seedActiveCourier(t, env.store)

	rec := env.do(http.MethodPatch, "/api/v1/delivery-persons/"+c.ID().String()+"/activity", "admin",
		`{"active":false}`)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, c.IsActive())
}

func newTestEnvWithStore(t *testing.T, store *fakeStore, actors map[string]kernel.Actor) testEnv {
	t.Helper()

	if actors == nil {
		actors = make(map[string]kernel.Actor)
	}
	notifier := noopNotifier{}
	server := inhttp.NewServer(
		commands.NewRegisterOrderCommandHandler(fakeOrderFactory{store}),
		commands.NewAssignOrderCommandHandler(fakeFactory{store}, notifier),
		commands.NewReassignOrderCommandHandler(fakeFactory{store}, notifier),
		commands.NewChangeOrderStatusCommandHandler(fakeOrderFactory{store}, notifier),
		commands.NewUpdateDeliveryDetailsCommandHandler(fakeOrderFactory{store}),
		commands.NewRecordRatingCommandHandler(fakeOrderRatingFactory{store}),
		commands.NewPurgeDeliveredOrdersCommandHandler(fakeOrderFactory{store}),
		commands.NewRegisterCourierCommandHandler(fakeCourierFactory{store}),
		commands.NewSetCourierActivityCommandHandler(fakeCourierFactory{store}),
		queries.GetActiveOrdersQueryHandler{},
		queries.GetCourierRatingsQueryHandler{},
		queries.GetCourierStatsQueryHandler{},
		queries.GetCouriersOverviewQueryHandler{},
	)

	e := echo.New()
	server.RegisterRoutes(e, inhttp.NewAuthMiddleware(fakeIdentity{actors}))

	return testEnv{echo: e, store: store, actors: actors}
}
