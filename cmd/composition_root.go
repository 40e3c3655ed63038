package cmd

import (
	"log/slog"
	"net/http"

	inhttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/identity"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters to application handlers. Everything is
// created eagerly; handlers are cheap value types over shared factories.
type CompositionRoot struct {
	gormDB         *gorm.DB
	uowFactory     *postgres.GormUnitOfWorkFactory
	notifier       ports.Notifier
	identityClient ports.IdentityClient
	logger         *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	identityClient := identity.NewClient(
		config.IdentityServiceURL,
		&http.Client{Timeout: config.RequestTimeout},
		logger,
		identity.RetryConfig{
			MaxAttempts: config.IdentityRetryMaxAttempts,
			BaseDelay:   config.IdentityRetryBaseDelay,
			MaxDelay:    config.IdentityRetryMaxDelay,
		},
	)

	return CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:       notify.NewSlogNotifier(logger),
		identityClient: identityClient,
		logger:         logger,
	}
}

func (c *CompositionRoot) IdentityClient() ports.IdentityClient {
	return c.identityClient
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orderRatingUoWFactory() commands.OrderRatingUoWFactory {
	return FuncOrderRatingUoWFactory(func() commands.OrderRatingUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) crossUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateRegisterOrderCommandHandler() commands.RegisterOrderCommandHandler {
	return commands.NewRegisterOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.crossUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReassignOrderCommandHandler() commands.ReassignOrderCommandHandler {
	return commands.NewReassignOrderCommandHandler(c.crossUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateUpdateDeliveryDetailsCommandHandler() commands.UpdateDeliveryDetailsCommandHandler {
	return commands.NewUpdateDeliveryDetailsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordRatingCommandHandler() commands.RecordRatingCommandHandler {
	return commands.NewRecordRatingCommandHandler(c.orderRatingUoWFactory())
}

func (c *CompositionRoot) CreatePurgeDeliveredOrdersCommandHandler() commands.PurgeDeliveredOrdersCommandHandler {
	return commands.NewPurgeDeliveredOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCompleteDeliveredOrdersCommandHandler() commands.CompleteDeliveredOrdersCommandHandler {
	return commands.NewCompleteDeliveredOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRegisterCourierCommandHandler() commands.RegisterCourierCommandHandler {
	return commands.NewRegisterCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateSetCourierActivityCommandHandler() commands.SetCourierActivityCommandHandler {
	return commands.NewSetCourierActivityCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierRatingsQueryHandler() queries.GetCourierRatingsQueryHandler {
	return queries.NewGetCourierRatingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierStatsQueryHandler() queries.GetCourierStatsQueryHandler {
	return queries.NewGetCourierStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCouriersOverviewQueryHandler() queries.GetCouriersOverviewQueryHandler {
	return queries.NewGetCouriersOverviewQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the REST surface from the handlers above.
func (c *CompositionRoot) CreateHTTPServer() *inhttp.Server {
	return inhttp.NewServer(
		c.CreateRegisterOrderCommandHandler(),
		c.CreateAssignOrderCommandHandler(),
		c.CreateReassignOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateUpdateDeliveryDetailsCommandHandler(),
		c.CreateRecordRatingCommandHandler(),
		c.CreatePurgeDeliveredOrdersCommandHandler(),
		c.CreateRegisterCourierCommandHandler(),
		c.CreateSetCourierActivityCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetCourierRatingsQueryHandler(),
		c.CreateGetCourierStatsQueryHandler(),
		c.CreateGetCouriersOverviewQueryHandler(),
	)
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager(config Config) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCompleteDeliveredOrdersCommandHandler(),
		c.CreatePurgeDeliveredOrdersCommandHandler(),
		jobs.Config{
			CompletionSchedule: config.CompletionSchedule,
			CompletionGrace:    config.CompletionGrace,
			PurgeSchedule:      config.PurgeSchedule,
			PurgeRetention:     config.PurgeRetention,
		},
		c.logger,
	)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderRatingUoWFactory func() commands.OrderRatingUoW

func (f FuncOrderRatingUoWFactory) Create() commands.OrderRatingUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
