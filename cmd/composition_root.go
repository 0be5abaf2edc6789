package cmd

import (
	"log/slog"
	"time"

	"orderdesk/internal/adapters/out/menucache"
	"orderdesk/internal/adapters/out/postgres"
	"orderdesk/internal/adapters/out/postgres/menucatalog"
	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/application/views"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/jobs"
	"orderdesk/internal/notifications"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const defaultMenuCacheTTL = time.Minute

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hub        *notifications.Hub
	assembler  views.Assembler
	clock      systemClock
	ids        randomIDGenerator
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var catalog ports.MenuCatalog = menucatalog.NewGormMenuCatalog(gormDB)

	if config.RedisAddr != "" {
		ttl := defaultMenuCacheTTL
		if parsed, err := time.ParseDuration(config.MenuCacheTTL); err == nil && parsed > 0 {
			ttl = parsed
		}

		client := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
		})
		catalog = menucache.NewCachedMenuCatalog(catalog, client, ttl, logger)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        notifications.NewHub(logger),
		assembler:  views.NewAssembler(catalog),
		logger:     logger,
	}
}

// Hub exposes the notification hub for the streaming endpoint.
func (c *CompositionRoot) Hub() *notifications.Hub {
	return c.hub
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.assembler, c.hub, c.clock, c.ids)
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.orderUoWFactory(), c.assembler, c.hub, c.clock)
}

func (c *CompositionRoot) CreateAdvanceOrderProgressCommandHandler() commands.AdvanceOrderProgressCommandHandler {
	return commands.NewAdvanceOrderProgressCommandHandler(c.orderUoWFactory(), c.assembler, c.hub, c.clock)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.queryRepository(), c.assembler)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.queryRepository(), c.assembler)
}

func (c *CompositionRoot) CreateGetUndeliveredOrderIDsQueryHandler() queries.GetUndeliveredOrderIDsQueryHandler {
	return queries.NewGetUndeliveredOrderIDsQueryHandler(c.gormDB)
}

// CreateJobManager wires the progress simulation job when enabled by config.
func (c *CompositionRoot) CreateJobManager(config Config) *jobs.JobManager {
	if config.SimulateProgress != "true" {
		return jobs.NewJobManager(nil)
	}

	interval := 30 * time.Second
	if parsed, err := time.ParseDuration(config.ProgressInterval); err == nil && parsed > 0 {
		interval = parsed
	}

	progressJob := jobs.NewOrderProgressJob(
		c.CreateGetUndeliveredOrderIDsQueryHandler(),
		c.CreateAdvanceOrderProgressCommandHandler(),
		interval,
		c.logger,
	)

	return jobs.NewJobManager(progressJob)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// queryRepository returns a repository bound to the main connection, outside
// any transaction. Reads need no unit of work.
func (c *CompositionRoot) queryRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB, noopTracker{})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type randomIDGenerator struct{}

func (randomIDGenerator) NewID() kernel.UUID {
	return kernel.NewUUID()
}
