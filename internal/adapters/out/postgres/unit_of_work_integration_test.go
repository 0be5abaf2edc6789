package postgres_test

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/postgres"
	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tc_postgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GormUnitOfWorkTestSuite struct {
	suite.Suite
	container *tc_postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *GormUnitOfWorkTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tc_postgres.Run(ctx,
		"postgres:15-alpine",
		tc_postgres.WithDatabase("testdb"),
		tc_postgres.WithUsername("testuser"),
		tc_postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *GormUnitOfWorkTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormUnitOfWorkTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GormUnitOfWorkTestSuite) newOrder() *order.Order {
	item, err := order.NewOrderItem(kernel.NewUUID(), 1, decimal.NewFromFloat(9.00))
	suite.Require().NoError(err)
	customer, err := order.NewCustomer("Dana", "12 Hill Rd", "+1 555 0102")
	suite.Require().NoError(err)
	o, err := order.NewOrder(
		kernel.NewUUID(),
		[]order.OrderItem{item},
		decimal.NewFromFloat(9.00),
		customer,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *GormUnitOfWorkTestSuite) TestCommit_MakesChangesVisible() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	err := uow.OrderRepository().Add(ctx, o)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	restored, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(o.ID().IsEqual(restored.ID()))
}

func (suite *GormUnitOfWorkTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	err := uow.OrderRepository().Add(ctx, o)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormUnitOfWorkTestSuite) TestRollback_AfterCommit_IsNoOp() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
}

func (suite *GormUnitOfWorkTestSuite) TestBegin_Twice_DoesNotNest() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *GormUnitOfWorkTestSuite) TestGetForUpdate_SerializesConcurrentMutations() {
	ctx := context.Background()
	o := suite.newOrder()

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, o))
	suite.Require().NoError(setup.Commit(ctx))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	locked, err := first.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	// The second writer must wait for the row lock; it only proceeds after
	// the first transaction commits, and then sees the committed change.
	secondDone := make(chan order.Status, 1)
	go func() {
		second := suite.factory.Create()
		if beginErr := second.Begin(ctx); beginErr != nil {
			return
		}
		defer func() {
			_ = second.Rollback(ctx)
		}()

		contended, lockErr := second.OrderRepository().GetForUpdate(ctx, o.ID())
		if lockErr != nil {
			return
		}
		secondDone <- contended.Status()
	}()

	select {
	case <-secondDone:
		suite.Fail("second transaction acquired the row lock while it was held")
	case <-time.After(200 * time.Millisecond):
	}

	err = locked.SetStatus(order.Preparing, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(first.OrderRepository().Update(ctx, locked))
	suite.Require().NoError(first.Commit(ctx))

	select {
	case status := <-secondDone:
		suite.Equal(order.Preparing, status)
	case <-time.After(5 * time.Second):
		suite.Fail("second transaction did not proceed after the lock was released")
	}
}

func TestGormUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(GormUnitOfWorkTestSuite))
}
