package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/courierrepo"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// CourierRepositoryIntegrationTestSuite verifies courier persistence behavior
// against a real PostgreSQL container.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
	tracker    *MockAggregateTracker
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = courierrepo.NewGormCourierRepository(suite.db, suite.tracker)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	testCourier, err := courier.NewCourier(kernel.NewUUID(), "Jamie Fox", "jamie@example.com", "+1555123")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	loaded, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.Equal("Jamie Fox", loaded.Name())
	suite.Equal("jamie@example.com", loaded.Email())
	suite.Equal("+1555123", loaded.Phone())
	suite.True(loaded.IsActive())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_DeactivationPersists() {
	ctx := context.Background()

	testCourier, err := courier.NewCourier(kernel.NewUUID(), "Jamie Fox", "jamie@example.com", "")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	testCourier.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, testCourier))

	loaded, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.False(loaded.IsActive())
	suite.Require().ErrorIs(loaded.EnsureActive(), errs.ErrCourierInactive)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_MissingCourier() {
	testCourier, err := courier.NewCourier(kernel.NewUUID(), "Ghost", "ghost@example.com", "")
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), testCourier)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
