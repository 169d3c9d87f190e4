package changefeed_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/transactioncloud/transactioncloud-go/changefeed"
)

type StoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *sql.DB
	store     *changefeed.Store
}

func (suite *StoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("changefeed"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		suite.T().Fatalf("Failed to start postgres container: %s", err)
	}
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		suite.T().Fatalf("Failed to get connection string: %s", err)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		suite.T().Fatalf("Failed to open database: %s", err)
	}
	suite.db = db

	suite.store = changefeed.NewStore(db, testLogger())
	if err := suite.store.EnsureSchema(ctx); err != nil {
		suite.T().Fatalf("Failed to create schema: %s", err)
	}
}

func (suite *StoreIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.db.Close()
	}
	if suite.container != nil {
		suite.container.Terminate(context.Background())
	}
}

func (suite *StoreIntegrationTestSuite) TestUpsertAndGet() {
	ctx := context.Background()
	tx := changedTransaction(suite.T(), "TC-PR_store_one")

	err := suite.store.UpsertChangedTransaction(ctx, tx)
	suite.Require().NoError(err)

	record, err := suite.store.GetRecord(ctx, "TC-PR_store_one")
	suite.Require().NoError(err)
	suite.Require().NotNil(record)

	suite.Equal("TC-PR_store_one", record.ID)
	suite.Equal("CHANGED_STATUS_NEW", record.ChangedStatus)
	suite.Equal("customer@example.org", record.Email)
	suite.Equal("SUBSCRIPTION", record.TransactionType)
	suite.Nil(record.Payload)
	suite.Equal(tx.CreateDate().Format("2006-01-02"), record.CreateDate.Format("2006-01-02"))
	suite.Equal(record.FirstSeenAt, record.LastSeenAt)
}

func (suite *StoreIntegrationTestSuite) TestUpsertRefreshesExistingRow() {
	ctx := context.Background()

	err := suite.store.UpsertChangedTransaction(ctx, changedTransaction(suite.T(), "TC-PR_store_two"))
	suite.Require().NoError(err)

	before, err := suite.store.GetRecord(ctx, "TC-PR_store_two")
	suite.Require().NoError(err)
	suite.Require().NotNil(before)

	err = suite.store.UpsertChangedTransaction(ctx, changedTransaction(suite.T(), "TC-PR_store_two"))
	suite.Require().NoError(err)

	after, err := suite.store.GetRecord(ctx, "TC-PR_store_two")
	suite.Require().NoError(err)
	suite.Require().NotNil(after)

	suite.Equal(before.FirstSeenAt, after.FirstSeenAt)
	suite.True(after.LastSeenAt.After(before.LastSeenAt) || after.LastSeenAt.Equal(before.LastSeenAt))

	count, err := suite.store.CountRecords(ctx)
	suite.Require().NoError(err)
	suite.GreaterOrEqual(count, 1)
}

func (suite *StoreIntegrationTestSuite) TestGetRecordMissing() {
	record, err := suite.store.GetRecord(context.Background(), "TC-PR_nope")
	suite.Require().NoError(err)
	suite.Nil(record)
}

func TestStoreIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	suite.Run(t, new(StoreIntegrationTestSuite))
}
