package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/blockchainBoi/secure-syndicate/internal/services"
	"github.com/stretchr/testify/suite"
)

type TrackerServiceTestSuite struct {
	suite.Suite
	dbService   services.DBService
	txService   services.TransactionService
	hookService services.HookService
	hook        *mockHook
	chain       *fakeChain
	tracker     services.TrackerService
}

func (suite *TrackerServiceTestSuite) SetupTest() {
	dbService, err := services.NewSqliteDBService(":memory:")
	suite.Require().NoError(err)
	suite.dbService = dbService
	suite.txService = services.NewTransactionService(dbService.GetDB())

	suite.hookService = services.NewHookService()
	suite.hook = newMockHook("all", models.OperationJoin, models.OperationCreateProject, models.OperationInvest)
	suite.Require().NoError(suite.hookService.AddHook(suite.hook))

	suite.chain = newFakeChain()
	suite.tracker = suite.newTracker(services.TrackerOptions{
		Confirmations: 1,
		PollInterval:  5 * time.Millisecond,
		Timeout:       2 * time.Second,
	})
}

func (suite *TrackerServiceTestSuite) TearDownTest() {
	suite.tracker.Stop()
	suite.dbService.Close()
}

func (suite *TrackerServiceTestSuite) newTracker(options services.TrackerOptions) services.TrackerService {
	return services.NewTrackerService(suite.chain, suite.txService, suite.hookService, options)
}

func (suite *TrackerServiceTestSuite) createRecord(status models.TransactionStatus) *models.TransactionRecord {
	record, err := suite.txService.CreateTransactionRecord(services.CreateTransactionRecordRequest{
		Operation: models.OperationJoin,
		Call:      models.ContractCall{Target: testContractAddress, FunctionName: "joinSyndicate"},
	})
	suite.Require().NoError(err)

	path := map[models.TransactionStatus][]models.TransactionStatus{
		models.TransactionStatusNone:       {},
		models.TransactionStatusPending:    {models.TransactionStatusPending},
		models.TransactionStatusConfirming: {models.TransactionStatusPending, models.TransactionStatusConfirming},
		models.TransactionStatusConfirmed:  {models.TransactionStatusPending, models.TransactionStatusConfirming, models.TransactionStatusConfirmed},
		models.TransactionStatusFailed:     {models.TransactionStatusFailed},
	}
	for _, next := range path[status] {
		record, err = suite.txService.UpdateTransactionStatus(record.ID, services.TransactionStatusUpdate{
			Status: next,
			Hash:   "0x5e1b2f6a4c7d8e9f00112233445566778899aabbccddeeff0011223344556677",
		})
		suite.Require().NoError(err)
	}
	return record
}

func (suite *TrackerServiceTestSuite) TestTrackToConfirmed() {
	record := suite.createRecord(models.TransactionStatusPending)
	suite.chain.set(func(c *fakeChain) {
		c.known = true
		c.mined = true
	})

	tracked, err := suite.tracker.Track(context.Background(), record.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TransactionStatusConfirmed, tracked.Status)
	suite.Require().NotNil(tracked.BlockNumber)
	suite.Equal(uint64(10), *tracked.BlockNumber)

	suite.Equal(1, suite.hook.callCount)
	suite.Equal(record.ID, suite.hook.lastRecord.ID)
}

func (suite *TrackerServiceTestSuite) TestConcurrentObserversConfirmOnce() {
	record := suite.createRecord(models.TransactionStatusPending)
	suite.tracker.Watch(record.ID)
	suite.tracker.Watch(record.ID)
	suite.chain.set(func(c *fakeChain) {
		c.known = true
		c.mined = true
	})

	tracked, err := suite.tracker.Track(context.Background(), record.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TransactionStatusConfirmed, tracked.Status)

	suite.tracker.Stop()
	suite.Equal(1, suite.hook.calls())
}

func (suite *TrackerServiceTestSuite) TestWaitsInPoolAndForConfirmations() {
	suite.tracker = suite.newTracker(services.TrackerOptions{
		Confirmations: 3,
		PollInterval:  5 * time.Millisecond,
		Timeout:       2 * time.Second,
	})
	record := suite.createRecord(models.TransactionStatusPending)
	suite.chain.set(func(c *fakeChain) { c.known = true })

	suite.tracker.Watch(record.ID)

	// known in the pool is confirming
	suite.Eventually(func() bool {
		stored, err := suite.txService.GetTransactionRecord(record.ID)
		return err == nil && stored.Status == models.TransactionStatusConfirming
	}, time.Second, 5*time.Millisecond)

	// not mined yet
	time.Sleep(30 * time.Millisecond)
	stored, err := suite.txService.GetTransactionRecord(record.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TransactionStatusConfirming, stored.Status)

	// mined, one of three confirmations
	suite.chain.set(func(c *fakeChain) { c.mined = true })
	time.Sleep(30 * time.Millisecond)
	stored, err = suite.txService.GetTransactionRecord(record.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TransactionStatusConfirming, stored.Status)

	suite.chain.set(func(c *fakeChain) { c.head = 12 })
	suite.Eventually(func() bool {
		stored, err := suite.txService.GetTransactionRecord(record.ID)
		return err == nil && stored.Status == models.TransactionStatusConfirmed
	}, time.Second, 5*time.Millisecond)
}

func (suite *TrackerServiceTestSuite) TestRevertedTransactionFails() {
	record := suite.createRecord(models.TransactionStatusPending)
	suite.chain.set(func(c *fakeChain) {
		c.known = true
		c.mined = true
		c.receiptStatus = 0
	})

	tracked, err := suite.tracker.Track(context.Background(), record.ID)
	suite.ErrorIs(err, services.ErrConfirmationFailed)
	suite.Equal(models.TransactionStatusFailed, tracked.Status)
	suite.Contains(tracked.ErrorMessage, "reverted")
	suite.Equal(0, suite.hook.callCount)
}

func (suite *TrackerServiceTestSuite) TestRPCErrorFails() {
	record := suite.createRecord(models.TransactionStatusPending)
	suite.chain.set(func(c *fakeChain) { c.rpcErr = errors.New("connection refused") })

	tracked, err := suite.tracker.Track(context.Background(), record.ID)
	suite.ErrorIs(err, services.ErrConfirmationFailed)
	suite.Equal(models.TransactionStatusFailed, tracked.Status)
	suite.Contains(tracked.ErrorMessage, "connection refused")
}

func (suite *TrackerServiceTestSuite) TestTimeoutFails() {
	suite.tracker = suite.newTracker(services.TrackerOptions{
		Confirmations: 1,
		PollInterval:  5 * time.Millisecond,
		Timeout:       40 * time.Millisecond,
	})
	record := suite.createRecord(models.TransactionStatusPending)

	tracked, err := suite.tracker.Track(context.Background(), record.ID)
	suite.ErrorIs(err, services.ErrConfirmationFailed)
	suite.Equal(models.TransactionStatusFailed, tracked.Status)
	suite.Contains(tracked.ErrorMessage, "not confirmed within")
}

func (suite *TrackerServiceTestSuite) TestAbandonedObservationKeepsStatus() {
	record := suite.createRecord(models.TransactionStatusPending)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := suite.tracker.Track(ctx, record.ID)
	suite.ErrorIs(err, context.DeadlineExceeded)

	stored, err := suite.txService.GetTransactionRecord(record.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TransactionStatusPending, stored.Status)
}

func (suite *TrackerServiceTestSuite) TestTerminalRecordsAreLeftAlone() {
	for _, status := range []models.TransactionStatus{models.TransactionStatusConfirmed, models.TransactionStatusFailed} {
		record := suite.createRecord(status)
		tracked, err := suite.tracker.Track(context.Background(), record.ID)
		suite.Require().NoError(err)
		suite.Equal(status, tracked.Status)
	}
	suite.Equal(0, suite.hook.callCount)
}

func (suite *TrackerServiceTestSuite) TestUndispatchedRecord() {
	record := suite.createRecord(models.TransactionStatusNone)
	_, err := suite.tracker.Track(context.Background(), record.ID)
	suite.Error(err)
}

func (suite *TrackerServiceTestSuite) TestActiveAndBusy() {
	active, err := suite.tracker.Active()
	suite.Require().NoError(err)
	suite.Nil(active)
	suite.False(suite.tracker.IsBusy())

	pending := suite.createRecord(models.TransactionStatusPending)
	suite.tracker.SetActive(pending.ID)
	active, err = suite.tracker.Active()
	suite.Require().NoError(err)
	suite.Equal(pending.ID, active.ID)
	suite.True(suite.tracker.IsBusy())

	confirming := suite.createRecord(models.TransactionStatusConfirming)
	suite.tracker.SetActive(confirming.ID)
	suite.True(suite.tracker.IsBusy())

	failed := suite.createRecord(models.TransactionStatusFailed)
	suite.tracker.SetActive(failed.ID)
	suite.False(suite.tracker.IsBusy())
}

func (suite *TrackerServiceTestSuite) TestResume() {
	pending := suite.createRecord(models.TransactionStatusPending)
	confirming := suite.createRecord(models.TransactionStatusConfirming)
	suite.chain.set(func(c *fakeChain) {
		c.known = true
		c.mined = true
	})

	suite.Require().NoError(suite.tracker.Resume())

	for _, id := range []string{pending.ID, confirming.ID} {
		suite.Eventually(func() bool {
			stored, err := suite.txService.GetTransactionRecord(id)
			return err == nil && stored.Status == models.TransactionStatusConfirmed
		}, time.Second, 5*time.Millisecond)
	}
}

func (suite *TrackerServiceTestSuite) TestResumeRestoresActiveRecord() {
	suite.createRecord(models.TransactionStatusConfirmed)
	older := suite.createRecord(models.TransactionStatusPending)
	time.Sleep(5 * time.Millisecond)
	newest := suite.createRecord(models.TransactionStatusConfirming)

	// the chain does not know either transaction yet, so both stay in flight
	suite.Require().NoError(suite.tracker.Resume())

	active, err := suite.tracker.Active()
	suite.Require().NoError(err)
	suite.Require().NotNil(active)
	suite.Equal(newest.ID, active.ID)
	suite.NotEqual(older.ID, active.ID)
	suite.True(suite.tracker.IsBusy())

	suite.chain.set(func(c *fakeChain) {
		c.known = true
		c.mined = true
	})
	suite.Eventually(func() bool { return !suite.tracker.IsBusy() }, time.Second, 5*time.Millisecond)
}

func (suite *TrackerServiceTestSuite) TestResumeKeepsExistingActiveRecord() {
	current := suite.createRecord(models.TransactionStatusFailed)
	suite.tracker.SetActive(current.ID)
	suite.createRecord(models.TransactionStatusPending)

	suite.Require().NoError(suite.tracker.Resume())

	active, err := suite.tracker.Active()
	suite.Require().NoError(err)
	suite.Equal(current.ID, active.ID)
}

func TestTrackerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TrackerServiceTestSuite))
}
