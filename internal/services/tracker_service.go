package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TrackerOptions controls how the tracker polls for confirmation
type TrackerOptions struct {
	Confirmations uint64
	PollInterval  time.Duration
	Timeout       time.Duration
}

// TrackerService drives transaction records from pending to a terminal status
type TrackerService interface {
	// Track polls until the record is confirmed or failed, or ctx is done. Abandoning
	// ctx stops observation only, the transaction stays on the network.
	Track(ctx context.Context, id string) (*models.TransactionRecord, error)
	// Watch runs Track in the background
	Watch(id string)
	// Resume watches every record still pending or confirming and, when nothing is
	// active yet, makes the newest of them the active record
	Resume() error
	SetActive(id string)
	// Active returns the most recently submitted record, nil when there is none
	Active() (*models.TransactionRecord, error)
	// IsBusy reports whether the active record is pending or confirming
	IsBusy() bool
	// Stop cancels background observation and waits for it to finish
	Stop()
}

type trackerService struct {
	client      ChainClient
	txService   TransactionService
	hookService HookService
	options     TrackerOptions

	mu       sync.RWMutex
	activeID string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewTrackerService(client ChainClient, txService TransactionService, hookService HookService, options TrackerOptions) TrackerService {
	if options.Confirmations == 0 {
		options.Confirmations = 1
	}
	if options.PollInterval <= 0 {
		options.PollInterval = 2 * time.Second
	}
	if options.Timeout <= 0 {
		options.Timeout = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &trackerService{
		client:      client,
		txService:   txService,
		hookService: hookService,
		options:     options,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (s *trackerService) Track(ctx context.Context, id string) (*models.TransactionRecord, error) {
	record, err := s.txService.GetTransactionRecord(id)
	if err != nil {
		return nil, err
	}
	if record.Status.IsTerminal() {
		return record, nil
	}
	if record.Hash == "" {
		return record, fmt.Errorf("record %s has not been dispatched", id)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.options.Timeout)
	defer cancel()

	ticker := time.NewTicker(s.options.PollInterval)
	defer ticker.Stop()

	for {
		record, err = s.poll(timeoutCtx, record)
		if err != nil || record.Status.IsTerminal() {
			return record, err
		}

		select {
		case <-timeoutCtx.Done():
			if ctx.Err() != nil {
				return record, ctx.Err()
			}
			return s.fail(record, fmt.Errorf("%w: not confirmed within %s", ErrConfirmationFailed, s.options.Timeout))
		case <-ticker.C:
		}
	}
}

// poll advances the record by at most two transitions
func (s *trackerService) poll(ctx context.Context, record *models.TransactionRecord) (*models.TransactionRecord, error) {
	hash := common.HexToHash(record.Hash)

	if record.Status == models.TransactionStatusPending {
		// once the node reports the transaction, in the pool or mined, it is confirming
		_, _, err := s.client.TransactionByHash(ctx, hash)
		if errors.Is(err, ethereum.NotFound) {
			return record, nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return record, nil
			}
			return s.fail(record, fmt.Errorf("%w: %v", ErrConfirmationFailed, err))
		}

		record, _, err = s.advance(record, TransactionStatusUpdate{Status: models.TransactionStatusConfirming})
		if err != nil {
			return nil, err
		}
	}

	if record.Status != models.TransactionStatusConfirming {
		return record, nil
	}

	receipt, err := s.client.TransactionReceipt(ctx, hash)
	if errors.Is(err, ethereum.NotFound) {
		return record, nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return record, nil
		}
		return s.fail(record, fmt.Errorf("%w: %v", ErrConfirmationFailed, err))
	}

	blockNumber := receipt.BlockNumber.Uint64()
	if receipt.Status == types.ReceiptStatusFailed {
		return s.fail(record, fmt.Errorf("%w: transaction reverted in block %d", ErrConfirmationFailed, blockNumber))
	}

	head, err := s.client.BlockNumber(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return record, nil
		}
		return s.fail(record, fmt.Errorf("%w: %v", ErrConfirmationFailed, err))
	}
	if head < blockNumber || head-blockNumber+1 < s.options.Confirmations {
		return record, nil
	}

	record, applied, err := s.advance(record, TransactionStatusUpdate{
		Status:      models.TransactionStatusConfirmed,
		BlockNumber: &blockNumber,
	})
	if err != nil || !applied {
		return record, err
	}
	log.Printf("Transaction %s confirmed in block %d", record.Hash, blockNumber)

	if err := s.hookService.OnTransactionConfirmed(*record); err != nil {
		log.Printf("Confirmation hooks failed for %s: %v", record.ID, err)
	}
	return record, nil
}

// advance applies update. When another observer has already moved the record on,
// the stored record is returned and applied is false.
func (s *trackerService) advance(record *models.TransactionRecord, update TransactionStatusUpdate) (*models.TransactionRecord, bool, error) {
	updated, err := s.txService.UpdateTransactionStatus(record.ID, update)
	if errors.Is(err, ErrInvalidTransition) {
		stored, err := s.txService.GetTransactionRecord(record.ID)
		return stored, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

// fail moves the record to failed and returns cause
func (s *trackerService) fail(record *models.TransactionRecord, cause error) (*models.TransactionRecord, error) {
	failed, applied, err := s.advance(record, TransactionStatusUpdate{
		Status:       models.TransactionStatusFailed,
		ErrorMessage: cause.Error(),
	})
	if err != nil {
		return record, errors.Join(cause, err)
	}
	if !applied && failed.Status != models.TransactionStatusFailed {
		return failed, nil
	}
	log.Printf("Transaction %s failed: %v", record.ID, cause)
	return failed, cause
}

func (s *trackerService) Watch(id string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.Track(s.ctx, id); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Stopped tracking %s: %v", id, err)
		}
	}()
}

func (s *trackerService) Resume() error {
	var inFlight []models.TransactionRecord
	for _, status := range []models.TransactionStatus{models.TransactionStatusPending, models.TransactionStatusConfirming} {
		records, err := s.txService.ListTransactionRecordsByStatus(status)
		if err != nil {
			return err
		}
		inFlight = append(inFlight, records...)
	}
	if len(inFlight) == 0 {
		return nil
	}

	newest := inFlight[0]
	for _, record := range inFlight[1:] {
		if record.CreatedAt.After(newest.CreatedAt) {
			newest = record
		}
	}
	s.mu.Lock()
	if s.activeID == "" {
		s.activeID = newest.ID
	}
	s.mu.Unlock()

	for _, record := range inFlight {
		s.Watch(record.ID)
	}
	return nil
}

func (s *trackerService) SetActive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = id
}

func (s *trackerService) Active() (*models.TransactionRecord, error) {
	s.mu.RLock()
	id := s.activeID
	s.mu.RUnlock()

	if id == "" {
		return nil, nil
	}
	return s.txService.GetTransactionRecord(id)
}

func (s *trackerService) IsBusy() bool {
	record, err := s.Active()
	if err != nil || record == nil {
		return false
	}
	return record.Status.IsInFlight()
}

func (s *trackerService) Stop() {
	s.cancel()
	s.wg.Wait()
}
