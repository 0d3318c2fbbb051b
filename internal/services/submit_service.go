package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
)

// SubmitService turns an operation trigger into exactly one dispatched transaction
type SubmitService interface {
	// Submit checks the session, builds the call, dispatches it once and starts tracking.
	// On dispatch failure the failed record is returned together with ErrSubmissionFailed.
	// A transaction that was sent but could not be recorded as pending is returned with
	// its hash set, also wrapped in ErrSubmissionFailed.
	Submit(ctx context.Context, operation models.OperationKind, form models.FormInput) (*models.TransactionRecord, error)
}

type submitService struct {
	wallet     WalletService
	evm        EvmService
	dispatcher DispatchService
	txService  TransactionService
	tracker    TrackerService

	mu sync.Mutex
}

func NewSubmitService(wallet WalletService, evm EvmService, dispatcher DispatchService, txService TransactionService, tracker TrackerService) SubmitService {
	return &submitService{
		wallet:     wallet,
		evm:        evm,
		dispatcher: dispatcher,
		txService:  txService,
		tracker:    tracker,
	}
}

func (s *submitService) Submit(ctx context.Context, operation models.OperationKind, form models.FormInput) (*models.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.wallet.Session()
	if !session.IsConnected() {
		return nil, ErrNotConnected
	}
	if s.tracker.IsBusy() {
		return nil, ErrSubmissionInProgress
	}

	call, err := s.evm.BuildContractCall(operation, form)
	if err != nil {
		return nil, err
	}

	record, err := s.txService.CreateTransactionRecord(CreateTransactionRecordRequest{
		Operation: operation,
		From:      session.AccountAddress.Hex(),
		Call:      call,
		Metadata:  s.evm.CallMetadata(operation, call),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction record: %w", err)
	}
	s.tracker.SetActive(record.ID)

	hash, dispatchErr := s.dispatcher.Dispatch(ctx, call)
	if dispatchErr != nil {
		log.Printf("Submission of %s failed: %v", operation, dispatchErr)
		failed, err := s.txService.UpdateTransactionStatus(record.ID, TransactionStatusUpdate{
			Status:       models.TransactionStatusFailed,
			ErrorMessage: dispatchErr.Error(),
		})
		if err != nil {
			return record, fmt.Errorf("%w: %w", ErrSubmissionFailed, dispatchErr)
		}
		return failed, fmt.Errorf("%w: %w", ErrSubmissionFailed, dispatchErr)
	}

	pending, err := s.txService.UpdateTransactionStatus(record.ID, TransactionStatusUpdate{
		Status: models.TransactionStatusPending,
		Hash:   hash.Hex(),
	})
	if err != nil {
		log.Printf("Transaction %s was sent but could not be recorded: %v", hash.Hex(), err)
		record.Hash = hash.Hex()
		return record, fmt.Errorf("%w: transaction %s was sent but could not be recorded: %w", ErrSubmissionFailed, hash.Hex(), err)
	}

	s.tracker.Watch(pending.ID)
	return pending, nil
}
