package services

import (
	"fmt"
	"time"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// allowedTransitions is the only set of status changes a record may go through.
// confirmed and failed are terminal.
var allowedTransitions = map[models.TransactionStatus][]models.TransactionStatus{
	models.TransactionStatusNone:       {models.TransactionStatusPending, models.TransactionStatusFailed},
	models.TransactionStatusPending:    {models.TransactionStatusConfirming, models.TransactionStatusFailed},
	models.TransactionStatusConfirming: {models.TransactionStatusConfirmed, models.TransactionStatusFailed},
}

// CanTransition reports whether a record may move from one status to another
func CanTransition(from, to models.TransactionStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type TransactionService interface {
	CreateTransactionRecord(req CreateTransactionRecordRequest) (*models.TransactionRecord, error)
	GetTransactionRecord(id string) (*models.TransactionRecord, error)
	// ListTransactionRecords returns all records, newest first
	ListTransactionRecords() ([]models.TransactionRecord, error)
	ListTransactionRecordsByStatus(status models.TransactionStatus) ([]models.TransactionRecord, error)
	// UpdateTransactionStatus applies a status change, returning ErrInvalidTransition
	// when the table above does not allow it
	UpdateTransactionStatus(id string, update TransactionStatusUpdate) (*models.TransactionRecord, error)
}

type CreateTransactionRecordRequest struct {
	Operation models.OperationKind         `json:"operation"`
	From      string                       `json:"from"`
	Call      models.ContractCall          `json:"call"`
	Metadata  []models.TransactionMetadata `json:"metadata"`
}

// TransactionStatusUpdate carries the new status and whatever the transition learned
type TransactionStatusUpdate struct {
	Status       models.TransactionStatus
	Hash         string
	ErrorMessage string
	BlockNumber  *uint64
}

type transactionService struct {
	db *gorm.DB
}

func NewTransactionService(db *gorm.DB) TransactionService {
	return &transactionService{db: db}
}

// CreateTransactionRecord stores a new record in the none state
func (s *transactionService) CreateTransactionRecord(req CreateTransactionRecordRequest) (*models.TransactionRecord, error) {
	if !req.Operation.IsValid() {
		return nil, fmt.Errorf("%w: unknown operation %q", ErrInvalidInput, req.Operation)
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = []models.TransactionMetadata{}
	}

	record := &models.TransactionRecord{
		ID:        uuid.New().String(),
		Operation: req.Operation,
		Status:    models.TransactionStatusNone,
		From:      req.From,
		To:        req.Call.Target.Hex(),
		Function:  req.Call.FunctionName,
		ValueWei:  req.Call.AttachedValue().String(),
		Metadata:  metadata,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// GetTransactionRecord returns the record by id
func (s *transactionService) GetTransactionRecord(id string) (*models.TransactionRecord, error) {
	var record models.TransactionRecord
	err := s.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *transactionService) ListTransactionRecords() ([]models.TransactionRecord, error) {
	var records []models.TransactionRecord
	err := s.db.Order("created_at desc").Find(&records).Error
	return records, err
}

func (s *transactionService) ListTransactionRecordsByStatus(status models.TransactionStatus) ([]models.TransactionRecord, error) {
	var records []models.TransactionRecord
	err := s.db.Where("status = ?", status).Order("created_at desc").Find(&records).Error
	return records, err
}

func (s *transactionService) UpdateTransactionStatus(id string, update TransactionStatusUpdate) (*models.TransactionRecord, error) {
	var record models.TransactionRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&record).Error; err != nil {
			return err
		}
		if !CanTransition(record.Status, update.Status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, record.Status, update.Status)
		}

		updates := map[string]interface{}{
			"status":     update.Status,
			"updated_at": time.Now(),
		}
		if update.Hash != "" {
			updates["hash"] = update.Hash
		}
		if update.ErrorMessage != "" {
			updates["error_message"] = update.ErrorMessage
		}
		if update.BlockNumber != nil {
			updates["block_number"] = *update.BlockNumber
		}

		if err := tx.Model(&models.TransactionRecord{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}
