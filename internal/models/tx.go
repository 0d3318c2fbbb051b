package models

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type TransactionStatus string

type OperationKind string

const (
	TransactionStatusNone       TransactionStatus = "none"
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusConfirming TransactionStatus = "confirming"
	TransactionStatusConfirmed  TransactionStatus = "confirmed"
	TransactionStatusFailed     TransactionStatus = "failed"
)

const (
	OperationJoin          OperationKind = "join"
	OperationCreateProject OperationKind = "createProject"
	OperationInvest        OperationKind = "invest"
)

// IsTerminal reports whether no further transition is allowed from this status
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusConfirmed || s == TransactionStatusFailed
}

// IsInFlight reports whether the transaction has been dispatched but not settled
func (s TransactionStatus) IsInFlight() bool {
	return s == TransactionStatusPending || s == TransactionStatusConfirming
}

// Message is the status line shown next to a transaction
func (s TransactionStatus) Message() string {
	switch s {
	case TransactionStatusPending:
		return "Encrypting data and submitting transaction..."
	case TransactionStatusConfirming:
		return "Waiting for confirmation..."
	case TransactionStatusConfirmed:
		return "Transaction confirmed! Your encrypted data is now on-chain."
	case TransactionStatusFailed:
		return "Transaction failed"
	default:
		return ""
	}
}

// IsValid reports whether the operation is one of the three contract operations
func (o OperationKind) IsValid() bool {
	switch o {
	case OperationJoin, OperationCreateProject, OperationInvest:
		return true
	}
	return false
}

type TransactionMetadata struct {
	Key   string `gorm:"not null" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

// ContractCall is a single SecureSyndicate method invocation. It is built fresh for each
// submission and must not be modified once dispatched.
type ContractCall struct {
	Target       common.Address `json:"target"`
	FunctionName string         `json:"function_name"`
	// Args are ordered as the ABI declares them. Encoded fields are []byte, integers *big.Int.
	Args []any `json:"args"`
	// Value is the attached amount in wei, nil when nothing is attached
	Value *big.Int `json:"value,omitempty"`
}

// AttachedValue returns the call value, treating a missing value as zero
func (c ContractCall) AttachedValue() *big.Int {
	if c.Value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(c.Value)
}

// TransactionRecord tracks one dispatched SecureSyndicate call through confirmation
type TransactionRecord struct {
	ID        string        `gorm:"primaryKey" json:"id"`
	Operation OperationKind `gorm:"not null;index" json:"operation"`
	// Hash is empty until the wallet hands back a transaction hash
	Hash         string            `gorm:"index" json:"hash,omitempty"`
	Status       TransactionStatus `gorm:"default:none" json:"status"`
	ErrorMessage string            `json:"error_message,omitempty"`
	From         string            `json:"from"`
	To           string            `gorm:"not null" json:"to"`
	Function     string            `gorm:"not null" json:"function"`
	// ValueWei is the attached value in wei as a decimal string
	ValueWei    string                `gorm:"not null;default:0" json:"value_wei"`
	BlockNumber *uint64               `json:"block_number,omitempty"`
	Metadata    []TransactionMetadata `gorm:"serializer:json" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MetadataValue returns the metadata value stored under key
func (r *TransactionRecord) MetadataValue(key string) (string, bool) {
	for _, m := range r.Metadata {
		if m.Key == key {
			return m.Value, true
		}
	}
	return "", false
}
