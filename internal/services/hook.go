package services

import "github.com/blockchainBoi/secure-syndicate/internal/models"

// Hook is used to perform actions when a transaction is confirmed base on its operation
type Hook interface {
	// CanHandle is used to check if the hook can handle the operation
	CanHandle(operation models.OperationKind) bool
	// OnTransactionConfirmed is called when a transaction record reaches confirmed
	OnTransactionConfirmed(record models.TransactionRecord) error
}
