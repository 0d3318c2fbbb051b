package services

import "errors"

var (
	// ErrNotConnected is returned when an operation needs a connected wallet session
	ErrNotConnected = errors.New("wallet not connected")
	// ErrInvalidInput is returned when a form field cannot be parsed
	ErrInvalidInput = errors.New("invalid input")
	// ErrSubmissionFailed is returned when the wallet or the node rejects a transaction
	ErrSubmissionFailed = errors.New("submission failed")
	// ErrConfirmationFailed is returned when a transaction reverts or is not confirmed in time
	ErrConfirmationFailed = errors.New("confirmation failed")
	// ErrSubmissionInProgress is returned while the active transaction is still pending or confirming
	ErrSubmissionInProgress = errors.New("a transaction is already in progress")
	ErrInvalidTransition    = errors.New("invalid transaction status transition")
	ErrUnknownConnector     = errors.New("unknown wallet connector")
)
