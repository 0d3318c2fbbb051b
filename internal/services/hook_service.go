package services

import (
	"fmt"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
)

type HookService interface {
	AddHook(hook Hook) error
	OnTransactionConfirmed(record models.TransactionRecord) error
}

type hookService struct {
	hooks []Hook
}

func NewHookService() HookService {
	return &hookService{
		hooks: []Hook{},
	}
}

func (h *hookService) AddHook(hook Hook) error {
	if hook == nil {
		return fmt.Errorf("hook is nil")
	}
	h.hooks = append(h.hooks, hook)
	return nil
}

func (h *hookService) OnTransactionConfirmed(record models.TransactionRecord) error {
	if record.Status != models.TransactionStatusConfirmed {
		return fmt.Errorf("record %s is %s, not confirmed", record.ID, record.Status)
	}
	for _, hook := range h.hooks {
		if hook.CanHandle(record.Operation) {
			if err := hook.OnTransactionConfirmed(record); err != nil {
				return err
			}
		}
	}
	return nil
}
