package hooks

import (
	"fmt"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/blockchainBoi/secure-syndicate/internal/services"
)

type InvestmentHook struct {
	portfolioService services.PortfolioService
}

// CanHandle implements Hook.
func (h *InvestmentHook) CanHandle(operation models.OperationKind) bool {
	return operation == models.OperationInvest
}

// OnTransactionConfirmed implements Hook.
func (h *InvestmentHook) OnTransactionConfirmed(record models.TransactionRecord) error {
	projectID, ok := record.MetadataValue(services.MetadataProjectID)
	if !ok {
		return fmt.Errorf("record %s has no project id", record.ID)
	}

	return h.portfolioService.RecordInvestment(&models.Investment{
		ProjectID:       projectID,
		InvestorAddress: record.From,
		ValueWei:        record.ValueWei,
		TransactionHash: record.Hash,
	})
}

func NewInvestmentHook(portfolioService services.PortfolioService) services.Hook {
	return &InvestmentHook{
		portfolioService: portfolioService,
	}
}
