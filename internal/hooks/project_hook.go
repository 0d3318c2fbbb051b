package hooks

import (
	"fmt"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/blockchainBoi/secure-syndicate/internal/services"
)

type ProjectHook struct {
	portfolioService services.PortfolioService
}

// CanHandle implements Hook.
func (h *ProjectHook) CanHandle(operation models.OperationKind) bool {
	return operation == models.OperationCreateProject
}

// OnTransactionConfirmed implements Hook.
func (h *ProjectHook) OnTransactionConfirmed(record models.TransactionRecord) error {
	name, ok := record.MetadataValue(services.MetadataName)
	if !ok {
		return fmt.Errorf("record %s has no project name", record.ID)
	}
	description, _ := record.MetadataValue(services.MetadataDescription)
	target, _ := record.MetadataValue(services.MetadataTargetAmount)
	duration, _ := record.MetadataValue(services.MetadataDuration)

	return h.portfolioService.RecordProject(&models.Project{
		Name:            name,
		Description:     description,
		TargetAmount:    target,
		DurationDays:    duration,
		CreatorAddress:  record.From,
		TransactionHash: record.Hash,
	})
}

func NewProjectHook(portfolioService services.PortfolioService) services.Hook {
	return &ProjectHook{
		portfolioService: portfolioService,
	}
}
