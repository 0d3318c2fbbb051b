package hooks

import (
	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/blockchainBoi/secure-syndicate/internal/services"
)

type MembershipHook struct {
	portfolioService services.PortfolioService
}

// CanHandle implements Hook.
func (h *MembershipHook) CanHandle(operation models.OperationKind) bool {
	return operation == models.OperationJoin
}

// OnTransactionConfirmed implements Hook.
// The reputation and contribution stay encoded; the attached value is public.
func (h *MembershipHook) OnTransactionConfirmed(record models.TransactionRecord) error {
	return h.portfolioService.RecordMembership(&models.Membership{
		MemberAddress:   record.From,
		ContributionWei: record.ValueWei,
		TransactionHash: record.Hash,
	})
}

func NewMembershipHook(portfolioService services.PortfolioService) services.Hook {
	return &MembershipHook{
		portfolioService: portfolioService,
	}
}
