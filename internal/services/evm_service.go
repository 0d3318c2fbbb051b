package services

import (
	"fmt"

	"github.com/blockchainBoi/secure-syndicate/internal/contracts"
	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/blockchainBoi/secure-syndicate/internal/utils"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Metadata keys stored on transaction records. Only plaintext arguments are kept.
const (
	MetadataName         = "name"
	MetadataDescription  = "description"
	MetadataTargetAmount = "target_amount"
	MetadataDuration     = "duration"
	MetadataProjectID    = "project_id"
)

// EvmService builds SecureSyndicate contract calls from form input
type EvmService interface {
	ContractAddress() common.Address
	ABI() abi.ABI
	// BuildContractCall reads the form matching operation and returns a fresh call
	BuildContractCall(operation models.OperationKind, form models.FormInput) (models.ContractCall, error)
	BuildJoinCall(form models.JoinForm) (models.ContractCall, error)
	BuildCreateProjectCall(form models.ProjectForm) (models.ContractCall, error)
	BuildInvestCall(form models.InvestmentForm) (models.ContractCall, error)
	// GetCallData ABI-encodes the call including its selector
	GetCallData(call models.ContractCall) ([]byte, error)
	// CallMetadata returns the plaintext arguments worth recording for a call
	CallMetadata(operation models.OperationKind, call models.ContractCall) []models.TransactionMetadata
}

type evmService struct {
	contractAddress common.Address
	contractABI     abi.ABI
	encoder         FieldEncoder
}

// NewEvmService creates a call builder for the SecureSyndicate contract at contractAddress
func NewEvmService(contractAddress common.Address, encoder FieldEncoder) (EvmService, error) {
	if encoder == nil {
		return nil, fmt.Errorf("field encoder is required")
	}
	parsedABI, err := contracts.SecureSyndicateABI()
	if err != nil {
		return nil, err
	}
	return &evmService{
		contractAddress: contractAddress,
		contractABI:     parsedABI,
		encoder:         encoder,
	}, nil
}

func (s *evmService) ContractAddress() common.Address {
	return s.contractAddress
}

func (s *evmService) ABI() abi.ABI {
	return s.contractABI
}

func (s *evmService) BuildContractCall(operation models.OperationKind, form models.FormInput) (models.ContractCall, error) {
	switch operation {
	case models.OperationJoin:
		return s.BuildJoinCall(form.Join)
	case models.OperationCreateProject:
		return s.BuildCreateProjectCall(form.Project)
	case models.OperationInvest:
		return s.BuildInvestCall(form.Investment)
	default:
		return models.ContractCall{}, fmt.Errorf("%w: unknown operation %q", ErrInvalidInput, operation)
	}
}

// BuildJoinCall encodes reputation and contribution and attaches the contribution in wei
func (s *evmService) BuildJoinCall(form models.JoinForm) (models.ContractCall, error) {
	value, err := utils.ParseEtherToWei(form.Contribution)
	if err != nil {
		return models.ContractCall{}, fmt.Errorf("%w: contribution: %v", ErrInvalidInput, err)
	}

	return models.ContractCall{
		Target:       s.contractAddress,
		FunctionName: contracts.MethodJoinSyndicate,
		Args: []any{
			s.encoder.Encode(form.Reputation),
			s.encoder.Encode(form.Contribution),
			[]byte{},
		},
		Value: value,
	}, nil
}

// BuildCreateProjectCall passes name and description as plaintext, no value attached
func (s *evmService) BuildCreateProjectCall(form models.ProjectForm) (models.ContractCall, error) {
	target, err := utils.ParseUint(form.TargetAmount)
	if err != nil {
		return models.ContractCall{}, fmt.Errorf("%w: target amount: %v", ErrInvalidInput, err)
	}
	duration, err := utils.ParseUint(form.Duration)
	if err != nil {
		return models.ContractCall{}, fmt.Errorf("%w: duration: %v", ErrInvalidInput, err)
	}

	return models.ContractCall{
		Target:       s.contractAddress,
		FunctionName: contracts.MethodCreateProject,
		Args:         []any{form.Name, form.Description, target, duration},
	}, nil
}

// BuildInvestCall encodes amount and expected return and attaches the amount in wei
func (s *evmService) BuildInvestCall(form models.InvestmentForm) (models.ContractCall, error) {
	projectID, err := utils.ParseUint(form.ProjectID)
	if err != nil {
		return models.ContractCall{}, fmt.Errorf("%w: project id: %v", ErrInvalidInput, err)
	}
	value, err := utils.ParseEtherToWei(form.Amount)
	if err != nil {
		return models.ContractCall{}, fmt.Errorf("%w: amount: %v", ErrInvalidInput, err)
	}

	return models.ContractCall{
		Target:       s.contractAddress,
		FunctionName: contracts.MethodMakeInvestment,
		Args: []any{
			projectID,
			s.encoder.Encode(form.Amount),
			s.encoder.Encode(form.ExpectedReturn),
			[]byte{},
		},
		Value: value,
	}, nil
}

func (s *evmService) GetCallData(call models.ContractCall) ([]byte, error) {
	return utils.PackContractFunctionCall(s.contractABI, call.FunctionName, call.Args)
}

func (s *evmService) CallMetadata(operation models.OperationKind, call models.ContractCall) []models.TransactionMetadata {
	switch operation {
	case models.OperationCreateProject:
		if len(call.Args) != 4 {
			return nil
		}
		return []models.TransactionMetadata{
			{Key: MetadataName, Value: fmt.Sprint(call.Args[0])},
			{Key: MetadataDescription, Value: fmt.Sprint(call.Args[1])},
			{Key: MetadataTargetAmount, Value: fmt.Sprint(call.Args[2])},
			{Key: MetadataDuration, Value: fmt.Sprint(call.Args[3])},
		}
	case models.OperationInvest:
		if len(call.Args) == 0 {
			return nil
		}
		return []models.TransactionMetadata{
			{Key: MetadataProjectID, Value: fmt.Sprint(call.Args[0])},
		}
	default:
		return []models.TransactionMetadata{}
	}
}
