package services

import (
	"context"
	"fmt"
	"log"
	"math/big"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/blockchainBoi/secure-syndicate/internal/utils"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ChainClient is the subset of ethclient.Client used to send and observe transactions
type ChainClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// DispatchService signs a contract call with the wallet session and sends it
type DispatchService interface {
	// Dispatch sends exactly one transaction and returns its hash. It never retries.
	Dispatch(ctx context.Context, call models.ContractCall) (common.Hash, error)
}

type dispatchService struct {
	client ChainClient
	wallet WalletService
	evm    EvmService
}

func NewDispatchService(client ChainClient, wallet WalletService, evm EvmService) DispatchService {
	return &dispatchService{client: client, wallet: wallet, evm: evm}
}

func (s *dispatchService) Dispatch(ctx context.Context, call models.ContractCall) (common.Hash, error) {
	session := s.wallet.Session()
	if !session.IsConnected() {
		return common.Hash{}, ErrNotConnected
	}
	from := *session.AccountAddress

	data, err := s.evm.GetCallData(call)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode %s call: %w", call.FunctionName, err)
	}

	if args, err := utils.EncodeFunctionArgsToStringMap(call.FunctionName, call.Args, s.evm.ABI()); err == nil {
		log.Printf("Dispatching %s from %s with args %s", call.FunctionName, utils.ShortenAddress(from.Hex()), args)
	}

	chainID, err := s.client.ChainID(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get chain id: %w", err)
	}
	nonce, err := s.client.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}
	gasPrice, err := s.client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to suggest gas price: %w", err)
	}

	value := call.AttachedValue()
	target := call.Target
	gas, err := s.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &target,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       &target,
		Value:    value,
		Data:     data,
	})

	signedTx, err := s.wallet.SignTx(tx, chainID)
	if err != nil {
		return common.Hash{}, fmt.Errorf("wallet rejected transaction: %w", err)
	}

	if err := s.client.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	return signedTx.Hash(), nil
}
