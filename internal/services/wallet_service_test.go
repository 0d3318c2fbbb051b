package services_test

import (
	"context"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/blockchainBoi/secure-syndicate/internal/services"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/suite"
)

type WalletServiceTestSuite struct {
	suite.Suite
	hexKey       string
	address      common.Address
	keystorePath string
	wallet       services.WalletService
}

func (suite *WalletServiceTestSuite) SetupTest() {
	key, err := crypto.GenerateKey()
	suite.Require().NoError(err)
	suite.hexKey = hex.EncodeToString(crypto.FromECDSA(key))
	suite.address = crypto.PubkeyToAddress(key.PublicKey)

	ks := keystore.NewKeyStore(suite.T().TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	account, err := ks.ImportECDSA(key, "secret")
	suite.Require().NoError(err)
	suite.keystorePath = account.URL.Path

	suite.wallet = services.NewWalletService(
		services.NewPrivateKeyConnector("0x"+suite.hexKey),
		services.NewKeystoreConnector(suite.keystorePath, "secret"),
	)
}

func (suite *WalletServiceTestSuite) TestStartsDisconnected() {
	session := suite.wallet.Session()
	suite.Equal(models.ConnectionStateDisconnected, session.ConnectionState)
	suite.Nil(session.AccountAddress)
	suite.False(session.IsConnected())
}

func (suite *WalletServiceTestSuite) TestListConnectors() {
	connectors := suite.wallet.ListConnectors()
	suite.Require().Len(connectors, 2)
	suite.Equal(services.ConnectorPrivateKey, connectors[0].ID)
	suite.True(connectors[0].Available)
	suite.Equal(services.ConnectorKeystore, connectors[1].ID)
	suite.True(connectors[1].Available)

	empty := services.NewWalletService(services.NewPrivateKeyConnector(""), services.NewKeystoreConnector("", ""))
	for _, connector := range empty.ListConnectors() {
		suite.False(connector.Available, connector.ID)
	}
}

func (suite *WalletServiceTestSuite) TestConnectWithPrivateKey() {
	session, err := suite.wallet.Connect(context.Background(), services.ConnectorPrivateKey)
	suite.Require().NoError(err)
	suite.True(session.IsConnected())
	suite.Equal(suite.address, *session.AccountAddress)
	suite.Equal(services.ConnectorPrivateKey, session.ConnectorID)
}

func (suite *WalletServiceTestSuite) TestConnectWithKeystore() {
	session, err := suite.wallet.Connect(context.Background(), services.ConnectorKeystore)
	suite.Require().NoError(err)
	suite.True(session.IsConnected())
	suite.Equal(suite.address, *session.AccountAddress)
}

func (suite *WalletServiceTestSuite) TestConnectWithWrongKeystorePassword() {
	wallet := services.NewWalletService(services.NewKeystoreConnector(suite.keystorePath, "wrong"))
	session, err := wallet.Connect(context.Background(), services.ConnectorKeystore)
	suite.Error(err)
	suite.Equal(models.ConnectionStateDisconnected, session.ConnectionState)
}

func (suite *WalletServiceTestSuite) TestConnectWithInvalidKey() {
	wallet := services.NewWalletService(services.NewPrivateKeyConnector("not-a-key"))
	session, err := wallet.Connect(context.Background(), services.ConnectorPrivateKey)
	suite.Error(err)
	suite.False(session.IsConnected())
}

func (suite *WalletServiceTestSuite) TestConnectUnknownConnector() {
	_, err := suite.wallet.Connect(context.Background(), "walletconnect")
	suite.ErrorIs(err, services.ErrUnknownConnector)
}

func (suite *WalletServiceTestSuite) TestSessionIsACopy() {
	_, err := suite.wallet.Connect(context.Background(), services.ConnectorPrivateKey)
	suite.Require().NoError(err)

	session := suite.wallet.Session()
	*session.AccountAddress = common.Address{}
	suite.Equal(suite.address, *suite.wallet.Session().AccountAddress)
}

func (suite *WalletServiceTestSuite) TestSignTx() {
	tx := types.NewTx(&types.LegacyTx{Nonce: 0, Gas: 21000, GasPrice: big.NewInt(1), To: &suite.address, Value: big.NewInt(1)})
	chainID := big.NewInt(1337)

	_, err := suite.wallet.SignTx(tx, chainID)
	suite.ErrorIs(err, services.ErrNotConnected)

	_, err = suite.wallet.Connect(context.Background(), services.ConnectorPrivateKey)
	suite.Require().NoError(err)

	signed, err := suite.wallet.SignTx(tx, chainID)
	suite.Require().NoError(err)
	sender, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	suite.Require().NoError(err)
	suite.Equal(suite.address, sender)

	session := suite.wallet.Disconnect()
	suite.Equal(models.ConnectionStateDisconnected, session.ConnectionState)
	_, err = suite.wallet.SignTx(tx, chainID)
	suite.ErrorIs(err, services.ErrNotConnected)
}

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
