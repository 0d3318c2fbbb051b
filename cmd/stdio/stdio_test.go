package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"math/big"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/blockchainBoi/secure-syndicate/internal/api"
	"github.com/blockchainBoi/secure-syndicate/internal/config"
	"github.com/blockchainBoi/secure-syndicate/internal/constants"
	"github.com/blockchainBoi/secure-syndicate/internal/server"
	"github.com/blockchainBoi/secure-syndicate/internal/services"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type StdioServerTestSuite struct {
	suite.Suite
	backend   *simulated.Backend
	cfg       *config.Config
	dbService services.DBService
	services  *server.Services
	apiServer *api.APIServer
	port      int
}

func (suite *StdioServerTestSuite) SetupSuite() {
	key, err := crypto.GenerateKey()
	suite.Require().NoError(err)
	suite.backend = simulated.NewBackend(types.GenesisAlloc{
		crypto.PubkeyToAddress(key.PublicKey): {Balance: new(big.Int).Mul(big.NewInt(10), constants.WeiPerEther)},
	})

	cfg := config.Default()
	cfg.Chain = config.ChainConfig{
		Name:            "Simulated",
		RPC:             "http://localhost:8545",
		NetworkID:       "1337",
		ContractAddress: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
	}
	cfg.Wallet.PrivateKey = common.Bytes2Hex(crypto.FromECDSA(key))
	suite.cfg = cfg

	dbService, err := server.OpenDatabase(cfg.Database)
	suite.Require().NoError(err)
	suite.dbService = dbService

	svc, err := server.NewServices(cfg, dbService, suite.backend.Client())
	suite.Require().NoError(err)
	suite.services = svc

	// Configure and start server on a random port
	apiServer, port, err := configureAndStartServer(cfg, svc, 0)
	suite.Require().NoError(err)
	suite.Require().NotZero(port, "Port should not be 0")

	suite.apiServer = apiServer
	suite.port = port

	// Wait for server to be ready
	time.Sleep(100 * time.Millisecond)
}

func (suite *StdioServerTestSuite) TearDownSuite() {
	if suite.apiServer != nil {
		suite.apiServer.Shutdown()
	}
	suite.services.Close()
	suite.backend.Close()
	suite.dbService.Close()
}

func (suite *StdioServerTestSuite) TestMCPServerIsSet() {
	suite.NotNil(suite.apiServer.GetMCPServer())
	suite.Equal(suite.port, suite.apiServer.GetPort())
}

func (suite *StdioServerTestSuite) TestRoutesAccessibleWithoutAuth() {
	client := &http.Client{Timeout: 10 * time.Second}

	routes := []struct {
		path     string
		contains string
	}{
		{"/health", "ok"},
		{"/api/properties", "Manhattan Heights"},
		{"/api/wallet/session", "disconnected"},
		{"/api/chains", "Simulated"},
		{"/api/dashboard", "privacy_score"},
	}

	for _, route := range routes {
		suite.Run(route.path, func() {
			resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%d%s", suite.port, route.path))
			suite.Require().NoError(err)
			defer resp.Body.Close()

			suite.Equal(http.StatusOK, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			suite.Require().NoError(err)
			suite.True(strings.Contains(string(body), route.contains), string(body))
		})
	}
}

func (suite *StdioServerTestSuite) TestStreamableHttpNotMounted() {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(fmt.Sprintf("http://127.0.0.1:%d/mcp", suite.port), "application/json", strings.NewReader(`{}`))
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusNotFound, resp.StatusCode)
}

func (suite *StdioServerTestSuite) TestListensOnLoopbackOnly() {
	host, port, err := net.SplitHostPort(suite.apiServer.GetAddr())
	suite.Require().NoError(err)
	suite.Equal(fmt.Sprint(suite.port), port)
	suite.True(net.ParseIP(host).IsLoopback(), "API bound to %s", host)
}

func (suite *StdioServerTestSuite) TestAPITokenIsEnforcedWhenSet() {
	cfg := *suite.cfg
	cfg.Server.APIToken = "stdio-token"

	apiServer, port, err := configureAndStartServer(&cfg, suite.services, 0)
	suite.Require().NoError(err)
	defer apiServer.Shutdown()

	client := &http.Client{Timeout: 10 * time.Second}
	url := fmt.Sprintf("http://127.0.0.1:%d/api/wallet/session", port)

	suite.Eventually(func() bool {
		resp, err := client.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusUnauthorized
	}, 2*time.Second, 20*time.Millisecond)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer stdio-token")
	resp, err := client.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusOK, resp.StatusCode)

	// connecting the signing wallet needs the token too
	resp, err = client.Post(fmt.Sprintf("http://127.0.0.1:%d/api/wallet/connect", port), "application/json", strings.NewReader(`{"connector_id":"private-key"}`))
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestPrintVersionAndHelp(t *testing.T) {
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	var version bytes.Buffer
	printVersion(&version)
	assert.Contains(t, version.String(), "SecureSyndicate MCP Server")
	assert.Contains(t, version.String(), "Version: "+Version)

	var help bytes.Buffer
	printHelp(&help, "secure-syndicate")
	assert.Contains(t, help.String(), "Usage: secure-syndicate [options]")
	assert.Contains(t, help.String(), "--log")
	assert.Contains(t, help.String(), "API_TOKEN")
}

func TestStdioServerTestSuite(t *testing.T) {
	suite.Run(t, new(StdioServerTestSuite))
}
