package api

import (
	"log"

	"github.com/blockchainBoi/secure-syndicate/internal/contracts"
	"github.com/blockchainBoi/secure-syndicate/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// handleContractArtifact serves a contract artifact by name
func (s *APIServer) handleContractArtifact(c *fiber.Ctx) error {
	contractName := c.Params("name")
	if contractName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(map[string]string{
			"error": "Contract name is required",
		})
	}

	artifact, err := contracts.GetContractArtifact(contractName)
	if err != nil {
		log.Printf("Error getting contract artifact for %s: %v", contractName, err)
		return c.Status(fiber.StatusNotFound).JSON(map[string]string{
			"error": "Contract not found",
		})
	}

	return c.JSON(artifact)
}

// handleContractABI serves the SecureSyndicate ABI together with the address the server submits to
func (s *APIServer) handleContractABI(c *fiber.Ctx) error {
	artifact, err := contracts.GetSecureSyndicateArtifact()
	if err != nil {
		return writeError(c, err)
	}

	address := s.evmService.ContractAddress().Hex()
	explorerURL := ""
	if chain, err := s.chainService.GetActiveChain(); err == nil {
		explorerURL = utils.ExplorerAddressURL(chain.ExplorerURL, address)
	}

	return c.JSON(fiber.Map{
		"contract_name": artifact.ContractName,
		"address":       address,
		"explorer_url":  explorerURL,
		"abi":           artifact.ABI,
	})
}
