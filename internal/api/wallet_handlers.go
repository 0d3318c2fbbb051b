package api

import (
	"fmt"
	"log"

	"github.com/blockchainBoi/secure-syndicate/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type ConnectRequest struct {
	ConnectorID string `json:"connector_id" validate:"required"`
}

// bindBody parses and validates a JSON request body
func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return validate.Struct(out)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (s *APIServer) handleListConnectors(c *fiber.Ctx) error {
	return c.JSON(s.walletService.ListConnectors())
}

func (s *APIServer) handleGetSession(c *fiber.Ctx) error {
	return c.JSON(s.walletService.Session())
}

func (s *APIServer) handleConnect(c *fiber.Ctx) error {
	var body ConnectRequest
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, err)
	}

	session, err := s.walletService.Connect(c.UserContext(), body.ConnectorID)
	if err != nil {
		log.Printf("Error connecting wallet with %s: %v", body.ConnectorID, err)
		return writeError(c, err)
	}

	log.Printf("Wallet connected: %s", utils.ShortenAddress(session.AccountAddress.Hex()))
	return c.JSON(session)
}

func (s *APIServer) handleDisconnect(c *fiber.Ctx) error {
	return c.JSON(s.walletService.Disconnect())
}
