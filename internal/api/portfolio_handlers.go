package api

import (
	"github.com/gofiber/fiber/v2"
)

func (s *APIServer) handleDashboard(c *fiber.Ctx) error {
	stats, err := s.portfolioService.GetDashboardStats()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

func (s *APIServer) handleListProperties(c *fiber.Ctx) error {
	properties, err := s.portfolioService.ListProperties()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(properties)
}

func (s *APIServer) handleListChains(c *fiber.Ctx) error {
	chains, err := s.chainService.ListChains()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(chains)
}
