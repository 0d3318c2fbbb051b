package api

import (
	"errors"
	"log"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/blockchainBoi/secure-syndicate/internal/services"
	"github.com/gofiber/fiber/v2"
)

type JoinRequest struct {
	Reputation   string `json:"reputation"`
	Contribution string `json:"contribution" validate:"required"`
}

type CreateProjectRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	TargetAmount string `json:"target_amount" validate:"required"`
	Duration     string `json:"duration" validate:"required"`
}

type InvestRequest struct {
	ProjectID      string `json:"project_id" validate:"required"`
	Amount         string `json:"amount" validate:"required"`
	ExpectedReturn string `json:"expected_return"`
}

// SubmissionResponse is returned once a trigger has been handed to the wallet
type SubmissionResponse struct {
	Record      *models.TransactionRecord `json:"record"`
	Message     string                    `json:"message"`
	StatusURL   string                    `json:"status_url"`
	ExplorerURL string                    `json:"explorer_url,omitempty"`
}

func (s *APIServer) handleJoin(c *fiber.Ctx) error {
	var body JoinRequest
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, err)
	}
	return s.submit(c, models.OperationJoin, models.FormInput{
		Join: models.JoinForm{Reputation: body.Reputation, Contribution: body.Contribution},
	})
}

func (s *APIServer) handleCreateProject(c *fiber.Ctx) error {
	var body CreateProjectRequest
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, err)
	}
	return s.submit(c, models.OperationCreateProject, models.FormInput{
		Project: models.ProjectForm{
			Name:         body.Name,
			Description:  body.Description,
			TargetAmount: body.TargetAmount,
			Duration:     body.Duration,
		},
	})
}

func (s *APIServer) handleInvest(c *fiber.Ctx) error {
	var body InvestRequest
	if err := bindBody(c, &body); err != nil {
		return badRequest(c, err)
	}
	return s.submit(c, models.OperationInvest, models.FormInput{
		Investment: models.InvestmentForm{
			ProjectID:      body.ProjectID,
			Amount:         body.Amount,
			ExpectedReturn: body.ExpectedReturn,
		},
	})
}

// submit dispatches the operation and answers 202 while the tracker follows it
func (s *APIServer) submit(c *fiber.Ctx, operation models.OperationKind, form models.FormInput) error {
	record, err := s.submitService.Submit(c.UserContext(), operation, form)
	if err != nil {
		log.Printf("Error submitting %s: %v", operation, err)
		if errors.Is(err, services.ErrSubmissionFailed) && record != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":  err.Error(),
				"record": record,
			})
		}
		return writeError(c, err)
	}

	response, err := s.newSubmissionResponse(record)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(response)
}
