package api

import (
	"log"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/blockchainBoi/secure-syndicate/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// newSubmissionResponse links a record to its status endpoint and block explorer page
func (s *APIServer) newSubmissionResponse(record *models.TransactionRecord) (*SubmissionResponse, error) {
	statusURL, err := utils.GetTransactionStatusUrl(s.options.BaseURL, s.port, record.ID)
	if err != nil {
		return nil, err
	}

	response := &SubmissionResponse{
		Record:    record,
		Message:   record.Status.Message(),
		StatusURL: statusURL,
	}
	if record.Hash != "" {
		if chain, err := s.chainService.GetActiveChain(); err == nil {
			response.ExplorerURL = utils.ExplorerTxURL(chain.ExplorerURL, record.Hash)
		}
	}
	return response, nil
}

func (s *APIServer) handleListTransactions(c *fiber.Ctx) error {
	var (
		records []models.TransactionRecord
		err     error
	)
	if status := c.Query("status"); status != "" {
		records, err = s.txService.ListTransactionRecordsByStatus(models.TransactionStatus(status))
	} else {
		records, err = s.txService.ListTransactionRecords()
	}
	if err != nil {
		log.Printf("Error listing transactions: %v", err)
		return writeError(c, err)
	}
	return c.JSON(records)
}

// handleActiveTransaction reports the transaction currently followed by the tracker
func (s *APIServer) handleActiveTransaction(c *fiber.Ctx) error {
	record, err := s.trackerService.Active()
	if err != nil {
		return writeError(c, err)
	}
	if record == nil {
		return c.JSON(fiber.Map{
			"status":  models.TransactionStatusNone,
			"message": models.TransactionStatusNone.Message(),
		})
	}

	response, err := s.newSubmissionResponse(record)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(response)
}

func (s *APIServer) handleGetTransaction(c *fiber.Ctx) error {
	id := c.Params("id")
	record, err := s.txService.GetTransactionRecord(id)
	if err != nil {
		log.Printf("Error getting transaction %s: %v", id, err)
		return writeError(c, err)
	}

	response, err := s.newSubmissionResponse(record)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(response)
}
