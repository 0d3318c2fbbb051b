package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/blockchainBoi/secure-syndicate/internal/services"
	"github.com/blockchainBoi/secure-syndicate/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// submitTool triggers one SecureSyndicate operation through the submit service
type submitTool struct {
	submitService services.SubmitService
	operation     models.OperationKind
	baseURL       string
	serverPort    int
}

type JoinSyndicateArguments struct {
	Reputation   string `json:"reputation"`
	Contribution string `json:"contribution" validate:"required"`
}

type CreateProjectArguments struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	TargetAmount string `json:"target_amount" validate:"required"`
	Duration     string `json:"duration" validate:"required"`
}

type MakeInvestmentArguments struct {
	ProjectID      string `json:"project_id" validate:"required"`
	Amount         string `json:"amount" validate:"required"`
	ExpectedReturn string `json:"expected_return"`
}

type SubmitResult struct {
	RecordID  string                   `json:"record_id"`
	Operation models.OperationKind     `json:"operation"`
	Hash      string                   `json:"hash,omitempty"`
	Status    models.TransactionStatus `json:"status"`
	Message   string                   `json:"message"`
	StatusURL string                   `json:"status_url"`
}

func NewJoinSyndicateTool(submitService services.SubmitService, baseURL string, serverPort int) *submitTool {
	return &submitTool{submitService: submitService, operation: models.OperationJoin, baseURL: baseURL, serverPort: serverPort}
}

func NewCreateProjectTool(submitService services.SubmitService, baseURL string, serverPort int) *submitTool {
	return &submitTool{submitService: submitService, operation: models.OperationCreateProject, baseURL: baseURL, serverPort: serverPort}
}

func NewMakeInvestmentTool(submitService services.SubmitService, baseURL string, serverPort int) *submitTool {
	return &submitTool{submitService: submitService, operation: models.OperationInvest, baseURL: baseURL, serverPort: serverPort}
}

func (t *submitTool) GetTool() mcp.Tool {
	switch t.operation {
	case models.OperationCreateProject:
		return mcp.NewTool("create_project",
			mcp.WithDescription("Create a syndicate project. Name, description, target amount and duration are public on-chain. Requires a connected wallet."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Project name"),
			),
			mcp.WithString("description",
				mcp.Description("Project description"),
			),
			mcp.WithString("target_amount",
				mcp.Required(),
				mcp.Description("Funding target as a whole number of ETH (e.g. \"10\")"),
			),
			mcp.WithString("duration",
				mcp.Required(),
				mcp.Description("Funding duration in days (e.g. \"30\")"),
			),
		)
	case models.OperationInvest:
		return mcp.NewTool("make_investment",
			mcp.WithDescription("Invest in a syndicate project. The amount is attached as ETH; amount and expected return are also sent encoded. Requires a connected wallet."),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("On-chain project id"),
			),
			mcp.WithString("amount",
				mcp.Required(),
				mcp.Description("Investment as a whole number of ETH (e.g. \"1\")"),
			),
			mcp.WithString("expected_return",
				mcp.Description("Expected return in percent, sent encoded and may be empty (e.g. \"15\")"),
			),
		)
	default:
		return mcp.NewTool("join_syndicate",
			mcp.WithDescription("Join the syndicate with an encoded reputation score and an ETH contribution. Requires a connected wallet."),
			mcp.WithString("reputation",
				mcp.Description("Reputation score, sent encoded and may be empty (e.g. \"95\")"),
			),
			mcp.WithString("contribution",
				mcp.Required(),
				mcp.Description("Contribution as a whole number of ETH, attached to the transaction (e.g. \"1\")"),
			),
		)
	}
}

func (t *submitTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		form, err := t.bindForm(request)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		record, err := t.submitService.Submit(ctx, t.operation, form)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotConnected):
				return mcp.NewToolResultError("Wallet is not connected. Please use connect_wallet tool first"), nil
			case errors.Is(err, services.ErrSubmissionInProgress):
				return mcp.NewToolResultError("A transaction is still in flight. Use get_transaction_status and retry once it settles"), nil
			case record != nil:
				return mcp.NewToolResultError(fmt.Sprintf("Transaction %s failed: %v", record.ID, err)), nil
			default:
				return mcp.NewToolResultError(fmt.Sprintf("Error submitting %s: %v", t.operation, err)), nil
			}
		}

		statusURL, err := utils.GetTransactionStatusUrl(t.baseURL, t.serverPort, record.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error building status url: %v", err)), nil
		}

		result := SubmitResult{
			RecordID:  record.ID,
			Operation: record.Operation,
			Hash:      record.Hash,
			Status:    record.Status,
			Message:   record.Status.Message(),
			StatusURL: statusURL,
		}
		resultJSON, _ := json.Marshal(result)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(fmt.Sprintf("Transaction submitted: %s", record.ID)),
				mcp.NewTextContent(string(resultJSON)),
			},
		}, nil
	}
}

// bindForm binds the arguments of the tool's operation into a form snapshot
func (t *submitTool) bindForm(request mcp.CallToolRequest) (models.FormInput, error) {
	validate := validator.New()
	switch t.operation {
	case models.OperationCreateProject:
		var args CreateProjectArguments
		if err := request.BindArguments(&args); err != nil {
			return models.FormInput{}, err
		}
		if err := validate.Struct(args); err != nil {
			return models.FormInput{}, err
		}
		return models.FormInput{Project: models.ProjectForm{
			Name:         args.Name,
			Description:  args.Description,
			TargetAmount: args.TargetAmount,
			Duration:     args.Duration,
		}}, nil
	case models.OperationInvest:
		var args MakeInvestmentArguments
		if err := request.BindArguments(&args); err != nil {
			return models.FormInput{}, err
		}
		if err := validate.Struct(args); err != nil {
			return models.FormInput{}, err
		}
		return models.FormInput{Investment: models.InvestmentForm{
			ProjectID:      args.ProjectID,
			Amount:         args.Amount,
			ExpectedReturn: args.ExpectedReturn,
		}}, nil
	default:
		var args JoinSyndicateArguments
		if err := request.BindArguments(&args); err != nil {
			return models.FormInput{}, err
		}
		if err := validate.Struct(args); err != nil {
			return models.FormInput{}, err
		}
		return models.FormInput{Join: models.JoinForm{
			Reputation:   args.Reputation,
			Contribution: args.Contribution,
		}}, nil
	}
}
