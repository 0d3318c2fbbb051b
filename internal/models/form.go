package models

// JoinForm is the raw user input for joining the syndicate
type JoinForm struct {
	Reputation   string `json:"reputation"`
	Contribution string `json:"contribution"`
}

// ProjectForm is the raw user input for creating a project
type ProjectForm struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	TargetAmount string `json:"target_amount"`
	Duration     string `json:"duration"`
}

// InvestmentForm is the raw user input for investing in a project
type InvestmentForm struct {
	ProjectID      string `json:"project_id"`
	Amount         string `json:"amount"`
	ExpectedReturn string `json:"expected_return"`
}

// FormInput is the form snapshot bound to an operation trigger. Only the form matching
// the operation is read.
type FormInput struct {
	Join       JoinForm       `json:"join"`
	Project    ProjectForm    `json:"project"`
	Investment InvestmentForm `json:"investment"`
}
