package domain

import "time"

// BudgetEntry holds one month of budget data for one user.
// PK: email (lowercased), SK: month_key — the pair is unique by construction.
// Document is the raw JSON text of the client's budget payload; the store does
// not interpret it.
type BudgetEntry struct {
	Email     string    `json:"email" dynamodbav:"email"`
	MonthKey  string    `json:"month_key" dynamodbav:"month_key"`
	Document  string    `json:"document" dynamodbav:"document"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}
