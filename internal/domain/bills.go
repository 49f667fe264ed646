package domain

import "time"

// BillsEntry holds a user's recurring bills as one JSON list.
// PK: email (lowercased). One entry per email, replaced wholesale on save.
type BillsEntry struct {
	Email     string    `json:"email" dynamodbav:"email"`
	Document  string    `json:"document" dynamodbav:"document"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}
