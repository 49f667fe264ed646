package domain

// OTPRecord is a live one-time login code for an email address.
// PK: email (lowercased). At most one record per email; resends replace it.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type OTPRecord struct {
	Email        string `json:"email" dynamodbav:"email"`
	Code         string `json:"-" dynamodbav:"code"` // 6 ASCII digits
	ExpiresAt    int64  `json:"expires_at" dynamodbav:"expires_at"`
	SessionToken string `json:"-" dynamodbav:"session_token"`
}
