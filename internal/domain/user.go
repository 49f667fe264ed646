package domain

import "time"

// User is a login-registry record. PK: email (lowercased).
// Created on the first successful OTP dispatch, refreshed on every later one.
// Never deleted.
type User struct {
	Email        string    `json:"email" dynamodbav:"email"`
	FirstLoginAt time.Time `json:"first_login_at" dynamodbav:"first_login_at"`
	LastLoginAt  time.Time `json:"last_login_at" dynamodbav:"last_login_at"`
	LoginCount   int       `json:"login_count" dynamodbav:"login_count"`
}
