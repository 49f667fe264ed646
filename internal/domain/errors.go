package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these with a human-readable message; the handler layer renders
// the full message into the response envelope without distinguishing kinds.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrExpired        = errors.New("expired")
	ErrMismatch       = errors.New("mismatch")
	ErrChannelFailure = errors.New("email dispatch failed")
)
