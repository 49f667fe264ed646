package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/smartbudget/api/internal/domain"
	"github.com/smartbudget/api/internal/infrastructure/smtp"
	"github.com/smartbudget/api/internal/pkg/token"
	"github.com/smartbudget/api/internal/pkg/validate"
)

// Repository is the OTP store the service needs.
type Repository interface {
	Put(ctx context.Context, rec *domain.OTPRecord) error
	Get(ctx context.Context, email string) (*domain.OTPRecord, error)
	Delete(ctx context.Context, email string) error
	Scan(ctx context.Context) ([]domain.OTPRecord, error)
}

// UserRegistry records successful OTP dispatches.
type UserRegistry interface {
	Touch(ctx context.Context, email string) error
}

type Service interface {
	// Send generates a code and session token for email, persists them, and
	// mails the code. The record stays persisted even when the mail fails.
	Send(ctx context.Context, email string) error
	// Verify checks the submitted code against the live record. On match the
	// record is deleted (single use) and the stored session token is returned
	// with the normalized email.
	Verify(ctx context.Context, email, submittedCode string) (sessionToken, normalizedEmail string, err error)
	// SweepExpired deletes every record whose expiry has passed and returns
	// how many it removed. Idempotent.
	SweepExpired(ctx context.Context) (int, error)
}

type service struct {
	repo   Repository
	users  UserRegistry
	mailer smtp.Mailer
	ttl    time.Duration
}

func NewService(repo Repository, users UserRegistry, mailer smtp.Mailer, ttl time.Duration) Service {
	return &service{repo: repo, users: users, mailer: mailer, ttl: ttl}
}

func (s *service) Send(ctx context.Context, email string) error {
	if err := validate.Email(email); err != nil {
		return fmt.Errorf("invalid email address: %w", domain.ErrInvalidInput)
	}
	email = strings.ToLower(email)

	code, err := generateCode()
	if err != nil {
		return err
	}

	rec := &domain.OTPRecord{
		Email:        email,
		Code:         code,
		ExpiresAt:    time.Now().Add(s.ttl).Unix(),
		SessionToken: token.NewSessionToken(),
	}
	if err := s.repo.Put(ctx, rec); err != nil {
		return err
	}

	// The record above is left in place when the mail never goes out; the
	// sweep reclaims it.
	if err := s.mailer.SendEmail(email, "SmartBudget Pro — Your OTP", buildOTPEmail(code, s.ttl)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrChannelFailure, err)
	}

	if err := s.users.Touch(ctx, email); err != nil {
		slog.Warn("failed to touch user registry", "email", email, "err", err)
	}
	return nil
}

func (s *service) Verify(ctx context.Context, email, submittedCode string) (string, string, error) {
	if email == "" || submittedCode == "" {
		return "", "", fmt.Errorf("email and OTP required: %w", domain.ErrInvalidInput)
	}
	email = strings.ToLower(email)

	rec, err := s.repo.Get(ctx, email)
	if err != nil {
		return "", "", fmt.Errorf("no OTP found, request a new one: %w", domain.ErrNotFound)
	}
	if time.Now().Unix() > rec.ExpiresAt {
		return "", "", fmt.Errorf("OTP expired, request a new one: %w", domain.ErrExpired)
	}
	if rec.Code != strings.TrimSpace(submittedCode) {
		return "", "", fmt.Errorf("wrong OTP, try again: %w", domain.ErrMismatch)
	}

	// Single use: the code is gone after its first successful verification.
	if err := s.repo.Delete(ctx, email); err != nil {
		slog.Warn("failed to delete verified OTP record", "email", email, "err", err)
	}
	return rec.SessionToken, email, nil
}

func (s *service) SweepExpired(ctx context.Context) (int, error) {
	records, err := s.repo.Scan(ctx)
	if err != nil {
		return 0, err
	}
	now := time.Now().Unix()
	removed := 0
	for _, rec := range records {
		if now <= rec.ExpiresAt {
			continue
		}
		if err := s.repo.Delete(ctx, rec.Email); err != nil {
			slog.Warn("failed to delete expired OTP record", "email", rec.Email, "err", err)
			continue
		}
		removed++
	}
	slog.Info("otp sweep finished", "scanned", len(records), "removed", removed)
	return removed, nil
}

// generateCode draws a uniform 6-digit code from [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(100000+n.Int64(), 10), nil
}
