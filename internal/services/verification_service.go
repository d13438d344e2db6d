package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// VerificationServiceImpl implements domain.VerificationService using Redis
// persistence for the emailed codes.
type VerificationServiceImpl struct {
	sender      domain.NotificationSender
	redisClient *redis.Client
	config      VerificationConfig
}

type VerificationConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewVerificationService creates a new Redis-backed verification service
func NewVerificationService(sender domain.NotificationSender, redisClient *redis.Client, config VerificationConfig) domain.VerificationService {
	return &VerificationServiceImpl{
		sender:      sender,
		redisClient: redisClient,
		config:      config,
	}
}

// Generate implements domain.VerificationService. The code is stored under
// the email with a TTL and delivered through the notification sender.
func (s *VerificationServiceImpl) Generate(ctx context.Context, email string, userID uint) (string, error) {
	codeKey := fmt.Sprintf("verify:%s", email)
	resendKey := fmt.Sprintf("verify:res:%s", email)
	attemptsKey := fmt.Sprintf("verify:att:%s", email)

	if throttled, err := s.redisClient.Exists(ctx, resendKey).Result(); err == nil && throttled > 0 {
		return "", domain.ErrCodeResendLimit
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}

	if err := s.redisClient.Set(ctx, codeKey, code, s.config.TTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store verification code: %w", err)
	}
	if err := s.redisClient.Set(ctx, attemptsKey, 0, s.config.TTL).Err(); err != nil {
		return "", fmt.Errorf("failed to initialize attempts counter: %w", err)
	}
	if err := s.redisClient.Set(ctx, resendKey, 1, s.config.ResendWindow).Err(); err != nil {
		return "", fmt.Errorf("failed to set resend throttle: %w", err)
	}

	subject := "Seu código de verificação"
	body := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; padding: 20px; text-align: center;">
  <h2>Bem-vindo a UpaonServices!</h2>
  <p>Para ativar sua conta, use o código abaixo:</p>
  <h1 style="color: #4F46E5; letter-spacing: 5px;">%s</h1>
  <p>Este código expira em %d minutos.</p>
</div>`, code, int(s.config.TTL.Minutes()))

	if err := s.sender.SendEmail(email, subject, body); err != nil {
		s.redisClient.Del(ctx, codeKey, attemptsKey, resendKey)
		return "", fmt.Errorf("failed to send verification email: %w", err)
	}

	return code, nil
}

// Verify implements domain.VerificationService. The code is single use and
// attempts are counted so it cannot be brute forced.
func (s *VerificationServiceImpl) Verify(ctx context.Context, email, code string) (bool, error) {
	codeKey := fmt.Sprintf("verify:%s", email)
	attemptsKey := fmt.Sprintf("verify:att:%s", email)

	attempts, err := s.redisClient.Incr(ctx, attemptsKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment attempts: %w", err)
	}
	if attempts > int64(s.config.MaxAttempts) {
		s.redisClient.Del(ctx, codeKey, attemptsKey)
		return false, domain.ErrCodeInvalid
	}

	stored, err := s.redisClient.Get(ctx, codeKey).Result()
	if err != nil {
		if err == redis.Nil {
			return false, domain.ErrCodeNotFound
		}
		return false, fmt.Errorf("failed to read verification code: %w", err)
	}

	if stored != code {
		return false, domain.ErrCodeInvalid
	}

	s.redisClient.Del(ctx, codeKey, attemptsKey)
	return true, nil
}

// generateSecureCode creates a numeric code of the configured length
func (s *VerificationServiceImpl) generateSecureCode() (string, error) {
	code := ""
	for i := 0; i < s.config.Length; i++ {
		digit, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += digit.String()
	}
	return code, nil
}
