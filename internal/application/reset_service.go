package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	repo "github.com/taskstack/taskstack/internal/domain/repository"
	"github.com/taskstack/taskstack/pkg/helpers"
	"github.com/taskstack/taskstack/pkg/mailer"
)

var ErrResetTokenInvalid = errors.New("reset token invalid or expired")

func keyResetToken(t string) string { return "pwd:reset:token:" + t }

// resetRecord is what a reset token maps to while it is outstanding.
type resetRecord struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// ResetService implements the single-use password reset flow. Tokens live in
// Redis under a TTL, so expiry needs no sweeper and consumption (GETDEL) is
// atomic. Multiple outstanding tokens per user are allowed.
type ResetService struct {
	Users    repo.UserRepository
	Redis    *redis.Client
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
	TokenTTL time.Duration
	ResetURL string
	SendMail bool
}

func NewResetService(users repo.UserRepository, rdb *redis.Client, pub *helpers.RabbitPublisher, logger *logrus.Logger, tokenTTL time.Duration, resetURL string, sendMail bool) *ResetService {
	return &ResetService{
		Users:    users,
		Redis:    rdb,
		Pub:      pub,
		Logger:   logger,
		TokenTTL: tokenTTL,
		ResetURL: resetURL,
		SendMail: sendMail,
	}
}

// RequestReset issues a reset token for a known email and enqueues the reset
// email. The token is returned so non-production callers can expose it; the
// handler decides whether it leaves the process.
func (s *ResetService) RequestReset(ctx context.Context, email string) (string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	tok, err := helpers.GenerateResetToken(32)
	if err != nil {
		return "", err
	}
	rec := resetRecord{UserID: u.ID, Email: u.Email}
	if err := helpers.RedisSetJSON(ctx, s.Redis, keyResetToken(tok), rec, s.TokenTTL); err != nil {
		return "", err
	}
	s.enqueueResetEmail(ctx, u.Email, tok)
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("password reset requested")
	}
	return tok, nil
}

// ConsumeReset redeems a token exactly once, re-hashes and stores the new
// password, and reports the affected email. Absent, expired, and already-used
// tokens are indistinguishable.
func (s *ResetService) ConsumeReset(ctx context.Context, token, newPassword string) (string, error) {
	var rec resetRecord
	found, err := helpers.RedisTakeJSON(ctx, s.Redis, keyResetToken(token), &rec)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrResetTokenInvalid
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		s.restoreToken(ctx, token, rec)
		return "", err
	}
	if err := s.Users.UpdatePassword(ctx, rec.UserID, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		// Transient store failure: put the token back so the user can
		// retry instead of losing it unused.
		s.restoreToken(ctx, token, rec)
		return "", err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", rec.UserID).Info("password reset completed")
	}
	return rec.Email, nil
}

// restoreToken re-stores a consumed record after a failure past the GETDEL.
// The fresh TTL is a small extension of the token's life, which is preferable
// to burning it on an error the user did not cause.
func (s *ResetService) restoreToken(ctx context.Context, token string, rec resetRecord) {
	if err := helpers.RedisSetJSON(ctx, s.Redis, keyResetToken(token), rec, s.TokenTTL); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("failed to restore reset token")
	}
}

func (s *ResetService) enqueueResetEmail(ctx context.Context, to, token string) {
	if s.Pub == nil || !s.SendMail {
		return
	}
	link := s.ResetURL + "?token=" + token
	job := mailer.EmailJob{
		To:      to,
		Subject: "Reset your password",
		Text:    "A password reset was requested for this address. Open " + link + " within " + s.TokenTTL.String() + " to choose a new password. If this wasn't you, ignore this email.",
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("failed to enqueue reset email")
	}
}
