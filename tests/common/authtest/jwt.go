//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"redemption-service/internal/domain/auth"
	"redemption-service/internal/pkg/config"
	"redemption-service/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, subjectID uuid.UUID, role auth.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(subjectID, role.String())
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, subjectID uuid.UUID, role auth.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, time.Millisecond).GenerateToken(subjectID, role.String())
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
