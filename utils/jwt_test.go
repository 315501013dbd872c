package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelshare/config"
	"travelshare/utils"
)

func TestTokenRoundTrip(t *testing.T) {
	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret"})

	token, err := utils.GenerateToken("user-1", "ana", time.Hour)
	require.NoError(t, err)

	claims, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana", claims.Username)
}

func TestParseToken_Invalid(t *testing.T) {
	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret"})

	_, err := utils.ParseToken("not-a-token")
	assert.Error(t, err)

	expired, err := utils.GenerateToken("user-1", "ana", -time.Minute)
	require.NoError(t, err)
	_, err = utils.ParseToken(expired)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(hash, "secret123"))
	assert.False(t, utils.CheckPassword(hash, "wrong"))
}
