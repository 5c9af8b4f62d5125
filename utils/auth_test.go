package utils

import (
	"testing"
	"time"

	"go-shop/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateAndParseJWT(t *testing.T) {
	JwtKey = []byte("test-secret")
	user := &models.User{ID: primitive.NewObjectID(), Username: "ana", Email: "ana@example.com", Role: models.RoleAdmin}

	token, err := GenerateJWT(user)
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestParseJWTRejectsForeignKeyAndExpiry(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Username: "ana", Role: models.RoleUser}

	JwtKey = []byte("one")
	token, err := GenerateJWT(user)
	require.NoError(t, err)
	JwtKey = []byte("two")
	_, err = ParseJWT(token)
	assert.Error(t, err)

	prev := TokenTTL
	TokenTTL = -time.Minute
	t.Cleanup(func() { TokenTTL = prev })
	expired, err := GenerateJWT(user)
	require.NoError(t, err)
	_, err = ParseJWT(expired)
	assert.Error(t, err)
}
