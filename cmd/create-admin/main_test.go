package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go-shop/models"
	"go-shop/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCompletePromptsForMissingFields(t *testing.T) {
	in := adminInput{Username: "root"}
	var out bytes.Buffer
	require.NoError(t, in.complete(strings.NewReader("\nroot@example.com\nhunter2"), &out))

	assert.Equal(t, "root", in.Username)
	assert.Equal(t, "root@example.com", in.Email)
	assert.Equal(t, "hunter2", in.Password)
	assert.Equal(t, "Email: Email: Password: ", out.String())
}

func TestCompleteFailsOnClosedInput(t *testing.T) {
	in := adminInput{}
	assert.Error(t, in.complete(strings.NewReader(""), &bytes.Buffer{}))
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()
	mem := memstore.New()

	user, err := createAdmin(ctx, mem, adminInput{Username: "root", Email: "root@example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter2")))

	_, err = createAdmin(ctx, mem, adminInput{Username: "root", Email: "other@example.com", Password: "x"})
	assert.ErrorContains(t, err, "already exists")
	_, err = createAdmin(ctx, mem, adminInput{Username: "other", Email: "root@example.com", Password: "x"})
	assert.ErrorContains(t, err, "already exists")
}
