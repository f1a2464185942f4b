package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/quickmed-api/pkg/security"
)

func TestBuildFixtures(t *testing.T) {
	now := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	f, err := buildFixtures(security.NewBcryptHasher(bcrypt.MinCost), now)
	require.NoError(t, err)

	require.Len(t, f.Users, len(users))
	for i, u := range f.Users {
		assert.NotEqual(t, users[i].password, u.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(users[i].password)))
	}

	require.Len(t, f.Slots, 4)
	names := map[string]bool{}
	for _, s := range services {
		names[s.Name] = true
	}
	for _, s := range f.Slots {
		assert.Equal(t, "2026-10-16", s.Date)
		assert.True(t, names[s.Service], s.Service)
	}
}
