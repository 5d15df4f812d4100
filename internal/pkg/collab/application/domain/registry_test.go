package collab

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateAssignsUniqueUppercaseCodes(t *testing.T) {
	r := NewSessionRegistry()
	codePattern := regexp.MustCompile(`^[0-9A-F]{6}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		host, _ := newParticipant(fmt.Sprintf("h%d", i), "Host", RoleHost)
		s, err := r.Create(host)
		require.NoError(t, err)
		require.Regexp(t, codePattern, s.Code)

		_, dup := seen[s.Code]
		require.False(t, dup, "code %s allocated twice", s.Code)
		seen[s.Code] = struct{}{}
	}
	assert.Equal(t, 1000, r.Len())
}

func TestRegistryCreateSetsUpHost(t *testing.T) {
	r := NewSessionRegistry()
	host, _ := newParticipant("h1", "Ana", RoleViewer) // role is forced to host
	s, err := r.Create(host)
	require.NoError(t, err)

	assert.Equal(t, "h1", s.HostID)
	assert.Equal(t, RoleHost, host.Role)
	assert.False(t, s.CreatedAt.IsZero())

	users := s.Users()
	require.Len(t, users, 1)
	assert.Equal(t, RoleHost, users[0].Role)
}

func TestRegistryLookup(t *testing.T) {
	r := NewSessionRegistry()
	host, _ := newParticipant("h1", "Ana", RoleHost)
	s, err := r.Create(host)
	require.NoError(t, err)

	got, ok := r.Lookup(s.Code)
	assert.True(t, ok)
	assert.Same(t, s, got)

	_, ok = r.Lookup("NOPE99")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryRemove(t *testing.T) {
	r := NewSessionRegistry()
	host, _ := newParticipant("h1", "Ana", RoleHost)
	s, err := r.Create(host)
	require.NoError(t, err)

	r.Remove(s.Code)
	_, ok := r.Lookup(s.Code)
	assert.False(t, ok)

	// Removing twice is harmless.
	r.Remove(s.Code)
	assert.Equal(t, 0, r.Len())
}
