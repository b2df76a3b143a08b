package access

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAdminIgnoresCase(t *testing.T) {
	p := NewPolicy("Chef@Example.com", " ")
	assert.True(t, p.IsAdmin("chef@example.com"))
	assert.True(t, p.IsAdmin(" CHEF@example.com "))
	assert.False(t, p.IsAdmin("guest@example.com"))
	assert.False(t, p.IsAdmin(""))
	assert.Equal(t, []string{"chef@example.com"}, p.Admins())
}

func TestNilPolicyDeniesEveryone(t *testing.T) {
	var p *Policy
	assert.False(t, p.IsAdmin("chef@example.com"))
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.yaml")
	require.NoError(t, os.WriteFile(path, []byte("admins:\n  - owner@example.com\n  - chef@example.com\n"), 0o600))

	p, err := Load(path, []string{"chef@example.com", "manager@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"chef@example.com", "manager@example.com", "owner@example.com"}, p.Admins())
}

func TestLoadReportsBadFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("admins: [unterminated"), 0o600))
	_, err = Load(path, nil)
	assert.Error(t, err)
}
