package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("auth:\n  jwt_secret: " + secret + "\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StorageJSON, cfg.Storage.Type)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, "plaintext", cfg.Auth.PasswordScheme)
	assert.Equal(t, 60, cfg.Auth.AccessTokenExpiry)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin123", cfg.Admin.Password)
	assert.Equal(t, 2000, cfg.Inventory.MinYear)
	assert.Equal(t, 2025, cfg.Inventory.MaxYear)
	assert.Equal(t, "none", cfg.Email.Provider)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Scheduler.Autosave)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/var/lib/carrental")
	t.Setenv("ADMIN_SECRET_CODE", "letmein")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_FILE", "/tmp/carrental.log")

	cfg, err := Parse([]byte("auth:\n  jwt_secret: " + secret + "\n"))
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/carrental", cfg.Storage.DataDir)
	assert.Equal(t, "letmein", cfg.Auth.AdminSecretCode)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/tmp/carrental.log", cfg.Log.File)
	assert.Equal(t, 50, cfg.Log.MaxSizeMB)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing jwt secret", "server:\n  port: 80\n", "JWT secret is required"},
		{"short jwt secret", "auth:\n  jwt_secret: short\n", "at least 32 characters"},
		{"unknown storage", "storage:\n  type: s3\nauth:\n  jwt_secret: " + secret + "\n", "unknown storage type"},
		{"postgres without host", "storage:\n  type: postgres\nauth:\n  jwt_secret: " + secret + "\n", "database host is required"},
		{"bad scheme", "auth:\n  password_scheme: md5\n  jwt_secret: " + secret + "\n", "unknown password scheme"},
		{"inverted years", "inventory:\n  min_year: 2030\n  max_year: 2020\nauth:\n  jwt_secret: " + secret + "\n", "min_year"},
		{"sendgrid without key", "email:\n  provider: sendgrid\nauth:\n  jwt_secret: " + secret + "\n", "api key is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  host: 127.0.0.1
  port: 8181
storage:
  type: postgres
database:
  host: db
  user: rental
  database: ledger
auth:
  jwt_secret: ` + secret + `
scheduler:
  autosave: "0 */5 * * * *"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8181", cfg.GetServerAddress())
	assert.Equal(t, "postgres://rental:@db:5432/ledger?sslmode=disable", cfg.GetDatabaseConnectionString())
	assert.Equal(t, "0 */5 * * * *", cfg.Scheduler.Autosave)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetSecurityLevel(t *testing.T) {
	assert.Equal(t, SecurityPublic, GetSecurityLevel("auth.login"))
	assert.Equal(t, SecurityCustomer, GetSecurityLevel("rentals.rent"))
	assert.Equal(t, SecurityAdmin, GetSecurityLevel("vehicles.add"))
	assert.Equal(t, SecurityAccess, GetSecurityLevel("unknown.route"))
}
