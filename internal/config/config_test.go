package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
server:
  port: 8080
database:
  host: localhost
  port: 5432
  user: ngoforum
  database: ngoforum
email:
  from_address: noreply@ngoforum.test
jwt:
  secret: 0123456789abcdef0123456789abcdef
storage:
  upload_dir: /tmp/uploads
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Server.ShutdownTimeoutSeconds)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "NGO Forum", cfg.Email.FromName)
	assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 7*24*60, cfg.JWT.RefreshTokenExpiry)
	assert.Equal(t, "mock", cfg.Storage.Type)
	assert.Equal(t, int64(15), cfg.Storage.MaxFileSizeMB)
	assert.Equal(t, 365, cfg.Membership.TermDays)
	assert.Equal(t, 30, cfg.Membership.ExpiryWarningDays)
	assert.Equal(t, int64(20000), cfg.Membership.DefaultFeeCents)
	assert.Equal(t, "0 0 6 * * *", cfg.Scheduler.CheckMemberships)
	assert.Equal(t, "0 0 7 * * *", cfg.Scheduler.SendEventReminders)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	assert.Equal(t, "postgres://ngoforum:@localhost:5432/ngoforum?sslmode=disable", cfg.GetDatabaseConnectionString())
	assert.Equal(t, ":8080", cfg.GetServerAddress())
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("SECURITY_ALERT_RECIPIENTS", "security@ngoforum.test,director@ngoforum.test")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "SG.key", cfg.Email.SendGridAPIKey)
	assert.Equal(t, []string{"security@ngoforum.test", "director@ngoforum.test"}, cfg.Security.AlertRecipients)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("server:\n  port: 0\n"))
	assert.ErrorContains(t, err, "invalid server port")

	_, err = Parse([]byte("server: [oops"))
	assert.ErrorContains(t, err, "failed to parse config file")

	_, err = Parse([]byte(`
server:
  port: 8080
database:
  host: localhost
  user: ngoforum
  database: ngoforum
email:
  from_address: noreply@ngoforum.test
jwt:
  secret: too-short
storage:
  upload_dir: /tmp/uploads
`))
	assert.ErrorContains(t, err, "at least 32 characters")

	_, err = Parse([]byte(minimalYAML + "  type: s3\n"))
	assert.ErrorContains(t, err, "unsupported storage type")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestGetSecurityLevel(t *testing.T) {
	assert.Equal(t, SecurityPublic, GetSecurityLevel("members.list"))
	assert.Equal(t, SecurityMember, GetSecurityLevel("forum.posts.create"))
	assert.Equal(t, SecurityStaff, GetSecurityLevel("staff.moderation.approve"))
	assert.Equal(t, SecurityStaff, GetSecurityLevel("no.such.route"))
	assert.Equal(t, SecurityOptional, GetSecurityLevel("announcements.list"))
	assert.Equal(t, SecurityOptional, GetSecurityLevel("contact.create"))
	assert.Equal(t, "refresh", SecurityRefresh.String())
	assert.Equal(t, "optional", SecurityOptional.String())
}
