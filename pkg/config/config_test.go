package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the duration of the test and restores the previous
// working directory in cleanup (testing.T.Chdir needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(old)) })
}

// unsetEnv removes a variable for the duration of the test. t.Setenv registers
// the restore; godotenv treats even an empty value as "already set", so the
// variable has to actually disappear.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "POSTGRES_CONN_STR=host=fromdotenv\nJWT_SECRET=dotenvsecret\nPAGE_SIZE=25\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	chdir(t, dir)
	unsetEnv(t, "POSTGRES_CONN_STR")
	unsetEnv(t, "JWT_SECRET")
	unsetEnv(t, "PAGE_SIZE")

	cfg := Load()

	assert.Equal(t, "host=fromdotenv", cfg.PostgresConnStr)
	assert.Equal(t, "dotenvsecret", cfg.JWTSecret)
	assert.Equal(t, 25, cfg.PageSize)
}

func TestLoadProcessEnvWinsOverDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "JWT_SECRET=dotenvsecret\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	chdir(t, dir)
	t.Setenv("JWT_SECRET", "realenvsecret")

	cfg := Load()

	assert.Equal(t, "realenvsecret", cfg.JWTSecret)
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{
		"PORT", "POSTGRES_CONN_STR", "JWT_SECRET", "REDIS_ADDR",
		"PAGE_SIZE", "FEED_CACHE_TTL_SECONDS", "STRICT_UNFOLLOW",
	} {
		unsetEnv(t, key)
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.PostgresConnStr)
	assert.Equal(t, "supersecretjwtkey", cfg.JWTSecret)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 20*time.Second, cfg.FeedCacheTTL)
	assert.True(t, cfg.StrictUnfollow)
}
