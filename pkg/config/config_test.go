package config

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Abraxas-365/sparkx/pkg/errx"
	"github.com/Abraxas-365/sparkx/pkg/logx"
	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SPARKX_API_KEY", "")
	t.Setenv("SPARKPOST_API_KEY", "fallback-key")

	cfg, err := Load(WithEnvFiles())
	require.NoError(t, err)

	assert.Equal(t, "fallback-key", cfg.SparkPost.APIKey)
	assert.Equal(t, sparkx.DefaultOrigin, cfg.SparkPost.Origin)
	assert.Equal(t, sparkx.DefaultEndpoint, cfg.SparkPost.Endpoint)
	assert.Equal(t, sparkx.DefaultTimeout, cfg.SparkPost.Timeout)
	assert.True(t, cfg.SparkPost.Gzip)
	assert.Equal(t, "/webhooks/sparkpost", cfg.Hook.Path)
	assert.Equal(t, []string{"sparkpost"}, cfg.Jobx.Queues)
	assert.Equal(t, "console", cfg.Notifx.Provider)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SPARKX_API_KEY", "primary")
	t.Setenv("SPARKPOST_API_KEY", "ignored")
	t.Setenv("SPARKX_ORIGIN", "https://api.eu.sparkpost.com:443")
	t.Setenv("SPARKX_RATE_LIMIT", "2.5")
	t.Setenv("JOBX_QUEUES", "a, b,,")
	t.Setenv("JOBX_POLL_INTERVAL", "250ms")
	t.Setenv("JOBX_CONCURRENCY", "not-a-number")

	cfg, err := Load(WithEnvFiles())
	require.NoError(t, err)

	assert.Equal(t, "primary", cfg.SparkPost.APIKey)
	assert.Equal(t, "https://api.eu.sparkpost.com:443", cfg.SparkPost.Origin)
	assert.Equal(t, 2.5, cfg.SparkPost.RateLimit)
	assert.Equal(t, []string{"a", "b"}, cfg.Jobx.Queues)
	assert.Equal(t, 250*time.Millisecond, cfg.Jobx.PollInterval)
	assert.Equal(t, 4, cfg.Jobx.Concurrency)
}

func TestSparkPostConfig_Endpoint(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SPARKX_API_KEY", "key")
	t.Setenv("SPARKX_ORIGIN", "https://mta.example.com")
	t.Setenv("SPARKX_ENDPOINT", "/")

	cfg, err := Load(WithEnvFiles())
	require.NoError(t, err)
	assert.Equal(t, "/", cfg.SparkPost.Endpoint)

	client, err := cfg.SparkPost.NewClient(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://mta.example.com/v1/templates", client.URL("/templates", nil))

	t.Setenv("SPARKX_ENDPOINT", "relay")
	_, err = Load(WithEnvFiles())
	assert.True(t, ErrInvalid.Is(err))
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HOOK_TOKEN", "")
	envFile := writeFile(t, ".env", "HOOK_TOKEN=from-dotenv\n")
	os.Unsetenv("HOOK_TOKEN")

	cfg, err := Load(WithEnvFiles(envFile, filepath.Join(t.TempDir(), "missing.env")))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Hook.Token)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	t.Setenv("HOOK_SECRET", "s3cret")
	path := writeFile(t, "sparkx.yaml", `
sparkpost:
  api_key: yaml-key
  timeout: 5s
hook:
  addr: ":9090"
  token: ${HOOK_SECRET}
jobx:
  concurrency: 8
  queues: [events, mail]
notifx:
  provider: sparkpost
  from_address: ops@example.com
`)

	cfg, err := Load(WithEnvFiles(), WithFile(path))
	require.NoError(t, err)

	assert.Equal(t, "yaml-key", cfg.SparkPost.APIKey)
	assert.Equal(t, 5*time.Second, cfg.SparkPost.Timeout)
	assert.Equal(t, sparkx.DefaultOrigin, cfg.SparkPost.Origin, "untouched keys keep env defaults")
	assert.Equal(t, ":9090", cfg.Hook.Addr)
	assert.Equal(t, "s3cret", cfg.Hook.Token)
	assert.Equal(t, 8, cfg.Jobx.Concurrency)
	assert.Equal(t, []string{"events", "mail"}, cfg.Jobx.Queues)
	assert.Equal(t, "sparkpost", cfg.Notifx.Provider)
}

func TestLoad_YAMLUnknownKey(t *testing.T) {
	path := writeFile(t, "bad.yaml", "sparkpost:\n  apikey: typo\n")

	_, err := Load(WithEnvFiles(), WithFile(path))
	require.Error(t, err)
	assert.True(t, ErrDecode.Is(err))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(WithEnvFiles(), WithFile(filepath.Join(t.TempDir(), "nope.yaml")))
	require.Error(t, err)
	assert.True(t, ErrReadFile.Is(err))
}

func TestValidate(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("NOTIFX_PROVIDER", "carrier-pigeon")
	t.Setenv("SPARKX_ORIGIN", "not a url")

	_, err := Load(WithEnvFiles())
	require.Error(t, err)
	assert.True(t, ErrInvalid.Is(err))

	e, ok := errx.As(err)
	require.True(t, ok)
	fields, ok := e.Details["fields"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "oneof", fields["Config.Notifx.Provider"])
	assert.Equal(t, "url", fields["Config.SparkPost.Origin"])
}

func TestValidate_ResendNeedsKey(t *testing.T) {
	cfg := &Config{
		SparkPost: loadSparkPostConfig(),
		Log:       loadLogConfig(),
		Hook:      loadHookConfig(),
		Jobx:      loadJobxConfig(),
		Notifx:    NotifxConfig{Provider: "resend"},
	}
	err := cfg.Validate()
	require.Error(t, err)

	cfg.Notifx.ResendKey = "re_123"
	assert.NoError(t, cfg.Validate())
}

func TestSparkPostOptions(t *testing.T) {
	c := SparkPostConfig{Origin: "https://api.eu.sparkpost.com", APIVersion: "v2", Gzip: false}
	client, err := sparkx.New("key", c.Options()...)
	require.NoError(t, err)

	got := client.Config()
	assert.Equal(t, "https://api.eu.sparkpost.com", got.Origin)
	assert.Equal(t, "v2", got.APIVersion)
	assert.True(t, got.DisableGzip)
}

func TestLogConfig_Logger(t *testing.T) {
	l := LogConfig{Level: "debug", Format: "json"}.Logger()
	assert.Equal(t, "DEBUG", l.Level().String())
}

func TestSparkPostConfig_NewClient(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	logCfg := logx.DefaultConfig()
	logCfg.Output = io.Discard
	c := SparkPostConfig{APIKey: "key", Origin: srv.URL, RateLimit: 100, RateBurst: 1}

	client, err := c.NewClient(logx.NewLogger(logCfg))
	require.NoError(t, err)

	_, err = client.Templates.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "key", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestSparkPostConfig_NewClientNeedsKey(t *testing.T) {
	_, err := SparkPostConfig{}.NewClient(nil)
	require.Error(t, err)
}

func TestStorageConfig_Reader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "invoice.pdf"), []byte("%PDF"), 0o600))
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	mux, err := StorageConfig{BaseDir: dir, AWSRegion: "us-east-1"}.Reader(context.Background())
	require.NoError(t, err)

	data, err := mux.ReadFile(context.Background(), "invoice.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	_, path, err := mux.Resolve("s3://bucket/key.txt")
	require.NoError(t, err)
	assert.Equal(t, "bucket/key.txt", path)
}
