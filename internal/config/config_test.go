package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/docsmith/pkg/api"
)

func defaults() *viper.Viper {
	v := viper.New()
	applyDefaults(v)
	return v
}

func TestCheckConfigValidityValid(t *testing.T) {
	v := defaults()
	require.NoError(t, CheckConfigValidity(v))

	v.Set("service.base_url", "http://localhost:8000")
	v.Set("service.timeout", "90s")
	v.Set("generate.kind", "docker-compose")
	v.Set("output.view", "raw")
	v.Set("render.style", "notty")
	v.Set("log.level", "DEBUG")
	v.Set("log.format", "json")
	assert.NoError(t, CheckConfigValidity(v))
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	v.Set("service.base_url", "ftp://example.com")
	v.Set("service.timeout", "soon")
	v.Set("generate.kind", "helm")
	v.Set("output.view", "fancy")
	v.Set("render.style", "neon")
	v.Set("render.word_wrap", 0)
	v.Set("log.level", "loud")
	v.Set("log.format", "xml")

	err := CheckConfigValidity(v)
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"service.base_url must be an http(s) URL",
		"service.timeout must be a duration",
		"generate.kind must be one of documentation, dockerfile, docker-compose",
		"output.view must be preview or raw",
		"render.style must be one of",
		"render.word_wrap must be greater than 0",
		"log.level must be",
		"log.format must be console or json",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestCheckConfigValidityMissingBaseURL(t *testing.T) {
	v := defaults()
	v.Set("service.base_url", " ")
	v.Set("service.timeout", "-1s")
	err := CheckConfigValidity(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service.base_url is required")
	assert.Contains(t, err.Error(), "service.timeout must not be negative")
}

func TestResolve(t *testing.T) {
	v := defaults()
	v.Set("service.base_url", "http://localhost:8000/")
	v.Set("service.timeout", "2m")
	v.Set("generate.kind", "dockerfile")
	v.Set("log.level", "INFO")

	s, err := Resolve(v)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", s.BaseURL)
	assert.Equal(t, 2*time.Minute, s.Timeout)
	assert.Equal(t, api.KindDockerfile, s.Kind)
	assert.Equal(t, api.ViewPreview, s.View)
	assert.True(t, s.Pager)
	assert.Equal(t, "dark", s.Style)
	assert.Equal(t, 100, s.WordWrap)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "console", s.LogFormat)
	assert.Empty(t, s.MetricsAddr)

	v.Set("output.view", "sideways")
	_, err = Resolve(v)
	assert.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[generate]\nkind = \"dockerfile\"\n\n[render]\nstyle = \"light\"\n"), 0o644))

	t.Setenv("DOCSMITH_RENDER_STYLE", "dracula")

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, Load(context.Background(), v))

	assert.Equal(t, DefaultBaseURL, v.GetString("service.base_url"))
	assert.Equal(t, "dockerfile", v.GetString("generate.kind"))
	assert.Equal(t, "dracula", v.GetString("render.style"))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DOCSMITH_TEST_DOTENV=from-file\nDOCSMITH_TEST_PRESET=from-file\n"), 0o644))

	t.Setenv("DOCSMITH_TEST_PRESET", "from-env")
	t.Cleanup(func() { os.Unsetenv("DOCSMITH_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("DOCSMITH_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("DOCSMITH_TEST_PRESET"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestRenderDefaultTOML(t *testing.T) {
	out := RenderDefaultTOML()
	assert.True(t, strings.HasPrefix(out, "# docSmith configuration (TOML)\n"))
	for _, want := range []string{
		"[service]\n",
		"base_url = \"https://docsmith.onrender.com\"\n",
		"timeout = \"0s\"\n",
		"[output]\n",
		"pager = true\n",
		"word_wrap = 100\n",
		"# Log level: debug, info, warn or error\n",
	} {
		assert.Contains(t, out, want)
	}

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(out)))
	assert.Equal(t, "documentation", v.GetString("generate.kind"))
	assert.Equal(t, 100, v.GetInt("render.word_wrap"))
}

func TestUpdateTOML(t *testing.T) {
	existing := strings.Join([]string{
		"[service]",
		"base_url = \"http://localhost:8000\"",
		"",
		"[legacy]",
		"namespace = \"work\"",
		"",
	}, "\n")

	out, changed := UpdateTOML(existing)
	require.True(t, changed)

	assert.Contains(t, out, "base_url = \"http://localhost:8000\"")
	assert.Contains(t, out, "# OUTDATED: option removed from config schema\n# namespace = \"work\"")
	assert.Equal(t, 1, strings.Count(out, "[service]"))
	assert.Contains(t, out, "# Added by config update")
	assert.Contains(t, out, "[render]")

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(out)))
	assert.Equal(t, "http://localhost:8000", v.GetString("service.base_url"))
	assert.Equal(t, "0s", v.GetString("service.timeout"))
	assert.Equal(t, "warn", v.GetString("log.level"))

	again, changed := UpdateTOML(out)
	assert.False(t, changed)
	assert.Equal(t, out, again)
}
