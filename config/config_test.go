package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/stacks/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Load with no config files should use defaults
	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 5708, cfg.Server.Port)
	assert.Equal(t, "", cfg.Server.Host)
	assert.Equal(t, ":5708", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

	require.Len(t, cfg.Mounts, 1)
	m := cfg.Mounts[0]
	assert.Equal(t, "/", m.Prefix)
	assert.Equal(t, "./public", m.Root)
	assert.Equal(t, []string{"index.html"}, m.Index)
	assert.False(t, m.Listing)
	assert.Equal(t, "utf-8", m.Charset)

	assert.False(t, cfg.CORS.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
server:
  host: 127.0.0.1
  port: 8080
  read_timeout: 5s
mounts:
  - prefix: /
    root: /srv/www
    listing: true
  - prefix: /downloads
    root: /srv/downloads
    index: [default.htm]
    listing: true
    charset: iso-8859-1
    show_hidden: true
    hide_symlinks: true
    sniff: true
log:
  level: debug
  format: json
`)

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)

	require.Len(t, cfg.Mounts, 2)

	site := cfg.Mounts[0]
	assert.Equal(t, "/srv/www", site.Root)
	assert.True(t, site.Listing)
	assert.Equal(t, "utf-8", site.Charset)
	assert.Equal(t, []string{"index.html"}, site.Index)

	downloads := cfg.Mounts[1]
	assert.Equal(t, "/downloads", downloads.Prefix)
	assert.Equal(t, []string{"default.htm"}, downloads.Index)
	assert.Equal(t, "iso-8859-1", downloads.Charset)
	assert.True(t, downloads.ShowHidden)
	assert.True(t, downloads.HideSymlinks)
	assert.True(t, downloads.Sniff)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ConfigFileMerge(t *testing.T) {
	basePath := writeConfig(t, "base.yaml", `
server:
  port: 8080
log:
  level: warn
`)
	overridePath := writeConfig(t, "override.yaml", `
server:
  port: 9090
`)

	cfg, err := config.Load([]string{basePath, overridePath}, nil)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingConfigFileFallsBack(t *testing.T) {
	cfg, err := config.Load([]string{filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	require.NoError(t, err)

	assert.Equal(t, 5708, cfg.Server.Port)
}

func TestLoad_WithCORS(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
cors:
  enabled: true
  allowed_origins:
    - https://example.com
  allowed_methods:
    - GET
    - HEAD
  max_age: 600
`)

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"https://example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET", "HEAD"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, 600, cfg.CORS.MaxAge)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tt := []struct {
		Name    string
		Content string
	}{
		{
			Name: "invalid port",
			Content: `
server:
  port: 70000
`,
		},
		{
			Name: "invalid log level",
			Content: `
log:
  level: verbose
`,
		},
		{
			Name: "invalid log format",
			Content: `
log:
  format: xml
`,
		},
		{
			Name: "relative prefix",
			Content: `
mounts:
  - prefix: files
    root: /srv
`,
		},
		{
			Name: "missing root",
			Content: `
mounts:
  - prefix: /files
`,
		},
		{
			Name: "unknown charset",
			Content: `
mounts:
  - prefix: /
    root: /srv
    charset: klingon-8
`,
		},
		{
			Name: "duplicate prefix",
			Content: `
mounts:
  - prefix: /files
    root: /srv/a
  - prefix: /files/
    root: /srv/b
`,
		},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			configPath := writeConfig(t, "config.yaml", tc.Content)

			_, err := config.Load([]string{configPath}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validate config")
		})
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("STACKS_SERVER_PORT", "9090")
	t.Setenv("STACKS_LOG_LEVEL", "error")

	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "error", cfg.Log.Level)
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("host", "", "")
	flags.Int("port", 5708, "")
	flags.String("log-level", "info", "")
	flags.String("prefix", "/", "")
	flags.String("root", "./public", "")
	flags.Bool("listing", false, "")
	flags.String("charset", "utf-8", "")
	return flags
}

func TestLoad_Flags(t *testing.T) {
	t.Setenv("STACKS_SERVER_PORT", "9090")

	configPath := writeConfig(t, "config.yaml", `
mounts:
  - prefix: /
    root: /srv/www
  - prefix: /extra
    root: /srv/extra
`)

	flags := newFlagSet()
	require.NoError(t, flags.Parse([]string{
		"--port", "7000",
		"--log-level", "debug",
		"--root", "/srv/override",
		"--listing",
	}))

	cfg, err := config.Load([]string{configPath}, flags)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)

	require.Len(t, cfg.Mounts, 2)
	assert.Equal(t, "/", cfg.Mounts[0].Prefix)
	assert.Equal(t, "/srv/override", cfg.Mounts[0].Root)
	assert.True(t, cfg.Mounts[0].Listing)
	assert.Equal(t, "/srv/extra", cfg.Mounts[1].Root)
	assert.False(t, cfg.Mounts[1].Listing)
}

func TestLoad_UnchangedFlagsKeepConfig(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
server:
  port: 8080
mounts:
  - prefix: /
    root: /srv/www
`)

	flags := newFlagSet()
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load([]string{configPath}, flags)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/srv/www", cfg.Mounts[0].Root)
}

func TestMountConfig_DirConfig(t *testing.T) {
	m := config.MountConfig{
		Prefix:       "/files",
		Root:         "/srv/files",
		Index:        []string{"index.html", "index.htm"},
		Listing:      true,
		Charset:      "iso-8859-1",
		ShowHidden:   true,
		HideSymlinks: true,
		Sniff:        true,
	}

	dc := m.DirConfig()

	assert.Equal(t, "/files", dc.URLPrefix)
	assert.True(t, dc.Root.IsStatic())
	assert.Equal(t, "/srv/files", dc.Root.Root())
	assert.Equal(t, []string{"index.html", "index.htm"}, dc.IndexFiles)
	assert.True(t, dc.AllowListing)
	assert.Equal(t, "iso-8859-1", dc.Charset)
	assert.True(t, dc.ShowHidden)
	assert.True(t, dc.HideSymlinks)
	assert.True(t, dc.SniffUnknown)
}

func TestFromContext_Missing(t *testing.T) {
	cfg, err := config.FromContext(context.Background())

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
