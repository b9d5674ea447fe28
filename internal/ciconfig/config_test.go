package ciconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bartekus/scriptcheck/internal/scanner"
)

// isolate runs the test in an empty directory with a clean CI environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	for _, env := range []string{
		"GITHUB_EVENT_NAME", "GITHUB_BASE_REF", "GITHUB_EVENT_BEFORE", "GITHUB_SHA",
		"SCRIPTCHECK_FORMAT", "SCRIPTCHECK_OUT", "SCRIPTCHECK_RANGE", "SCRIPTCHECK_EXTENSIONS",
		"SCRIPTCHECK_EXCLUDE_DIRS", "SCRIPTCHECK_MAX_PREVIEW", "SCRIPTCHECK_GIT_TIMEOUT",
		"SCRIPTCHECK_LOG_LEVEL", "SCRIPTCHECK_LOG_FORMAT",
	} {
		t.Setenv(env, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Format)
	assert.Empty(t, cfg.Out)
	assert.Empty(t, cfg.Range)
	assert.Equal(t, scanner.DefaultExtensions(), cfg.Extensions)
	assert.Empty(t, cfg.ExcludeDirs)
	assert.Equal(t, 180, cfg.MaxPreview)
	assert.Equal(t, time.Duration(0), cfg.GitTimeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, Env{}, cfg.CI)
}

func TestLoad_CIEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_EVENT_NAME", "pull_request")
	t.Setenv("GITHUB_BASE_REF", "main")
	t.Setenv("GITHUB_EVENT_BEFORE", "abc123")
	t.Setenv("GITHUB_SHA", "def456")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Env{
		EventName: "pull_request",
		BaseRef:   "main",
		Before:    "abc123",
		SHA:       "def456",
	}, cfg.CI)
}

func TestLoad_ToolEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("SCRIPTCHECK_FORMAT", "JSON")
	t.Setenv("SCRIPTCHECK_EXTENSIONS", "go,.MD")
	t.Setenv("SCRIPTCHECK_MAX_PREVIEW", "80")
	t.Setenv("SCRIPTCHECK_GIT_TIMEOUT", "45s")
	t.Setenv("SCRIPTCHECK_LOG_LEVEL", "debug")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, []string{".go", ".md"}, cfg.Extensions)
	assert.Equal(t, 80, cfg.MaxPreview)
	assert.Equal(t, 45*time.Second, cfg.GitTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFileInWorkingDir(t *testing.T) {
	dir := isolate(t)
	content := `format: sarif
extensions: [".py", ".rst"]
exclude_dirs: ["/third_party/", "vendor"]
max_preview: 120
log:
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".scriptcheck.yaml"), []byte(content), 0o644))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "sarif", cfg.Format)
	assert.Equal(t, []string{".py", ".rst"}, cfg.Extensions)
	assert.Equal(t, []string{"third_party", "vendor"}, cfg.ExcludeDirs)
	assert.Equal(t, 120, cfg.MaxPreview)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("range: main...feature\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "main...feature", cfg.Range)
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("SCRIPTCHECK_FORMAT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "", "")
	flags.String("out", "", "")
	flags.String("range", "", "")
	flags.StringSlice("ext", nil, "")
	flags.StringSlice("exclude-dir", nil, "")
	require.NoError(t, flags.Parse([]string{"--format", "github", "--ext", "kt,md", "--range", "A...B"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "github", cfg.Format)
	assert.Equal(t, []string{".kt", ".md"}, cfg.Extensions)
	assert.Equal(t, "A...B", cfg.Range)
	assert.Empty(t, cfg.ExcludeDirs)
}

func TestLoad_UnchangedFlagsKeepDefaults(t *testing.T) {
	isolate(t)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "", "")
	flags.StringSlice("ext", nil, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, scanner.DefaultExtensions(), cfg.Extensions)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{Format: "text", MaxPreview: 180}
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "format must be one of")

	cfg = base()
	cfg.MaxPreview = 3
	assert.ErrorContains(t, cfg.Validate(), "max_preview")

	cfg = base()
	cfg.GitTimeout = -time.Second
	assert.ErrorContains(t, cfg.Validate(), "git_timeout")
}

func TestLoad_InvalidFormatRejected(t *testing.T) {
	isolate(t)
	t.Setenv("SCRIPTCHECK_FORMAT", "xml")
	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}

func TestYAML(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_SHA", "def456")
	t.Setenv("SCRIPTCHECK_GIT_TIMEOUT", "1m")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	data, err := cfg.YAML()
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, "text", parsed["format"])
	assert.Equal(t, "1m0s", parsed["git_timeout"])
	assert.Equal(t, []any{}, parsed["exclude_dirs"])
	ci, ok := parsed["ci"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "def456", ci["sha"])
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
