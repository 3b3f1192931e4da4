package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mis-dashboard/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, SourceOData, cfg.Source.Kind)
	assert.Equal(t, 30*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "budat", cfg.Source.DateField)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, map[domain.Dataset]string{
		domain.DatasetDtm:      "es_dtmset",
		domain.DatasetCombine:  "es_combineset",
		domain.DatasetDispatch: "es_dm_dispset",
		domain.DatasetStock:    "es_stockset",
	}, cfg.Source.EntitySetsByDataset())
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	content := `
source:
  kind: csv
  dir: /srv/mis
  timeout: 5s
  entity_sets:
    dtm: ZDTM_SET
server:
  addr: ":9090"
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DASHBOARD_SOURCE_URL", "http://gateway.local/odata")
	t.Setenv("DASHBOARD_LOG_LEVEL", "warn")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", "", "")
	flags.String("source", "", "")
	require.NoError(t, flags.Parse([]string{"--addr", ":7070"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, SourceCSV, cfg.Source.Kind)
	assert.Equal(t, "/srv/mis", cfg.Source.Dir)
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "http://gateway.local/odata", cfg.Source.URL)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "ZDTM_SET", cfg.Source.EntitySetsByDataset()[domain.DatasetDtm])
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		assert.Error(t, err)
	})

	t.Run("unknown source kind", func(t *testing.T) {
		t.Setenv("DASHBOARD_SOURCE_KIND", "ftp")
		_, err := Load("", nil)
		assert.ErrorContains(t, err, "invalid source kind")
	})
}
