package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"data_dir": "/srv/oracle",
		"flat_db_file": "records.db",
		"auth_latency": "800ms"
	}`), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"oracle", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "/srv/oracle", c.DataDir)
	assert.Equal(t, "records.db", c.FlatDBFile)
	assert.Equal(t, "oracle-docs", c.DocumentDBDir, "unset fields keep defaults")
	assert.Equal(t, 800*time.Millisecond, c.AuthLatency)
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"oracle"}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ".", c.DataDir)
}

func TestParseJson_MissingFilePanics(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"oracle", "-c", "no-such-file.json"}

	var c Config
	c.LoadDefaults()
	assert.Panics(t, func() { parseJson(&c) })
}
