package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/kpetrova/oracle/internal/flagx"
	"github.com/kpetrova/oracle/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the latency either as a string like
// "800ms" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config.
type JsonConfig struct {
	DataDir       string         `json:"data_dir"`
	FlatDBFile    string         `json:"flat_db_file"`
	DocumentDBDir string         `json:"document_db_dir"`
	AuthLatency   timex.Duration `json:"auth_latency"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags via flagx.JsonConfigFlags; with no
// flag, no JSON is loaded. Read or unmarshal errors panic (caller should
// recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.FlatDBFile != "" {
		cfg.FlatDBFile = jc.FlatDBFile
	}
	if jc.DocumentDBDir != "" {
		cfg.DocumentDBDir = jc.DocumentDBDir
	}
	if jc.AuthLatency.Duration != 0 {
		cfg.AuthLatency = time.Duration(jc.AuthLatency.Duration)
	}
}
