package config

import (
	yamlLib "gopkg.in/yaml.v3"
)

// defaultConfig is the configuration document merged under any user-provided
// fdawatch.yml. It is also what "fdawatch generate-config" writes out.
var defaultConfig = `configPath: ""
debug: false
disableANSI: false
fda:
  baseURL: "https://api.fda.gov/drug/shortages.json"
  search: ""
  limit: 100
  skip: 0
  timeout: 30
track:
  snapshotPath: "data/shortage_snapshot.json"
  noSave: false
  json: false
  maxPreview: 5
serve:
  port: 8320
  cacheSize: 128
  cacheTTL: 60
`

// Default returns the default configuration document.
func Default() string {
	return defaultConfig
}

// New returns a Config populated from the default document.
func New() (*Config, error) {
	cfg := &Config{}
	if err := yamlLib.Unmarshal([]byte(defaultConfig), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
