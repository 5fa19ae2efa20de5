// Package config provides configuration structures for the fdawatch CLI.
package config

type Config struct {
	ConfigPath  string `json:"configPath" yaml:"configPath" mapstructure:"configPath"`
	Debug       bool   `json:"debug" yaml:"debug" mapstructure:"debug"`
	DisableANSI bool   `json:"disableANSI" yaml:"disableANSI" mapstructure:"disableANSI"`
	FDA         FDA    `json:"fda" yaml:"fda" mapstructure:"fda"`
	Track       Track  `json:"track" yaml:"track" mapstructure:"track"`
	Serve       Serve  `json:"serve" yaml:"serve" mapstructure:"serve"`
}

// FDA configures the openFDA drug-shortage endpoint queried on every run.
type FDA struct {
	BaseURL string `json:"baseURL" yaml:"baseURL" mapstructure:"baseURL"`
	Search  string `json:"search" yaml:"search" mapstructure:"search"`
	Limit   int    `json:"limit" yaml:"limit" mapstructure:"limit"`
	Skip    int    `json:"skip" yaml:"skip" mapstructure:"skip"`
	Timeout uint64 `json:"timeout" yaml:"timeout" mapstructure:"timeout"` // seconds
}

// Track configures the snapshot baseline and the rendered report.
type Track struct {
	SnapshotPath string `json:"snapshotPath" yaml:"snapshotPath" mapstructure:"snapshotPath"`
	NoSave       bool   `json:"noSave" yaml:"noSave" mapstructure:"noSave"`
	JSON         bool   `json:"json" yaml:"json" mapstructure:"json"`
	MaxPreview   int    `json:"maxPreview" yaml:"maxPreview" mapstructure:"maxPreview"`
}

// Serve configures the HTTP wrapper API.
type Serve struct {
	Port      uint32 `json:"port" yaml:"port" mapstructure:"port"`
	CacheSize int    `json:"cacheSize" yaml:"cacheSize" mapstructure:"cacheSize"`
	CacheTTL  uint64 `json:"cacheTTL" yaml:"cacheTTL" mapstructure:"cacheTTL"` // seconds
}
