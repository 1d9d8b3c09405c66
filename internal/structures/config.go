package structures

import "time"

type CliFlags struct {
	ConfigPath   string
	SnapshotPath string
	Date         string
	Rebuild      bool
	DebugMode    bool
}

type SnapshotsConfig struct {
	Dir string `yaml:"dir" validate:"required|unixPath"`
	// Raw files older than this are recompressed to .json.zst.
	// Zero disables archival.
	ArchiveAfter time.Duration `yaml:"archiveAfter"`
}

type ArtifactsConfig struct {
	BadgesDir  string `yaml:"badgesDir" validate:"required|unixPath"`
	HistoryDir string `yaml:"historyDir" validate:"required|unixPath"`
	// Remove badge/history directories of integrations absent from
	// the latest snapshot. Off by default: a disappeared integration
	// may reappear and resume its series.
	PruneObsolete bool `yaml:"pruneObsolete"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled      bool   `yaml:"enabled"`
	TextfilePath string `yaml:"textfilePath"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Snapshots SnapshotsConfig `yaml:"snapshots"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Logger    LoggerConfig    `yaml:"logger"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}
