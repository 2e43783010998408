package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type CollectorConfig struct {
	SourceURL      string        `yaml:"sourceUrl" validate:"required|fullUrl"`
	PollInterval   time.Duration `yaml:"pollInterval" validate:"required|min:1"`
	ErrorBackoff   time.Duration `yaml:"errorBackoff" validate:"required|min:1"`
	RequestTimeout time.Duration `yaml:"requestTimeout" validate:"required|min:1"`
}

type StorageConfig struct {
	DataDir       string `yaml:"dataDir" validate:"required|unixPath"`
	HistoryFile   bool   `yaml:"historyFile"`
	ArchiveDir    string `yaml:"archiveDir"`
	RetentionDays int    `yaml:"retentionDays"`
	ArchiveCron   string `yaml:"archiveCron"`
}

type MirrorConfig struct {
	Enabled        bool          `yaml:"enabled"`
	FolderID       string        `yaml:"folderId"`
	TokenEnv       string        `yaml:"tokenEnv"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	BoundaryHour   int           `yaml:"boundaryHour" validate:"int|min:0|max:23"`
	BoundaryMinute int           `yaml:"boundaryMinute" validate:"int|min:0|max:59"`
	CheckInterval  time.Duration `yaml:"checkInterval"`
	Cooldown       time.Duration `yaml:"cooldown"`
	PushOnRegister bool          `yaml:"pushOnRegister"`
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
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Collector CollectorConfig `yaml:"collector"`
	WebServer Server          `yaml:"webServer"`
	Storage   StorageConfig   `yaml:"storage"`
	Mirror    MirrorConfig    `yaml:"mirror"`
	Logger    LoggerConfig    `yaml:"logger"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}
