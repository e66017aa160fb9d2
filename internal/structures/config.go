package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslMode"`
}

// SeedConfig points at the source CSV exports loaded into the in-memory
// repositories when the database is disabled. Empty paths are skipped.
type SeedConfig struct {
	StatusFile    string `yaml:"statusFile"`
	HoursFile     string `yaml:"hoursFile"`
	TimezonesFile string `yaml:"timezonesFile"`
}

type ReportsConfig struct {
	Dir             string        `yaml:"dir" validate:"required|unixPath"`
	Workers         int           `yaml:"workers" validate:"required|min:1"`
	QueueSize       int           `yaml:"queueSize" validate:"required|min:1"`
	AnchorTTL       time.Duration `yaml:"anchorTTL" validate:"required|min:1"`
	MaxDuration     time.Duration `yaml:"maxDuration" validate:"required|min:1"`
	RetentionTTL    time.Duration `yaml:"retentionTTL" validate:"required|min:1"`
	SweepInterval   time.Duration `yaml:"sweepInterval" validate:"required|min:1"`
	DefaultTimezone string        `yaml:"defaultTimezone" validate:"required"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server         `yaml:"webServer"`
	Database    DatabaseConfig `yaml:"database"`
	Seed        SeedConfig     `yaml:"seed"`
	Reports     ReportsConfig  `yaml:"reports"`
	Persistence Persistence    `yaml:"persistence"`
	Logger      LoggerConfig   `yaml:"logger"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}
