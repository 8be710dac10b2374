package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendS3    = "s3"
	BackendDrive = "drive"
	BackendFS    = "fs"

	DriverPgx = "pgx"
	DriverPQ  = "postgres"
)

type Config struct {
	Storage  StorageConfig
	Database DatabaseConfig
	Link     LinkConfig
	Cache    CacheConfig
	LogLevel string
}

type StorageConfig struct {
	Backend   string
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool

	DriveCredentialsJSON string
	DriveRootFolderID    string

	FSRoot string
}

type DatabaseConfig struct {
	Driver   string
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LinkConfig is the fixed scope stamped onto every run.
type LinkConfig struct {
	Department   string
	Level        int
	Semester     string
	UploaderUID  string
	RootPrefix   string
	MaxDepth     int
	EnforceScope bool
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	CourseTTLSeconds int
}

// Load reads configuration from envFile (when present) and the environment.
// An empty envFile means ".env".
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	// Load .env file if it exists
	_ = godotenv.Load(envFile)

	v := viper.New()
	setDefaults(v)

	// Read from environment variables
	v.AutomaticEnv()

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("STORAGE_BACKEND", BackendS3)
	v.SetDefault("BUCKET_NAME", "resources")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_USE_SSL", true)
	v.SetDefault("DRIVE_ROOT_FOLDER_ID", "root")
	v.SetDefault("FS_ROOT", "./data/bucket")
	v.SetDefault("DB_DRIVER", DriverPgx)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("LINK_ROOT_PREFIX", "resources")
	v.SetDefault("LINK_MAX_DEPTH", 0)
	v.SetDefault("LINK_ENFORCE_SCOPE", true)
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_COURSE_TTL_SECONDS", 300)
	v.SetDefault("LOG_LEVEL", "info")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:              strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND"))),
			Bucket:               v.GetString("BUCKET_NAME"),
			Endpoint:             v.GetString("STORAGE_ENDPOINT"),
			AccessKey:            v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey:            v.GetString("STORAGE_SECRET_KEY"),
			Region:               v.GetString("STORAGE_REGION"),
			UseSSL:               v.GetBool("STORAGE_USE_SSL"),
			DriveCredentialsJSON: v.GetString("DRIVE_CREDENTIALS_JSON"),
			DriveRootFolderID:    v.GetString("DRIVE_ROOT_FOLDER_ID"),
			FSRoot:               v.GetString("FS_ROOT"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Link: LinkConfig{
			Department:   strings.TrimSpace(v.GetString("DEPARTMENT")),
			Level:        v.GetInt("LEVEL"),
			Semester:     strings.TrimSpace(v.GetString("SEMESTER")),
			UploaderUID:  strings.TrimSpace(v.GetString("UPLOADER_FIREBASE_UID")),
			RootPrefix:   strings.Trim(strings.TrimSpace(v.GetString("LINK_ROOT_PREFIX")), "/"),
			MaxDepth:     v.GetInt("LINK_MAX_DEPTH"),
			EnforceScope: v.GetBool("LINK_ENFORCE_SCOPE"),
		},
		Cache: CacheConfig{
			Enabled:          v.GetBool("CACHE_ENABLED"),
			RedisURL:         v.GetString("REDIS_URL"),
			RedisHost:        v.GetString("REDIS_HOST"),
			RedisPort:        v.GetString("REDIS_PORT"),
			RedisPassword:    v.GetString("REDIS_PASSWORD"),
			RedisDB:          v.GetInt("REDIS_DB"),
			CourseTTLSeconds: v.GetInt("CACHE_COURSE_TTL_SECONDS"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Link.Department == "" {
		errs = append(errs, errors.New("DEPARTMENT is required"))
	}
	if c.Link.Level <= 0 {
		errs = append(errs, errors.New("LEVEL must be a positive number"))
	}
	if c.Link.Semester == "" {
		errs = append(errs, errors.New("SEMESTER is required"))
	}
	if c.Link.UploaderUID == "" {
		errs = append(errs, errors.New("UPLOADER_FIREBASE_UID is required"))
	}
	if c.Link.MaxDepth < 0 {
		errs = append(errs, errors.New("LINK_MAX_DEPTH must not be negative"))
	}

	switch c.Storage.Backend {
	case BackendS3:
		if c.Storage.Bucket == "" {
			errs = append(errs, errors.New("BUCKET_NAME is required"))
		}
		if c.Storage.Endpoint == "" {
			errs = append(errs, errors.New("STORAGE_ENDPOINT is required for the s3 backend"))
		}
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			errs = append(errs, errors.New("STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY are required for the s3 backend"))
		}
	case BackendDrive:
		if c.Storage.DriveCredentialsJSON == "" {
			errs = append(errs, errors.New("DRIVE_CREDENTIALS_JSON is required for the drive backend"))
		}
	case BackendFS:
		if c.Storage.FSRoot == "" {
			errs = append(errs, errors.New("FS_ROOT is required for the fs backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend))
	}

	switch c.Database.Driver {
	case DriverPgx, DriverPQ:
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise a URL built from the DB_* parts.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
