package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setScope(t *testing.T) {
	t.Helper()
	t.Setenv("DEPARTMENT", "Software Engineering")
	t.Setenv("LEVEL", "400")
	t.Setenv("SEMESTER", "First")
	t.Setenv("UPLOADER_FIREBASE_UID", "uploader-1")
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	setScope(t)
	t.Setenv("STORAGE_BACKEND", "fs")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, BackendFS, cfg.Storage.Backend)
	assert.Equal(t, "resources", cfg.Storage.Bucket)
	assert.Equal(t, "./data/bucket", cfg.Storage.FSRoot)
	assert.Equal(t, DriverPgx, cfg.Database.Driver)
	assert.Equal(t, "resources", cfg.Link.RootPrefix)
	assert.Equal(t, 400, cfg.Link.Level)
	assert.True(t, cfg.Link.EnforceScope)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 300, cfg.Cache.CourseTTLSeconds)
}

func TestLoadTrimsRootPrefix(t *testing.T) {
	setScope(t)
	t.Setenv("STORAGE_BACKEND", "fs")
	t.Setenv("LINK_ROOT_PREFIX", " /resources/ ")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "resources", cfg.Link.RootPrefix)
}

func TestLoadRequiresScope(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "fs")
	t.Setenv("DEPARTMENT", "")
	t.Setenv("LEVEL", "")
	t.Setenv("SEMESTER", "")
	t.Setenv("UPLOADER_FIREBASE_UID", "")

	_, err := Load(noEnvFile(t))
	require.Error(t, err)
	for _, want := range []string{"DEPARTMENT", "LEVEL", "SEMESTER", "UPLOADER_FIREBASE_UID"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateBackends(t *testing.T) {
	base := func() *Config {
		return &Config{
			Storage:  StorageConfig{Backend: BackendS3, Bucket: "resources"},
			Database: DatabaseConfig{Driver: DriverPQ},
			Link:     LinkConfig{Department: "SE", Level: 400, Semester: "First", UploaderUID: "u"},
		}
	}

	cfg := base()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_ENDPOINT")
	assert.Contains(t, err.Error(), "STORAGE_ACCESS_KEY")

	cfg = base()
	cfg.Storage.Endpoint = "localhost:9000"
	cfg.Storage.AccessKey = "key"
	cfg.Storage.SecretKey = "secret"
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Storage.Backend = BackendDrive
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DRIVE_CREDENTIALS_JSON")

	cfg = base()
	cfg.Storage.Backend = "ftp"
	cfg.Database.Driver = "mysql"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown STORAGE_BACKEND "ftp"`)
	assert.Contains(t, err.Error(), `unknown DB_DRIVER "mysql"`)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5433", User: "app", Password: "p@ss", DBName: "campus", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5433/campus?sslmode=disable", d.DSN())

	d.URL = "postgres://override"
	assert.Equal(t, "postgres://override", d.DSN())
}
