package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// chdir is a stand-in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // no config file present

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "file", cfg.Storage.Driver)
	require.Equal(t, "memory-anki-storage.json", cfg.Storage.Path)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MEMANKI_SERVER_PORT", "9100")
	t.Setenv("MEMANKI_SERVER_LOG_LEVEL", "debug")
	t.Setenv("MEMANKI_STORAGE_DRIVER", "postgres")
	t.Setenv("MEMANKI_STORAGE_URL", "postgres://localhost:5432/memanki")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, "postgres", cfg.Storage.Driver)
	require.Equal(t, "postgres://localhost:5432/memanki", cfg.Storage.URL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown log level", key: "MEMANKI_SERVER_LOG_LEVEL", value: "verbose"},
		{name: "unknown storage driver", key: "MEMANKI_STORAGE_DRIVER", value: "sqlite"},
		{name: "port out of range", key: "MEMANKI_SERVER_PORT", value: "70000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadPostgresRequiresURL(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MEMANKI_STORAGE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "URL")
}
