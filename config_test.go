package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHostsPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		assert.Contains(t, DefaultHostsPath(), `System32\drivers\etc\hosts`)
		return
	}
	assert.Equal(t, "/etc/hosts", DefaultHostsPath())
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "hostie.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
hosts_file: /srv/hosts
backend: configmap
configmap:
  namespace: dns
  name: lan-hosts
protected:
  - localhost
  - gateway.lan
lock: true
serve:
  listen: ":9999"
`), 0644))

	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/hosts", cfg.HostsFile)
	assert.Equal(t, backendConfigMap, cfg.Backend)
	assert.Equal(t, ConfigMapConfig{Namespace: "dns", Name: "lan-hosts", Key: defaultConfigMapKey}, cfg.ConfigMap)
	assert.Equal(t, []string{"localhost", "gateway.lan"}, cfg.Protected)
	assert.True(t, cfg.Lock)
	assert.False(t, cfg.Atomic)
	assert.Equal(t, ":9999", cfg.Serve.Listen)
	assert.Equal(t, ":8080", cfg.Serve.HealthListen)
	assert.Equal(t, "info", cfg.LogLevel)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("protected: {"), 0644))
	_, err = LoadConfig(bad)
	assert.ErrorContains(t, err, "parsing config")
}

func TestConfigResolvePrecedence(t *testing.T) {
	newFlags := func(args ...string) (*pflag.FlagSet, Config) {
		var flags Config
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		bindConfigFlags(fs, &flags)
		require.NoError(t, fs.Parse(args))
		return fs, flags
	}

	t.Run("defaults", func(t *testing.T) {
		t.Setenv(HostsFileEnv, "")
		fs, flags := newFlags()
		cfg := DefaultConfig().resolve(fs, flags)
		assert.Equal(t, DefaultHostsPath(), cfg.HostsFile)
		assert.Equal(t, backendDisk, cfg.Backend)
	})

	t.Run("config file", func(t *testing.T) {
		t.Setenv(HostsFileEnv, "")
		fs, flags := newFlags()
		file := DefaultConfig()
		file.HostsFile = "/from/config"
		assert.Equal(t, "/from/config", file.resolve(fs, flags).HostsFile)
	})

	t.Run("environment beats config file", func(t *testing.T) {
		t.Setenv(HostsFileEnv, "/from/env")
		fs, flags := newFlags()
		file := DefaultConfig()
		file.HostsFile = "/from/config"
		assert.Equal(t, "/from/env", file.resolve(fs, flags).HostsFile)
	})

	t.Run("flags beat everything", func(t *testing.T) {
		t.Setenv(HostsFileEnv, "/from/env")
		fs, flags := newFlags("--hosts-file", "/from/flag", "--atomic", "--configmap-key", "lan")
		file := DefaultConfig()
		file.HostsFile = "/from/config"
		file.Lock = true

		cfg := file.resolve(fs, flags)
		assert.Equal(t, "/from/flag", cfg.HostsFile)
		assert.True(t, cfg.Atomic)
		assert.True(t, cfg.Lock, "unset flags keep the config file value")
		assert.Equal(t, "lan", cfg.ConfigMap.Key)
	})

	t.Run("empty protected list falls back to defaults", func(t *testing.T) {
		fs, flags := newFlags()
		file := DefaultConfig()
		file.Protected = nil
		assert.Equal(t, []string{"localhost", "broadcasthost"}, file.resolve(fs, flags).Protected)
	})
}
