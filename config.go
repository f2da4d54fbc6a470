package main

import (
	"os"
	"runtime"

	pkgerr "github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/lachlan2k/hostie/hostsfile"
)

// HostsFileEnv overrides the hosts file location, mostly for tests and
// alternate targets.
const HostsFileEnv = "HOSTIE_HOSTS_FILE"

const (
	backendDisk      = "disk"
	backendConfigMap = "configmap"
)

type ConfigMapConfig struct {
	Namespace string `yaml:"namespace"`
	Name      string `yaml:"name"`
	Key       string `yaml:"key,omitempty"`
}

type ServeConfig struct {
	Listen       string `yaml:"listen"`
	HealthListen string `yaml:"health_listen"`
}

type Config struct {
	HostsFile string          `yaml:"hosts_file,omitempty"`
	Backend   string          `yaml:"backend"`
	ConfigMap ConfigMapConfig `yaml:"configmap"`
	Protected []string        `yaml:"protected,omitempty"`
	Lock      bool            `yaml:"lock"`
	Atomic    bool            `yaml:"atomic"`
	LogLevel  string          `yaml:"log_level"`
	Serve     ServeConfig     `yaml:"serve"`
}

func DefaultConfig() Config {
	return Config{
		Backend: backendDisk,
		ConfigMap: ConfigMapConfig{
			Namespace: "default",
			Name:      "external-dns-hostsfile",
			Key:       defaultConfigMapKey,
		},
		Protected: append([]string(nil), hostsfile.DefaultProtected...),
		LogLevel:  "info",
		Serve: ServeConfig{
			Listen:       ":8888",
			HealthListen: ":8080",
		},
	}
}

func DefaultHostsPath() string {
	if runtime.GOOS == "windows" {
		if root := os.Getenv("SystemRoot"); root != "" {
			return root + `\System32\drivers\etc\hosts`
		}
		return `C:\Windows\System32\drivers\etc\hosts`
	}
	return "/etc/hosts"
}

// LoadConfig reads the YAML file at path over the defaults. An empty path
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, pkgerr.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, pkgerr.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

func bindConfigFlags(fs *pflag.FlagSet, c *Config) {
	fs.StringVar(&c.HostsFile, "hosts-file", "", "Path to the hosts file (env "+HostsFileEnv+")")
	fs.StringVar(&c.Backend, "backend", backendDisk, "Backend to persist the hosts file, options: disk, configmap")
	fs.StringVar(&c.ConfigMap.Namespace, "configmap-namespace", "default", "Namespace for the configmap backend")
	fs.StringVar(&c.ConfigMap.Name, "configmap-name", "external-dns-hostsfile", "Name of the configmap to use for the configmap backend")
	fs.StringVar(&c.ConfigMap.Key, "configmap-key", defaultConfigMapKey, "Key holding the hosts file in the configmap")
	fs.BoolVar(&c.Lock, "lock", false, "Hold an advisory lock on <hosts-file>.lock while editing")
	fs.BoolVar(&c.Atomic, "atomic", false, "Replace the hosts file through a temporary file and rename")
	fs.StringVar(&c.LogLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
}

// resolve layers the sources in order of precedence: flags that were set on
// the command line, the environment, the config file, then defaults.
func (c Config) resolve(fs *pflag.FlagSet, flags Config) Config {
	if v := os.Getenv(HostsFileEnv); v != "" {
		c.HostsFile = v
	}

	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}
	if changed("hosts-file") {
		c.HostsFile = flags.HostsFile
	}
	if changed("backend") {
		c.Backend = flags.Backend
	}
	if changed("configmap-namespace") {
		c.ConfigMap.Namespace = flags.ConfigMap.Namespace
	}
	if changed("configmap-name") {
		c.ConfigMap.Name = flags.ConfigMap.Name
	}
	if changed("configmap-key") {
		c.ConfigMap.Key = flags.ConfigMap.Key
	}
	if changed("lock") {
		c.Lock = flags.Lock
	}
	if changed("atomic") {
		c.Atomic = flags.Atomic
	}
	if changed("log-level") {
		c.LogLevel = flags.LogLevel
	}
	if changed("listen") {
		c.Serve.Listen = flags.Serve.Listen
	}
	if changed("health-listen") {
		c.Serve.HealthListen = flags.Serve.HealthListen
	}

	if c.HostsFile == "" {
		c.HostsFile = DefaultHostsPath()
	}
	if len(c.Protected) == 0 {
		c.Protected = append([]string(nil), hostsfile.DefaultProtected...)
	}
	return c
}
