package clientcli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sagarc03/challengedb"
)

// Connection defaults, matching the server's own defaults.
const (
	DefaultEndpoint = "http://localhost:9000"
	DefaultBasePath = "/api/challenge"
)

// Environment variables read by the client CLI.
const (
	EnvEndpoint = "CHALLENGEDB_ENDPOINT"
	EnvBasePath = "CHALLENGEDB_BASE_PATH"
	EnvSecret   = "CHALLENGEDB_SECRET"
	EnvProfile  = "CHALLENGEDB_PROFILE"
	EnvConfig   = "CHALLENGEDB_CONFIG"
)

// Config locates one challengedb server and holds the secret its digests
// are keyed with.
type Config struct {
	Endpoint string `yaml:"endpoint"`
	BasePath string `yaml:"base_path,omitempty"`
	Secret   string `yaml:"secret"`
}

// Overlay returns c with every non-empty field of o applied on top.
func (c Config) Overlay(o Config) Config {
	if o.Endpoint != "" {
		c.Endpoint = o.Endpoint
	}
	if o.BasePath != "" {
		c.BasePath = o.BasePath
	}
	if o.Secret != "" {
		c.Secret = o.Secret
	}
	return c
}

// normalized fills in defaults and puts the endpoint and base path in the
// form the digest is computed over.
func (c Config) normalized() Config {
	c = Config{Endpoint: DefaultEndpoint, BasePath: DefaultBasePath}.Overlay(c)
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")
	c.BasePath = challengedb.NormalizeBasePath(c.BasePath)
	return c
}

// ConfigFromEnv reads the connection settings from CHALLENGEDB_ENDPOINT,
// CHALLENGEDB_BASE_PATH and CHALLENGEDB_SECRET.
func ConfigFromEnv() Config {
	return Config{
		Endpoint: os.Getenv(EnvEndpoint),
		BasePath: os.Getenv(EnvBasePath),
		Secret:   os.Getenv(EnvSecret),
	}
}

// DefaultConfigPath returns ~/.challengedb/config.yaml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".challengedb", "config.yaml")
}

// Profiles is the client config file: named servers plus the name used when
// none is asked for.
//
//	default: local
//	servers:
//	  local:
//	    endpoint: http://localhost:9000
//	    secret: challenge-database-api
type Profiles struct {
	Default string            `yaml:"default,omitempty"`
	Servers map[string]Config `yaml:"servers"`
}

// LoadProfiles reads the config file at path. A missing file, or an empty
// path, is an empty set of profiles.
func LoadProfiles(path string) (*Profiles, error) {
	p := &Profiles{}
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(filepath.Clean(path)) //#nosec G304 -- path is user-provided config file
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}
	return p, nil
}

// Save writes the profiles to path, readable by the owner only.
func (p *Profiles) Save(path string) error {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}
	return nil
}

// Lookup returns the named server. An empty name selects the default, or
// the only server when there is just one.
func (p *Profiles) Lookup(name string) (Config, error) {
	if len(p.Servers) == 0 {
		return Config{}, ErrNoProfiles
	}

	if name == "" {
		name = p.Default
	}
	if name == "" {
		if len(p.Servers) > 1 {
			return Config{}, ErrNoDefaultProfile
		}
		name = p.Names()[0]
	}

	cfg, ok := p.Servers[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return cfg, nil
}

// Set stores cfg under name, replacing any server already there. The first
// server added becomes the default.
func (p *Profiles) Set(name string, cfg Config) {
	if p.Servers == nil {
		p.Servers = make(map[string]Config)
	}
	p.Servers[name] = cfg
	if len(p.Servers) == 1 {
		p.Default = name
	}
}

// Use makes name the default.
func (p *Profiles) Use(name string) error {
	if _, ok := p.Servers[name]; !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	p.Default = name
	return nil
}

// Remove deletes name. Removing the default leaves no default.
func (p *Profiles) Remove(name string) error {
	if _, ok := p.Servers[name]; !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	delete(p.Servers, name)
	if p.Default == name {
		p.Default = ""
	}
	return nil
}

// Names returns the server names in sorted order.
func (p *Profiles) Names() []string {
	names := make([]string, 0, len(p.Servers))
	for name := range p.Servers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
