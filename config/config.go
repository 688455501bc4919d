package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix is prepended to upper-cased key names for env lookup.
	EnvPrefix = "PULLSYNC_"

	// LocalConfigName is the repository-local config file in the git root.
	LocalConfigName = ".pullsync.yaml"

	globalConfigDir  = "pullsync"
	globalConfigFile = "config.yaml"
)

// Resolver merges configuration from every source.
type Resolver struct {
	globalPath string
	localPath  string
	gitRoot    string
	errWriter  io.Writer
	getenv     func(string) string

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// NewResolver creates a resolver using ~/.config/pullsync/config.yaml and the
// local config of the git repository enclosing dir.
func NewResolver(dir string) *Resolver {
	r := &Resolver{errWriter: os.Stderr, getenv: os.Getenv}

	if root := findGitRoot(dir); root != "" {
		r.gitRoot = root
		r.localPath = filepath.Join(root, LocalConfigName)
	}

	r.globalPath = DefaultGlobalPath()
	return r
}

// NewResolverWithPaths creates a resolver with explicit file paths.
// Either path may be empty to skip that source.
func NewResolverWithPaths(globalPath, localPath string) *Resolver {
	return &Resolver{
		globalPath: globalPath,
		localPath:  localPath,
		errWriter:  os.Stderr,
		getenv:     os.Getenv,
	}
}

// SetErrWriter sets where warnings are printed. Nil silences them.
func (r *Resolver) SetErrWriter(w io.Writer) {
	r.errWriter = w
}

// DefaultGlobalPath returns ~/.config/pullsync/config.yaml, or "" when the
// home directory is unknown.
func DefaultGlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", globalConfigDir, globalConfigFile)
}

func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	if r.errWriter != nil {
		fmt.Fprintf(r.errWriter, "Warning: %s\n", msg)
	}
}

// Resolved holds the final merged configuration.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for a key, or empty string if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// Source returns the source of a key's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// GetWithSource returns both the value and its source.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.values[key], c.sources[key]
}

// Keys returns the keys that have a value, sorted.
func (c *Resolved) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve builds the final config by merging all sources.
// Priority (highest to lowest): env > local > global > defaults.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	for _, k := range Keys {
		if k.Default != "" {
			cfg.set(k.Name, k.Default, SourceDefault)
		}
	}
	r.applyFile(cfg, r.globalPath, SourceGlobal)
	r.applyFile(cfg, r.localPath, SourceLocal)
	r.applyEnv(cfg)

	return cfg
}

// ResolveWithFlags resolves config and applies non-empty flag overrides.
func (r *Resolver) ResolveWithFlags(flags map[string]string) *Resolved {
	cfg := r.Resolve()
	for key, value := range flags {
		if value != "" {
			cfg.set(key, value, SourceFlag)
		}
	}
	return cfg
}

func (c *Resolved) set(key, value string, src Source) {
	c.values[key] = value
	c.sources[key] = src
}

func (r *Resolver) applyFile(cfg *Resolved, path string, src Source) {
	if path == "" {
		return
	}

	parsed, err := readConfigFile(path)
	if err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", path, err))
		return
	}

	for name, value := range parsed {
		key, ok := LookupKey(name)
		if !ok {
			r.warn(fmt.Sprintf("%s: ignoring unknown key %q", path, name))
			continue
		}
		if key.Secret && src == SourceLocal {
			r.warn(fmt.Sprintf("%s: ignoring secret %q in local config", path, name))
			continue
		}
		if s := toString(value); s != "" {
			cfg.set(name, s, src)
		}
	}
}

func (r *Resolver) applyEnv(cfg *Resolved) {
	for _, k := range Keys {
		for _, alias := range k.EnvAliases {
			if v := r.getenv(alias); v != "" {
				cfg.set(k.Name, v, SourceEnv)
			}
		}
		if v := r.getenv(EnvName(k.Name)); v != "" {
			cfg.set(k.Name, v, SourceEnv)
		}
	}
}

// EnvName returns the prefixed environment variable for key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// GitRoot returns the detected git root directory.
func (r *Resolver) GitRoot() string {
	return r.gitRoot
}

// GlobalPath returns the path to the global config file.
func (r *Resolver) GlobalPath() string {
	return r.globalPath
}

// LocalPath returns the path to the local config file.
func (r *Resolver) LocalPath() string {
	return r.localPath
}

// readConfigFile returns the file's top-level mapping. A missing file is
// not an error.
func readConfigFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int64, float64:
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}

// findGitRoot returns the worktree root of the repository enclosing dir.
func findGitRoot(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	wt, err := repo.Worktree()
	if err != nil {
		return ""
	}
	return wt.Filesystem.Root()
}
