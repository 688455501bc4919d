package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store writes configuration values back to the global or local file.
type Store struct {
	GlobalPath string
	LocalPath  string
}

// StoreFor returns a store writing to the files r reads from.
func StoreFor(r *Resolver) Store {
	return Store{GlobalPath: r.GlobalPath(), LocalPath: r.LocalPath()}
}

// SaveGlobal validates and saves a key to the global config file.
func (s Store) SaveGlobal(key, value string) error {
	if s.GlobalPath == "" {
		return fmt.Errorf("global config path unknown")
	}
	if err := Validate(key, value); err != nil {
		return err
	}
	return updateFile(s.GlobalPath, 0o600, func(m map[string]any) { m[key] = value })
}

// SaveLocal validates and saves a non-secret key to the local config file.
func (s Store) SaveLocal(key, value string) error {
	if s.LocalPath == "" {
		return ErrNoGitRoot
	}
	if k, ok := LookupKey(key); ok && k.Secret {
		return fmt.Errorf("%w: %s", ErrSecretInLocal, key)
	}
	if err := Validate(key, value); err != nil {
		return err
	}
	// Local config is committed alongside the repository.
	return updateFile(s.LocalPath, 0o644, func(m map[string]any) { m[key] = value })
}

// DeleteGlobal removes a key from the global config. A missing file or key
// is not an error.
func (s Store) DeleteGlobal(key string) error {
	if s.GlobalPath == "" {
		return nil
	}
	if _, err := os.Stat(s.GlobalPath); os.IsNotExist(err) {
		return nil
	}
	return updateFile(s.GlobalPath, 0o600, func(m map[string]any) { delete(m, key) })
}

func updateFile(path string, perm os.FileMode, mutate func(map[string]any)) error {
	existing, err := readConfigFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if existing == nil {
		existing = make(map[string]any)
	}

	mutate(existing)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(existing)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}
