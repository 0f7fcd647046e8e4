// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves API credentials from the process environment, a
// .env file, and a directory of plain-text secret files.
//
// Each file in the secrets directory holds one secret: the filename is the
// key (e.g. openai-api-key) and the trimmed contents are the value.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ErrMissingCredential is returned by Require when no source has the key.
var ErrMissingCredential = errors.New("missing credential")

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadDotEnv parses a dotenv file. Keys are returned upper-cased, since
// viper folds them to lower case. A missing file yields an empty map.
func LoadDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	env := make(map[string]string)
	for _, key := range v.AllKeys() {
		if value := strings.TrimSpace(v.GetString(key)); value != "" {
			env[strings.ToUpper(key)] = value
		}
	}
	return env, nil
}

// Environ returns the non-empty variables of the process environment.
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && v != "" {
			env[k] = v
		}
	}
	return env
}

// FileKey maps an environment variable name to its secrets-directory file
// name: OPENAI_API_KEY becomes openai-api-key.
func FileKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", "-"))
}

// Require returns the first non-empty value of name across sources, in
// order. Each source is checked for name itself and for FileKey(name).
func Require(name string, sources ...map[string]string) (string, error) {
	for _, src := range sources {
		for _, key := range []string{name, FileKey(name)} {
			if v := strings.TrimSpace(src[key]); v != "" {
				return v, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s is missing from the environment", ErrMissingCredential, name)
}
