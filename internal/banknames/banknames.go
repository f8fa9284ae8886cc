// Package banknames manages the member-code to display-name mapping used
// to normalize the terse subscriber names bureau reports carry.
package banknames

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"crediq/bureau-xml/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// BankName is one mapping entry from a member code or raw subscriber
// string to a display name.
type BankName struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// Store loads and resolves bank display names from a YAML mapping file.
type Store struct {
	File  string
	names map[string]string
}

// NewStore creates a store for the given mapping file. The file is
// optional; a store with no file resolves everything to its input.
func NewStore(file string) *Store {
	return &Store{File: file}
}

// FindConfigFile looks for a configuration file in standard locations.
func (s *Store) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "bureau-xml", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// Load reads the YAML mapping file. A missing file is not an error; the
// store just stays empty.
func (s *Store) Load() error {
	filename := s.File
	if filename == "" {
		filename = "banks.yaml"
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		log.Debugf("Bank name mapping file not found: %s", filename)
		s.names = map[string]string{}
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading bank names file: %w", err)
	}

	var entries []BankName
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("error parsing bank names file: %w", err)
	}

	s.names = make(map[string]string, len(entries))
	for _, entry := range entries {
		s.names[normalizeKey(entry.Code)] = entry.Name
	}

	log.WithField("count", len(s.names)).Debug("Loaded bank name mappings")
	return nil
}

// Save writes the current mapping back to the given path.
func (s *Store) Save(path string) error {
	entries := make([]BankName, 0, len(s.names))
	for code, name := range s.names {
		entries = append(entries, BankName{Code: code, Name: name})
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("error marshalling bank names: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("error writing bank names file: %w", err)
	}
	return nil
}

// Resolve maps a raw subscriber name or member code to a display name.
// Unknown inputs pass through unchanged.
func (s *Store) Resolve(raw string) string {
	if s == nil || len(s.names) == 0 {
		return raw
	}
	if name, ok := s.names[normalizeKey(raw)]; ok {
		return name
	}
	return raw
}

func normalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}
