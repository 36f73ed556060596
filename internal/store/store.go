// Package store persists the CLI's JSON configuration records: the candidate
// city list, the active city and the API key.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"

	"github.com/fakhrymubarak/weather-cli/internal/model"
)

var (
	ErrConfigUnavailable   = errors.New("configuration unavailable")
	ErrConfigShapeMismatch = errors.New("configuration has unexpected shape")
)

// Options names the directory and files backing each record.
type Options struct {
	Dir            string
	CandidatesFile string
	ActiveCityFile string
	APIKeyFile     string
}

// FileStore reads and writes the records as JSON files on fs.
type FileStore struct {
	fs       afero.Fs
	opts     Options
	validate *validator.Validate
}

func NewFileStore(fs afero.Fs, opts Options) *FileStore {
	return &FileStore{
		fs:       fs,
		opts:     opts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.opts.Dir, name)
}

// Read returns the raw JSON stored under name.
func (s *FileStore) Read(name string) (json.RawMessage, error) {
	data, err := afero.ReadFile(s.fs, s.path(name))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrConfigUnavailable, name, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrConfigUnavailable, name)
	}
	return json.RawMessage(bytes.TrimSpace(data)), nil
}

// Write replaces the content stored under name with v encoded as JSON.
func (s *FileStore) Write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrConfigUnavailable, name, err)
	}
	if err := s.fs.MkdirAll(s.opts.Dir, 0o755); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrConfigUnavailable, name, err)
	}
	if err := afero.WriteFile(s.fs, s.path(name), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrConfigUnavailable, name, err)
	}
	return nil
}

// LoadCandidates reads the list of cities offered for selection.
func (s *FileStore) LoadCandidates() ([]model.City, error) {
	name := s.opts.CandidatesFile
	raw, err := s.Read(name)
	if err != nil {
		return nil, err
	}
	if !isArray(raw) {
		return nil, fmt.Errorf("%w: %s must hold a list of cities", ErrConfigShapeMismatch, name)
	}

	var cities []model.City
	if err := json.Unmarshal(raw, &cities); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigShapeMismatch, name, err)
	}
	if len(cities) == 0 {
		return nil, fmt.Errorf("%w: %s holds no cities", ErrConfigShapeMismatch, name)
	}
	for i := range cities {
		if err := s.validate.Struct(cities[i]); err != nil {
			return nil, fmt.Errorf("%w: %s entry %d: %v", ErrConfigShapeMismatch, name, i+1, err)
		}
	}
	return cities, nil
}

// LoadActiveCity reads the single city used for weather lookups.
func (s *FileStore) LoadActiveCity() (model.City, error) {
	var city model.City
	if err := s.loadObject(s.opts.ActiveCityFile, &city); err != nil {
		return model.City{}, err
	}
	return city, nil
}

// SaveActiveCity overwrites the active city record, whatever it held before.
func (s *FileStore) SaveActiveCity(city model.City) error {
	return s.Write(s.opts.ActiveCityFile, city)
}

func (s *FileStore) LoadAPIKey() (model.ApiKey, error) {
	var key model.ApiKey
	if err := s.loadObject(s.opts.APIKeyFile, &key); err != nil {
		return model.ApiKey{}, err
	}
	return key, nil
}

// loadObject decodes a single JSON object stored under name into v and validates it.
func (s *FileStore) loadObject(name string, v any) error {
	raw, err := s.Read(name)
	if err != nil {
		return err
	}
	if !isObject(raw) {
		return fmt.Errorf("%w: %s must hold a single record", ErrConfigShapeMismatch, name)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigShapeMismatch, name, err)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigShapeMismatch, name, err)
	}
	return nil
}

func isArray(raw json.RawMessage) bool {
	return len(raw) > 0 && raw[0] == '['
}

func isObject(raw json.RawMessage) bool {
	return len(raw) > 0 && raw[0] == '{'
}
