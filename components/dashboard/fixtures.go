package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	fixturesVersionV1 = "1"
	// FixturesVersion exposes the current fixtures format version for tooling.
	FixturesVersion = fixturesVersionV1
)

// ErrInvalidFixtures wraps shape and decoding failures of a fixtures document.
var ErrInvalidFixtures = errors.New("dashboard: invalid fixtures")

// FixturesDocument is a YAML document overriding the built-in mock data.
// Sections that are omitted keep their defaults; map sections merge by key.
type FixturesDocument struct {
	Version string  `yaml:"version"`
	Name    string  `yaml:"name,omitempty"`
	Dataset Dataset `yaml:",inline"`
	Source  string  `yaml:"-"`
}

// ReadFixtures loads a fixtures document from disk.
func ReadFixtures(path string) (*FixturesDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open fixtures %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeFixtures(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode fixtures %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeFixtures reads, shape-checks and decodes a fixtures document on top
// of DefaultDataset.
func DecodeFixtures(r io.Reader) (*FixturesDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dashboard: read fixtures: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: document is empty", ErrInvalidFixtures)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse: %w", ErrInvalidFixtures, err)
	}
	if err := validateFixturesShape(raw); err != nil {
		return nil, err
	}

	doc := FixturesDocument{Dataset: DefaultDataset()}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidFixtures, err)
	}
	if doc.Version != fixturesVersionV1 {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrInvalidFixtures, doc.Version)
	}
	return &doc, nil
}

// LoadDataset returns DefaultDataset, or the fixtures at path when set.
func LoadDataset(path string) (Dataset, error) {
	if path == "" {
		return DefaultDataset(), nil
	}
	doc, err := ReadFixtures(path)
	if err != nil {
		return Dataset{}, err
	}
	return doc.Dataset, nil
}
