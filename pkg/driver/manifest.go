package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest describes a program fixture: which document to run and what the
// run is expected to produce.
type Manifest struct {
	Path        string
	Description string
	Entry       string
	Expect      Expectation
}

// Expectation is the observable outcome of running a fixture.
type Expectation struct {
	Stdout []string
	// Error is the full diagnostic line, empty when the run must succeed.
	Error string
	// Dump, when set, is the expected scope dump after the run.
	Dump string
}

type manifestFile struct {
	Description string     `yaml:"description"`
	Entry       string     `yaml:"entry"`
	Expect      expectYAML `yaml:"expect"`
}

type expectYAML struct {
	Stdout stringList `yaml:"stdout"`
	Error  string     `yaml:"error"`
	Dump   string     `yaml:"dump"`
}

// LoadManifest parses manifest.yml from disk.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	entry := strings.TrimSpace(raw.Entry)
	if entry == "" {
		entry = "program.yml"
	}
	return &Manifest{
		Path:        absPath,
		Description: strings.TrimSpace(raw.Description),
		Entry:       entry,
		Expect: Expectation{
			Stdout: raw.Expect.Stdout.Clone(),
			Error:  strings.TrimSpace(raw.Expect.Error),
			Dump:   raw.Expect.Dump,
		},
	}, nil
}

// EntryPath resolves the program document relative to the manifest.
func (m *Manifest) EntryPath() string {
	if filepath.IsAbs(m.Entry) {
		return filepath.Clean(m.Entry)
	}
	return filepath.Join(filepath.Dir(m.Path), filepath.FromSlash(m.Entry))
}

type stringList []string

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	return append([]string(nil), l...)
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.ShortTag() == "!!null" {
			*l = nil
			return nil
		}
		*l = stringList{value.Value}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}
