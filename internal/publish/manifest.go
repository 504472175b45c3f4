package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestFile is written into the output directory when enabled.
const ManifestFile = "manifest.yaml"

// Manifest records what a publish run produced.
type Manifest struct {
	BuildID     string          `yaml:"build_id"`
	GeneratedAt time.Time       `yaml:"generated_at"`
	StaticFiles int             `yaml:"static_files"`
	Pages       []PageResult    `yaml:"pages"`
	Skipped     []SkippedResult `yaml:"skipped,omitempty"`
}

func writeManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return writeFile(filepath.Join(dir, ManifestFile), data)
}

// ReadManifest loads a manifest previously written to dir.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}
