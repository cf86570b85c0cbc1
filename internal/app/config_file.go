package app

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// FileConfig is the optional HCL configuration file. Unset attributes stay
// nil so that the caller can tell them apart from empty values.
//
//	manifest_path = "Cargo.toml"
//	exceptions    = ["tokio", "serde_json"]
//	format        = "text"
//	log_level     = "warn"
//	log_format    = "text"
type FileConfig struct {
	ManifestPath *string  `hcl:"manifest_path,optional"`
	Exceptions   []string `hcl:"exceptions,optional"`
	Format       *string  `hcl:"format,optional"`
	LogLevel     *string  `hcl:"log_level,optional"`
	LogFormat    *string  `hcl:"log_format,optional"`
}

// LoadConfigFile decodes an HCL (or HCL JSON) config file. A relative
// manifest_path is resolved against the directory of the config file.
func LoadConfigFile(path string) (*FileConfig, error) {
	var fc FileConfig
	if err := hclsimple.DecodeFile(path, nil, &fc); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	if fc.ManifestPath != nil && !filepath.IsAbs(*fc.ManifestPath) {
		resolved := filepath.Join(filepath.Dir(path), *fc.ManifestPath)
		fc.ManifestPath = &resolved
	}
	return &fc, nil
}
