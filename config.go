package alphavariant

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config describes one batch: which inputs under BaseDir to remap, and the
// variants to produce under OutputDir/<tag>/<input>.
type Config struct {
	BaseDir   string    `json:"base_dir"`
	OutputDir string    `json:"output_dir"`
	Inputs    []string  `json:"inputs"`
	Variants  []Variant `json:"variants"`

	// Workers bounds the number of images processed at once; 0 or 1 runs
	// sequentially.
	Workers int `json:"workers"`
}

// DefaultInputs are the boundary asset categories under the base directory.
func DefaultInputs() []string {
	return []string{"edge", "corner", "center", "chart-border.png"}
}

// DefaultConfig lays out inputs under root/base and outputs under root.
func DefaultConfig(root string) Config {
	return Config{
		BaseDir:   filepath.Join(root, "base"),
		OutputDir: root,
		Inputs:    DefaultInputs(),
		Variants:  DefaultVariants(),
		Workers:   1,
	}
}

// LoadConfig reads a JSON config. Fields absent from the file keep the
// values of DefaultConfig(root).
func LoadConfig(path, root string) (Config, error) {
	cfg := DefaultConfig(root)
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	var file struct {
		BaseDir   string    `json:"base_dir"`
		OutputDir string    `json:"output_dir"`
		Inputs    []string  `json:"inputs"`
		Variants  []Variant `json:"variants"`
		Workers   *int      `json:"workers"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %v", ErrConfig, path, err)
	}
	if file.BaseDir != "" {
		cfg.BaseDir = file.BaseDir
	}
	if file.OutputDir != "" {
		cfg.OutputDir = file.OutputDir
	}
	if file.Inputs != nil {
		cfg.Inputs = file.Inputs
	}
	if file.Variants != nil {
		cfg.Variants = file.Variants
	}
	if file.Workers != nil {
		cfg.Workers = *file.Workers
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.BaseDir == "" {
		return fmt.Errorf("%w: empty base_dir", ErrConfig)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: empty output_dir", ErrConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d < 0", ErrConfig, c.Workers)
	}
	if len(c.Variants) == 0 {
		return fmt.Errorf("%w: no variants", ErrConfig)
	}
	seen := make(map[string]bool, len(c.Variants))
	for _, v := range c.Variants {
		switch {
		case v.Tag == "" || v.Tag == "." || v.Tag == "..":
			return fmt.Errorf("%w: bad variant tag %q", ErrConfig, v.Tag)
		case strings.ContainsAny(v.Tag, `/\`):
			return fmt.Errorf("%w: variant tag %q contains a path separator", ErrConfig, v.Tag)
		case seen[v.Tag]:
			return fmt.Errorf("%w: duplicate variant tag %q", ErrConfig, v.Tag)
		case !inUnit(v.OpaqueAlpha) || !inUnit(v.TransparentAlpha):
			return fmt.Errorf("%w: variant %s alphas (%v, %v) outside [0,1]",
				ErrConfig, v.Tag, v.OpaqueAlpha, v.TransparentAlpha)
		}
		seen[v.Tag] = true
		if out := filepath.Join(c.OutputDir, v.Tag); overlaps(out, c.BaseDir) {
			return fmt.Errorf("%w: variant %s writes to %s, which overlaps base_dir %s",
				ErrConfig, v.Tag, out, c.BaseDir)
		}
	}
	for _, in := range c.Inputs {
		if !filepath.IsLocal(in) {
			return fmt.Errorf("%w: input %q must be a relative path inside base_dir", ErrConfig, in)
		}
	}
	return nil
}

// overlaps reports whether one of the two directories contains the other.
func overlaps(a, b string) bool {
	return within(a, b) || within(b, a)
}

func within(parent, child string) bool {
	parent, child = absPath(parent), absPath(child)
	rel, err := filepath.Rel(parent, child)
	return err == nil && (rel == "." || filepath.IsLocal(rel))
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func inUnit(f float64) bool {
	return f >= 0 && f <= 1
}
