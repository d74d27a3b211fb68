package valuation

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/wonny/carteira/internal/contracts"
)

// rulesFile is the on-disk override. Omitted values keep their defaults.
type rulesFile struct {
	Tolerance        *float64           `yaml:"tolerance" toml:"tolerance"`
	GrahamMultiplier *float64           `yaml:"graham_multiplier" toml:"graham_multiplier"`
	Epsilon          *float64           `yaml:"epsilon" toml:"epsilon"`
	Thresholds       map[string]float64 `yaml:"thresholds" toml:"thresholds"`
	Keywords         []KeywordRule      `yaml:"keywords" toml:"keywords"`
}

// LoadRules reads a rules override file (.toml, .yaml or .yml) on top of
// DefaultRules. Unknown keys are rejected so that a typo fails loudly.
// An empty path returns the defaults.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}

	var f rulesFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&f)
	default:
		return Rules{}, fmt.Errorf("unsupported rules file extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
	if err != nil {
		return Rules{}, fmt.Errorf("decode rules file %s: %w", path, err)
	}

	rules := f.apply(DefaultRules())
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid rules file %s: %w", path, err)
	}

	return rules, nil
}

func (f rulesFile) apply(r Rules) Rules {
	if f.Tolerance != nil {
		r.Tolerance = *f.Tolerance
	}
	if f.GrahamMultiplier != nil {
		r.GrahamMultiplier = *f.GrahamMultiplier
	}
	if f.Epsilon != nil {
		r.Epsilon = *f.Epsilon
	}
	for cat, t := range f.Thresholds {
		r.Thresholds[contracts.Category(strings.ToLower(cat))] = t
	}
	if len(f.Keywords) > 0 {
		r.Keywords = f.Keywords
	}
	return r
}

// Hash fingerprints a rule set (SHA-256 over canonical JSON) so that reports
// produced under different rules can be told apart.
func Hash(r Rules) (string, error) {
	// encoding/json sorts map keys, so the output is deterministic
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
