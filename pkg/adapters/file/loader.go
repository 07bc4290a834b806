package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/deduce/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.RuleLoader for a single YAML or JSON catalog file.
//
// The document is either a bare list of rules or a mapping with a "rules" key
// (and an optional "name"). Each rule accepts "id", "if", "then" and
// "explanation"; "if" may be a list or a comma separated string.
type Loader struct {
	Path string
	data []byte
}

// NewLoader creates a loader reading path on every LoadRules call.
func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

// NewLoaderFromBytes creates a loader over an in-memory document.
// It is used for embedded catalogs.
func NewLoaderFromBytes(name string, data []byte) *Loader {
	return &Loader{Path: name, data: data}
}

type catalogDocument struct {
	Name  string `yaml:"name"`
	Rules []any  `yaml:"rules"`
}

// Name returns the catalog name declared in the document, falling back to
// the file name without extension.
func (l *Loader) Name() string {
	if raw, err := l.read(); err == nil {
		var doc catalogDocument
		if yaml.Unmarshal(raw, &doc) == nil && doc.Name != "" {
			return doc.Name
		}
	}
	base := filepath.Base(l.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadRules parses the catalog document.
func (l *Loader) LoadRules(ctx context.Context) ([]domain.RuleSpec, error) {
	raw, err := l.read()
	if err != nil {
		return nil, err
	}

	var root any
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", l.Path, err)
	}

	var items []any
	switch v := root.(type) {
	case nil:
		return []domain.RuleSpec{}, nil
	case []any:
		items = v
	case map[string]any:
		var doc catalogDocument
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", l.Path, err)
		}
		items = doc.Rules
	default:
		return nil, fmt.Errorf("catalog %s: expected a list of rules or a 'rules' key, got %T", l.Path, root)
	}

	specs := make([]domain.RuleSpec, 0, len(items))
	for i, item := range items {
		spec, err := DecodeRule(item)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: rule #%d: %w", l.Path, i+1, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (l *Loader) read() ([]byte, error) {
	if l.data != nil {
		return l.data, nil
	}
	raw, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return raw, nil
}

// stringToFactsHook splits a comma separated string into a slice, dropping
// segments that are blank once trimmed. Explicit lists are left as is.
func stringToFactsHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if f.Kind() != reflect.String || t.Kind() != reflect.Slice {
		return data, nil
	}
	var out []string
	for _, part := range strings.Split(data.(string), ",") {
		if strings.TrimSpace(part) != "" {
			out = append(out, part)
		}
	}
	if out == nil {
		return []string{}, nil
	}
	return out, nil
}

// DecodeRule converts a generic map (as produced by YAML/JSON decoding or
// document frontmatter) into a RuleSpec.
func DecodeRule(input any) (domain.RuleSpec, error) {
	var spec domain.RuleSpec
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(stringToFactsHook),
		WeaklyTypedInput: true,
		Result:           &spec,
	})
	if err != nil {
		return spec, err
	}
	if err := decoder.Decode(input); err != nil {
		return spec, err
	}
	return spec, nil
}
