package normalize

import (
	"fmt"
	"os"

	"github.com/aretw0/deduce/internal/assets"
	"github.com/aretw0/deduce/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Vocabulary is the serialized form of a canonical term list plus synonyms.
type Vocabulary struct {
	Canonical []string            `yaml:"canonical" json:"canonical"`
	Synonyms  map[string][]string `yaml:"synonyms" json:"synonyms"`
}

// ParseVocabulary decodes a YAML (or JSON) vocabulary document.
// Terms and synonym keys are normalized like facts.
func ParseVocabulary(data []byte) (Vocabulary, error) {
	var raw Vocabulary
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Vocabulary{}, fmt.Errorf("failed to parse vocabulary: %w", err)
	}

	v := Vocabulary{
		Canonical: domain.NormalizeFacts(raw.Canonical),
		Synonyms:  make(map[string][]string, len(raw.Synonyms)),
	}
	for key, targets := range raw.Synonyms {
		k := domain.NormalizeFact(key)
		if k == "" {
			continue
		}
		v.Synonyms[k] = domain.NormalizeFacts(targets)
	}
	return v, nil
}

// LoadVocabulary reads a vocabulary file from disk.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("failed to read vocabulary: %w", err)
	}
	return ParseVocabulary(data)
}

// BuiltinVocabulary returns the embedded symptom vocabulary.
func BuiltinVocabulary() Vocabulary {
	v, err := ParseVocabulary(assets.Vocabulary)
	if err != nil {
		panic(fmt.Sprintf("embedded vocabulary is invalid: %v", err))
	}
	return v
}
