// Package assets embeds the built-in symptom catalog and input vocabulary.
package assets

import (
	_ "embed"
)

// RulesName is the catalog name used for the embedded rules.
const RulesName = "symptoms"

//go:embed rules.yaml
var Rules []byte

//go:embed vocabulary.yaml
var Vocabulary []byte
