package ontology

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads an ontology definition from a YAML file. yaml.v3 rejects
// duplicate mapping keys, so duplicate synonym entries fail here rather than
// being tie-broken at runtime; New catches duplicates that only collide
// after normalization.
func LoadFile(path string) (*Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ontology: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse ontology: %w", err)
	}

	return New(def)
}
