// Package ontology is the canonical source of truth for capability identity,
// synonyms, and dependency requirements. The taxonomy is loaded once at
// process start and shared read-only across all workers.
package ontology

import (
	"sort"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/caregap/internal/model"
)

// Capability is one entry in the fixed taxonomy
type Capability struct {
	Code      model.CapabilityCode   `yaml:"-"`
	Label     string                 `yaml:"label"`
	Critical  bool                   `yaml:"critical,omitempty"`
	DependsOn []model.CapabilityCode `yaml:"depends_on,omitempty"`
}

// Definition is the loadable form of an ontology
type Definition struct {
	Capabilities map[model.CapabilityCode]Capability `yaml:"capabilities"`
	Synonyms     map[string]model.CapabilityCode     `yaml:"synonyms"`
}

// Ontology is the immutable capability taxonomy. Never mutated after New,
// so no locking is needed across parallel workers.
type Ontology struct {
	capabilities map[model.CapabilityCode]Capability
	synonyms     map[string]model.CapabilityCode
	critical     []model.CapabilityCode

	// similarity enables fuzzy synonym matching when > 0; off by default
	similarity float64

	// memo caches normalized-phrase resolutions; resolution is deterministic
	// so entries never expire
	memo *gocache.Cache
}

// New builds an ontology from a definition, rejecting inconsistent content
// with a ConfigurationError. Duplicate synonym keys (after normalization)
// pointing at different codes are a load-time error, never a runtime
// tie-break.
func New(def Definition) (*Ontology, error) {
	if len(def.Capabilities) == 0 {
		return nil, model.Configurationf("ontology has no capabilities")
	}

	o := &Ontology{
		capabilities: make(map[model.CapabilityCode]Capability, len(def.Capabilities)),
		synonyms:     make(map[string]model.CapabilityCode, len(def.Synonyms)),
		memo:         gocache.New(gocache.NoExpiration, 0),
	}

	for code, cap := range def.Capabilities {
		cap.Code = code
		o.capabilities[code] = cap
		if cap.Critical {
			o.critical = append(o.critical, code)
		}
	}
	sort.Slice(o.critical, func(i, j int) bool { return o.critical[i] < o.critical[j] })

	// Dependencies must reference known codes
	for code, cap := range o.capabilities {
		for _, dep := range cap.DependsOn {
			if _, ok := o.capabilities[dep]; !ok {
				return nil, model.Configurationf("capability %q depends on unknown code %q", code, dep)
			}
		}
	}

	for phrase, code := range def.Synonyms {
		if _, ok := o.capabilities[code]; !ok {
			return nil, model.Configurationf("synonym %q maps to unknown code %q", phrase, code)
		}
		norm := Normalize(phrase)
		if norm == "" {
			return nil, model.Configurationf("synonym %q normalizes to the empty string", phrase)
		}
		if existing, ok := o.synonyms[norm]; ok && existing != code {
			return nil, model.Configurationf("synonym %q maps to both %q and %q", norm, existing, code)
		}
		// A synonym colliding with a canonical code must agree with it
		if _, isCode := o.capabilities[model.CapabilityCode(norm)]; isCode && model.CapabilityCode(norm) != code {
			return nil, model.Configurationf("synonym %q shadows canonical code %q", norm, norm)
		}
		o.synonyms[norm] = code
	}

	return o, nil
}

// WithSimilarity returns a copy resolving near-miss phrases at or above the
// given token-overlap threshold. Zero disables fuzzy matching.
func (o *Ontology) WithSimilarity(threshold float64) *Ontology {
	clone := *o
	clone.similarity = threshold
	clone.memo = gocache.New(gocache.NoExpiration, 0)
	return &clone
}

// Has reports whether the code exists in the taxonomy
func (o *Ontology) Has(code model.CapabilityCode) bool {
	_, ok := o.capabilities[code]
	return ok
}

// Label returns the human label for a code
func (o *Ontology) Label(code model.CapabilityCode) (string, error) {
	cap, ok := o.capabilities[code]
	if !ok {
		return "", &model.UnknownCapabilityError{Code: code}
	}
	return cap.Label, nil
}

// DependenciesOf returns the direct prerequisite set for a capability.
// The set is not transitively closed: partial or indirect satisfaction is
// itself a diagnostic signal, so callers traverse explicitly when needed.
func (o *Ontology) DependenciesOf(code model.CapabilityCode) ([]model.CapabilityCode, error) {
	cap, ok := o.capabilities[code]
	if !ok {
		return nil, &model.UnknownCapabilityError{Code: code}
	}
	deps := make([]model.CapabilityCode, len(cap.DependsOn))
	copy(deps, cap.DependsOn)
	return deps, nil
}

// IsCritical reports whether the capability defines desert coverage
func (o *Ontology) IsCritical(code model.CapabilityCode) (bool, error) {
	cap, ok := o.capabilities[code]
	if !ok {
		return false, &model.UnknownCapabilityError{Code: code}
	}
	return cap.Critical, nil
}

// Critical returns the sorted set of critical capability codes
func (o *Ontology) Critical() []model.CapabilityCode {
	out := make([]model.CapabilityCode, len(o.critical))
	copy(out, o.critical)
	return out
}

// Codes returns all canonical codes, sorted
func (o *Ontology) Codes() []model.CapabilityCode {
	out := make([]model.CapabilityCode, 0, len(o.capabilities))
	for code := range o.capabilities {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Synonyms returns the normalized synonym table (copy)
func (o *Ontology) Synonyms() map[string]model.CapabilityCode {
	out := make(map[string]model.CapabilityCode, len(o.synonyms))
	for k, v := range o.synonyms {
		out[k] = v
	}
	return out
}
