package types

import "errors"

// RelevancePolicy values. The two policies exist because one build mode
// pre-registers contract types through an ahead-of-time path and only needs
// object-model types discovered at runtime, while the other must discover
// everything at runtime.
const (
	// PolicyRuntime treats a module as relevant when it depends on the
	// contract module OR on the object-model module, and scans both
	// component-data and engine-object candidates.
	PolicyRuntime = "runtime"

	// PolicyPrecompiled treats a module as relevant when it depends on
	// exactly one of the two (XOR); contract-only modules were already
	// registered ahead of time and only object-model types need runtime
	// discovery.
	PolicyPrecompiled = "precompiled"
)

// Config holds catalog construction parameters.
type Config struct {
	// RelevancePolicy selects how modules are classified as relevant to
	// discovery. One of PolicyRuntime (default) or PolicyPrecompiled.
	RelevancePolicy string `json:"relevance_policy" yaml:"relevance_policy"`

	// DataDir is where snapshot databases are written. Empty means the
	// current directory.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Config validation errors.
var (
	ErrPolicyUnknown = errors.New("unknown relevance policy")
)

// knownPolicies lists the policies that Validate accepts.
var knownPolicies = map[string]bool{
	PolicyRuntime:     true,
	PolicyPrecompiled: true,
}

// Validate checks that the Config is well-formed. An empty RelevancePolicy
// is accepted and means PolicyRuntime.
func (c Config) Validate() error {
	if c.RelevancePolicy != "" && !knownPolicies[c.RelevancePolicy] {
		return ErrPolicyUnknown
	}
	return nil
}

// Policy returns the effective relevance policy.
func (c Config) Policy() string {
	if c.RelevancePolicy == "" {
		return PolicyRuntime
	}
	return c.RelevancePolicy
}
