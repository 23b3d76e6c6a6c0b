// Package config loads a run's parameters from a YAML file: table
// locations, key columns, numeric-column hints, and the tuning knobs
// debugblocker.RunConfig exposes.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// TableSpec describes how to load one side of the join.
type TableSpec struct {
	Driver    string   `yaml:"driver"` // "csv" or "sqlite"
	Path      string   `yaml:"path"`
	Table     string   `yaml:"table"`      // sqlite only
	KeyColumn string   `yaml:"key_column"` // name of the key column
	Numeric   []string `yaml:"numeric"`    // column names holding numeric values
}

// ColumnPair mirrors table.ColumnPair in YAML-friendly form.
type ColumnPair struct {
	LCol string `yaml:"l_col"`
	RCol string `yaml:"r_col"`
}

// CandidateSetSpec points at the blocker's already-accepted pairs, stored
// as a two-column (fk_l, fk_r) CSV.
type CandidateSetSpec struct {
	Path string `yaml:"path"`
}

// Run is the full set of parameters for one invocation.
type Run struct {
	LTable       TableSpec         `yaml:"ltable"`
	RTable       TableSpec         `yaml:"rtable"`
	CandidateSet CandidateSetSpec  `yaml:"candidate_set"`
	AttrCorres   []ColumnPair      `yaml:"attr_corres"`
	OutputSize   int               `yaml:"output_size"`
	Verbose      bool              `yaml:"verbose"`
	NJobs        int               `yaml:"n_jobs"`
	NConfigs     int               `yaml:"n_configs"`
}

// Load reads and parses a run configuration from path.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	run := &Run{NJobs: -1, NConfigs: -2}
	if err := yaml.Unmarshal(data, run); err != nil {
		return nil, err
	}
	return run, nil
}

// NumericSet turns a TableSpec's numeric column names into a lookup set
// for the adapters package constructors.
func (s TableSpec) NumericSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Numeric))
	for _, name := range s.Numeric {
		set[name] = struct{}{}
	}
	return set
}
