// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrDuplicateVoter = errors.New("duplicate voter")

// Roster is the on-disk voter list:
//
//	voters:
//	  - alice
//	  - bob
type Roster struct {
	Voters []string `yaml:"voters"`
}

// Load reads and validates a roster file.
func Load(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, fmt.Errorf("roster: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes roster YAML. Identities are trimmed; blank entries are
// rejected and so are repeats.
func Parse(data []byte) (Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Roster{}, fmt.Errorf("roster: parse: %w", err)
	}

	seen := make(map[string]bool, len(r.Voters))
	for i, v := range r.Voters {
		v = strings.TrimSpace(v)
		if v == "" {
			return Roster{}, fmt.Errorf("roster: voter %d is blank", i+1)
		}
		if seen[v] {
			return Roster{}, fmt.Errorf("roster: %w: %s", ErrDuplicateVoter, v)
		}
		seen[v] = true
		r.Voters[i] = v
	}
	return r, nil
}
