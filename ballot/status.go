// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import "fmt"

// Status is the workflow phase of a ballot. The integer value is the phase's
// 0-indexed position and is what change notifications carry.
type Status int

const (
	RegisteringVoters Status = iota
	ProposalsRegistrationStarted
	ProposalsRegistrationEnded
	VotingSessionStarted
	VotingSessionEnded
	VotesTallied
)

var statusNames = [...]string{
	RegisteringVoters:            "RegisteringVoters",
	ProposalsRegistrationStarted: "ProposalsRegistrationStarted",
	ProposalsRegistrationEnded:   "ProposalsRegistrationEnded",
	VotingSessionStarted:         "VotingSessionStarted",
	VotingSessionEnded:           "VotingSessionEnded",
	VotesTallied:                 "VotesTallied",
}

func (s Status) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// Valid reports whether s is one of the defined phases.
func (s Status) Valid() bool {
	return s >= RegisteringVoters && s <= VotesTallied
}

// ParseStatus maps a phase name back to its Status
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, name)
}
