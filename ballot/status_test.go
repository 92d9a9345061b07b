// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"testing"
)

func TestStatusOrder(t *testing.T) {
	want := []string{
		"RegisteringVoters",
		"ProposalsRegistrationStarted",
		"ProposalsRegistrationEnded",
		"VotingSessionStarted",
		"VotingSessionEnded",
		"VotesTallied",
	}

	for i, name := range want {
		s := Status(i)
		if s.String() != name {
			t.Errorf("Status(%d).String() = %q, want %q", i, s.String(), name)
		}
		parsed, err := ParseStatus(name)
		if err != nil || parsed != s {
			t.Errorf("ParseStatus(%q) = %v, %v", name, parsed, err)
		}
	}

	if Status(6).Valid() || Status(-1).Valid() {
		t.Error("out of range status reported valid")
	}
	if got := Status(6).String(); got != "Status(6)" {
		t.Errorf("Status(6).String() = %q", got)
	}
	if _, err := ParseStatus("Closed"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseStatus(Closed) error = %v, want ErrInvalidInput", err)
	}
}
