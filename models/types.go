package models

import "time"

// Request types

type RegisterVoterRequest struct {
	Identity string `json:"identity"`
}

type RegisterProposalRequest struct {
	Description string `json:"description"`
}

type VoteRequest struct {
	ProposalID int `json:"proposal_id"`
}

// Response types

type RegisterVoterResponse struct {
	Identity  string `json:"identity"`
	CallerKey string `json:"caller_key"`
}

type RegisterProposalResponse struct {
	ProposalID int `json:"proposal_id"`
}

type VoteResponse struct {
	ProposalID int    `json:"proposal_id"`
	Message    string `json:"message"`
}

type StatusResponse struct {
	Status      string `json:"status"`
	StatusIndex int    `json:"status_index"`
}

type ProposalCountResponse struct {
	ProposalCount int `json:"proposal_count"`
}

// Domain types

type Voter struct {
	Identity        string `json:"identity"`
	IsRegistered    bool   `json:"is_registered"`
	HasVoted        bool   `json:"has_voted"`
	VotedProposalID *int   `json:"voted_proposal_id,omitempty"`
}

type Proposal struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
}

// WorkflowStatusChange is one journaled transition. Statuses are 0-indexed
// phase positions.
type WorkflowStatusChange struct {
	ID             string    `json:"id"`
	PreviousStatus int       `json:"previous_status"`
	NewStatus      int       `json:"new_status"`
	OccurredAt     time.Time `json:"occurred_at"`
	Occurred       string    `json:"occurred"` // e.g. "3 minutes ago"
}

type TallyResponse struct {
	Winner     Proposal   `json:"winner"`
	Proposals  []Proposal `json:"proposals"`
	TotalVotes int        `json:"total_votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
