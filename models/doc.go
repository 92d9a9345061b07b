// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and wire types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterVoterRequest: identity
  - RegisterProposalRequest: description
  - VoteRequest: proposal_id

# Response Types

Types for JSON responses:

  - RegisterVoterResponse: identity, caller_key
  - RegisterProposalResponse: proposal_id
  - VoteResponse: proposal_id, message
  - StatusResponse: status, status_index
  - ProposalCountResponse: proposal_count
  - TallyResponse: winner, proposals, total_votes
  - ErrorResponse: error, message

# Wire Types

JSON renderings of the ballot package types:

  - Voter: voted_proposal_id is omitted until the voter has voted
  - Proposal: vote_count stays 0 until votes are tallied
  - WorkflowStatusChange: previous_status and new_status as phase indices
*/
package models
