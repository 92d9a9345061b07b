// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballot-box API server.

ballot-box runs a single ballot for one organizer: the organizer registers
voters, opens and closes proposal registration and the voting session, and
tallies the votes. Registered voters submit proposals and cast one vote each.
The proposal with the most votes wins.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	ORGANIZER_ID=alice CALLER_KEY_SALT=... DATABASE_URL=ballot.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -organizer alice

Settings may also live in a .env file (see -env).

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - ORGANIZER_ID (-organizer): Identity allowed to run the ballot
  - CALLER_KEY_SALT (-key-salt): Secret for caller key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - VOTER_ROSTER (-roster): YAML file of voters registered at startup

# Startup

The saved ballot is restored if there is one; otherwise a new ballot is
created for the organizer. Start with -show-organizer-key to print the
organizer's caller headers to stdout; the key is never logged.

# Architecture

  - ballot: Workflow state machine and tally
  - handlers: HTTP request handlers (organizer, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, caller resolution, JSON helpers
  - models: Request/response types
  - auth: Caller key generation and validation
  - db: Schema, snapshots and the status change journal
  - roster: Voter roster file
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
