// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: sqlite DSN or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - OrganizerID: identity allowed to run the ballot (required)
  - CallerKeySalt: Secret for caller key HMAC (required)
  - RosterPath: YAML voter roster registered at startup (optional)
  - ShowOrganizerKey: print the organizer caller key to stdout (flag only)

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type
	-organizer   Organizer identity
	-roster      Voter roster file
	-key-salt    Caller key salt
	-show-organizer-key  Print the organizer caller key to stdout
	-env         dotenv file (default .env, ignored when missing)

# Environment Variables

Flags fall back to environment variables. Values in the dotenv file are
loaded first but never override variables already set:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	ORGANIZER_ID    → -organizer
	VOTER_ROSTER    → -roster
	CALLER_KEY_SALT → -key-salt

CLI flags take precedence over environment variables.

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
*/
package cliparse
