// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ballot-box API.

# Route Registration

NewRouter returns a CORS-wrapped http.ServeMux with all endpoints:

	handler := router.NewRouter(process, store, cfg)

# Endpoints

Health:

	GET /health

Organizer (X-Caller-ID and X-Caller-Key of the organizer):

	POST /ballot/voters                        - Register voter
	POST /ballot/proposals-registration/start  - Open proposals
	POST /ballot/proposals-registration/stop   - Close proposals
	POST /ballot/voting-session/start          - Open voting
	POST /ballot/voting-session/stop           - Close voting
	POST /ballot/tally                         - Count votes

Voters (X-Caller-ID and X-Caller-Key of a registered voter):

	POST /ballot/proposals - Register proposal
	POST /ballot/votes     - Cast vote

Queries (public):

	GET /ballot/status
	GET /ballot/voters
	GET /ballot/voters/{identity}
	GET /ballot/proposals
	GET /ballot/proposals/count
	GET /ballot/proposals/{id}
	GET /ballot/winner  - After the tally only
	GET /ballot/events  - Status change journal

Every /ballot route is wrapped in middleware.WithLogging and
middleware.WithCaller.
*/
package router
