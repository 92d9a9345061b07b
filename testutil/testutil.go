// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ballot-box/auth"
	"github.com/danielhkuo/ballot-box/ballot"
	"github.com/danielhkuo/ballot-box/cliparse"
	"github.com/danielhkuo/ballot-box/db"
	"github.com/danielhkuo/ballot-box/middleware"
)

// TestOrganizer is the organizer identity used by GetTestConfig
const TestOrganizer = "organizer"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// each connection to :memory: would get its own empty database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  cliparse.DatabaseSQLite,
		OrganizerID:   TestOrganizer,
		CallerKeySalt: "test-key-salt",
	}
}

// NewTestBallot creates a ballot for the test organizer that writes every
// mutation through store.
func NewTestBallot(t *testing.T, store *db.Store) *ballot.Process {
	t.Helper()

	process, err := ballot.New(TestOrganizer)
	if err != nil {
		t.Fatalf("Failed to create ballot: %v", err)
	}
	if store != nil {
		process.SetPersister(store)
	}
	return process
}

// CallerHeaders returns the headers that authenticate identity
func CallerHeaders(cfg cliparse.Config, identity string) map[string]string {
	return map[string]string{
		middleware.HeaderCallerID:  identity,
		middleware.HeaderCallerKey: auth.GenerateCallerKey(identity, cfg.CallerKeySalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
