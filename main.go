package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ballot-box/auth"
	"github.com/danielhkuo/ballot-box/ballot"
	"github.com/danielhkuo/ballot-box/cliparse"
	"github.com/danielhkuo/ballot-box/db"
	"github.com/danielhkuo/ballot-box/middleware"
	"github.com/danielhkuo/ballot-box/roster"
	"github.com/danielhkuo/ballot-box/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()
	if cfg.DatabaseType == cliparse.DatabaseSQLite {
		// sqlite allows a single writer
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	store := db.NewStore(dbConn)
	process, err := openBallot(context.Background(), store, cfg)
	if err != nil {
		slog.Error("failed to open ballot", "error", err)
		os.Exit(1)
	}

	process.SetPersister(store)
	process.Subscribe(ballot.ObserverFunc(func(c ballot.Change) {
		slog.Info("workflow status change",
			"previous_status", int(c.Previous), "new_status", int(c.New), "status", c.New.String())
	}))

	slog.Info("Ballot ready",
		"organizer", process.Organizer(),
		"status", process.Status().String(),
		"voters", len(process.Voters()),
		"proposals", process.ProposalCount())
	showOrganizerKey(os.Stdout, process.Organizer(), cfg)

	// Create router
	mux := router.NewRouter(process, store, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openBallot restores the saved ballot or starts a new one for the
// configured organizer. Roster voters missing from the ballot are registered
// while registration is still open.
func openBallot(ctx context.Context, store *db.Store, cfg cliparse.Config) (*ballot.Process, error) {
	st, found, err := store.LoadState(ctx)
	if err != nil {
		return nil, err
	}

	var process *ballot.Process
	if found {
		process, err = ballot.Restore(st)
		if err != nil {
			return nil, fmt.Errorf("saved ballot is inconsistent: %w", err)
		}
		if process.Organizer() != cfg.OrganizerID {
			slog.Warn("saved ballot belongs to a different organizer, keeping it",
				"saved", process.Organizer(), "configured", cfg.OrganizerID)
		}
		slog.Info("restored saved ballot", "status", process.Status().String())
	} else {
		process, err = ballot.New(cfg.OrganizerID)
		if err != nil {
			return nil, err
		}
	}

	if cfg.RosterPath != "" {
		if err := registerRoster(process, cfg.RosterPath); err != nil {
			return nil, err
		}
	}

	if err := store.Save(ctx, process); err != nil {
		return nil, err
	}
	return process, nil
}

// showOrganizerKey writes the organizer's caller key to w when asked to.
// The key is a credential, so it never goes to the log.
func showOrganizerKey(w io.Writer, organizer string, cfg cliparse.Config) {
	if !cfg.ShowOrganizerKey {
		slog.Info("organizer caller key hidden, start with -show-organizer-key to print it")
		return
	}
	fmt.Fprintf(w, "%s: %s\n%s: %s\n",
		middleware.HeaderCallerID, organizer,
		middleware.HeaderCallerKey, auth.GenerateCallerKey(organizer, cfg.CallerKeySalt))
}

func registerRoster(process *ballot.Process, path string) error {
	r, err := roster.Load(path)
	if err != nil {
		return err
	}

	if process.Status() != ballot.RegisteringVoters {
		slog.Warn("voter registration is closed, roster ignored", "path", path, "status", process.Status().String())
		return nil
	}

	added := 0
	for _, identity := range r.Voters {
		err := process.RegisterVoter(process.Organizer(), identity)
		if errors.Is(err, ballot.ErrAlreadyRegistered) {
			continue
		}
		if err != nil {
			return fmt.Errorf("register roster voter %s: %w", identity, err)
		}
		added++
	}
	slog.Info("roster loaded", "path", path, "voters", len(r.Voters), "added", added)
	return nil
}
