// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command judgectl seeds and inspects a Quickly Judge database from the
// terminal.
//
//	judgectl seed -f seed.yaml
//	judgectl rankings
//	judgectl rubric
//	judgectl finalists -n 5
//	judgectl phase
//	judgectl phase -server http://localhost:3318 panel
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-judge/db"
	"github.com/danielhkuo/quickly-judge/store"
)

const usage = `usage: judgectl <command> [flags]

commands:
  seed       insert projects and judges from a YAML file
  rankings   print the win-rate ranking
  rubric     print rubric averages for finalists
  finalists  select the top N projects as finalists
  phase      show the judging phase, or set it on the running server
             (phase [-server URL] [-admin-key KEY] expo|panel)

common flags:
  -d  database URL (env DATABASE_URL)
  -t  database type, sqlite or postgres (env DATABASE_TYPE)
`

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		color.Yellow("warning: failed to load .env: %v", err)
	}

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

// run dispatches a subcommand. Output goes to out.
func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errors.New("no command given")
	}

	cmd, rest := args[0], args[1:]
	flags := flag.NewFlagSet("judgectl "+cmd, flag.ContinueOnError)
	dbURL := flags.String("d", os.Getenv("DATABASE_URL"), "Database URL")
	dbType := flags.String("t", envOr("DATABASE_TYPE", db.TypeSQLite), "Database type (sqlite or postgres)")

	var seedFile, serverURL, adminKey string
	var count int
	switch cmd {
	case "seed":
		flags.StringVar(&seedFile, "f", "seed.yaml", "Seed file")
	case "finalists":
		flags.IntVar(&count, "n", 5, "Number of finalists")
	case "phase":
		flags.StringVar(&serverURL, "server", envOr("QUICKLY_JUDGE_URL", "http://localhost:"+envOr("PORT", "3318")), "Server base URL")
		flags.StringVar(&adminKey, "admin-key", os.Getenv("ADMIN_KEY"), "Organizer admin key")
	case "rankings", "rubric":
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}

	if err := flags.Parse(rest); err != nil {
		return err
	}

	// The server owns the live phase, so changes go through its API.
	if cmd == "phase" && flags.NArg() > 0 {
		return pushPhase(ctx, serverURL, adminKey, flags.Arg(0), out)
	}

	if *dbURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	conn, err := db.Open(ctx, *dbType, *dbURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.CreateSchema(conn); err != nil {
		return err
	}

	return dispatch(ctx, conn, cmd, seedFile, count, out)
}

func dispatch(ctx context.Context, conn *sql.DB, cmd, seedFile string, count int, out io.Writer) error {
	st := store.New(conn)

	switch cmd {
	case "seed":
		f, err := os.Open(seedFile)
		if err != nil {
			return fmt.Errorf("failed to open seed file: %w", err)
		}
		defer f.Close()
		return seed(ctx, st, f, out)
	case "rankings":
		return printRankings(ctx, st, out)
	case "rubric":
		return printRubric(ctx, st, out)
	case "finalists":
		return selectFinalists(ctx, st, count, out)
	case "phase":
		return showPhase(ctx, st, out)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
