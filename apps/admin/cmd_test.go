package main

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/mkabeya/grove/storage/database/inmem"
)

func setup() *commandLine {
	db := inmemdb.Open()
	return &commandLine{
		db:        &sqlx.DB{},
		statsRepo: inmemdb.NewStatsRepository(db),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup()

	runMigrationFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "down", "redo", "reset", "status", "version":
			return nil
		default:
			return fmt.Errorf("%q: no such command", command)
		}
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: `"lol": no such command`},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(append([]string{"admin"}, tt.args...))
			checkErr(t, tt, err)
		})
	}
}

func Test_commandLine_seedStats(t *testing.T) {
	cli := setup()

	if err := cli.run([]string{"admin", "seedstats", "-subject", "firebase-uid-1"}); err != nil {
		t.Errorf("run() error = %v; want nil", err)
	}
	// seeding twice is a no-op
	if err := cli.run([]string{"admin", "seedstats", "-subject", "firebase-uid-1"}); err != nil {
		t.Errorf("run() error = %v; want nil", err)
	}
}

func checkErr(t *testing.T, tt cliTest, err error) {
	t.Helper()
	if tt.wantErr != nil {
		if err != tt.wantErr {
			t.Errorf("run() error = %v; wantErr %v", err, tt.wantErr)
		}
		return
	}
	if tt.wantErrStr != "" {
		if err == nil || err.Error() != tt.wantErrStr {
			t.Errorf("run() error = %v; wantErrStr %v", err, tt.wantErrStr)
		}
		return
	}
	if err != nil {
		t.Errorf("run() error = %v; want nil", err)
	}
}
