package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/mkabeya/grove/core"
	"github.com/mkabeya/grove/core/stats"
	"github.com/mkabeya/grove/storage/database"
	sqlxrepos "github.com/mkabeya/grove/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.LoadConfig()
	errAndDie(err)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()

	// start CLI
	cli := commandLine{
		db:        db,
		statsRepo: sqlxrepos.NewStatsRepository(db),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

type commandLine struct {
	db        *sqlx.DB
	statsRepo stats.Repository
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
