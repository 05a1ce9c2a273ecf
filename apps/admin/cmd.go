package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
)

var errHelp = errors.New("help provided")

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS]     - run a migration command: up, down, status, version..")
	fmt.Println("  seedstats -subject SUBJECT - ensure a stats row exists for the given user subject")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedStatsCmd := flag.NewFlagSet("seedstats", flag.ExitOnError)
	seedStatsSubject := seedStatsCmd.String("subject", "", "The identity provider's stable user identifier.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seedstats":
		if err := seedStatsCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedStatsSubject == "" {
			seedStatsCmd.Usage()
			return errHelp
		}
		return cli.seedStats(*seedStatsSubject)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) seedStats(subject string) error {
	s, err := cli.statsRepo.EnsureStats(context.Background(), subject)
	if err != nil {
		return err
	}
	fmt.Printf("stats row #%d ready for subject %s (level %d, %s)\n", s.ID, s.UserID, s.Level, s.TreeStage)
	return nil
}
