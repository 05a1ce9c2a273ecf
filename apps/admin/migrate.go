package main

import "github.com/mkabeya/grove/storage/database"

var migrationsDir = "storage/database/migrations"

var runMigrationFunc = database.RunMigrationCommand // mockable

func (cli *commandLine) migrate(args []string) error {
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return runMigrationFunc(args[0], cli.db.DB, migrationsDir, arguments...)
}
