package main

import (
	"github.com/nossauesc/agenda/storage/database"
)

func (cli *commandLine) migrate(args []string) error {
	db, err := cli.openDB()
	if err != nil {
		return err
	}
	if db != nil {
		defer func() { _ = db.Close() }()
	}
	return database.Migrate(db, args[0], args[1:]...)
}
