package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/account"
	"github.com/nossauesc/agenda/core/appointment"
	"github.com/nossauesc/agenda/core/course"
	cachesvc "github.com/nossauesc/agenda/services/cache"
	emailsvc "github.com/nossauesc/agenda/services/email"
	logsvc "github.com/nossauesc/agenda/services/logger"
	"github.com/nossauesc/agenda/storage"
	"github.com/nossauesc/agenda/storage/database"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(logsvc.NewZap(conf), "admin", conf)
	defer logger.Sync()

	// migrations run before anything reads the store
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		cli := commandLine{conf: conf, out: os.Stdout, openDB: openDB(conf)}
		exit(cli.run(os.Args), logger)
		return
	}

	store, err := storage.Open(context.Background(), conf)
	if err != nil {
		logger.Fatal("setting up document store", err)
	}
	defer func() { _ = store.Close() }()

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	account.InitValidators(validate, translator)
	appointment.InitValidators(validate, translator)

	courseSvc := course.NewService(store)
	cli := commandLine{
		conf:   conf,
		out:    os.Stdout,
		openDB: openDB(conf),
		accountSvc: account.NewService(account.Deps{
			Store:    store,
			Cache:    cachesvc.NewMemoryCache(conf.Redis.SessionTTL),
			Courses:  courseSvc,
			MailSvc:  emailsvc.NewConsoleService(conf, logger),
			Validate: validate,
			Logger:   logger,
		}),
		appointmentSvc: appointment.NewService(appointment.Deps{
			Store:    store,
			Courses:  courseSvc,
			Validate: validate,
			Logger:   logger,
		}),
		courseSvc:   courseSvc,
		newExporter: newSheetsExporter,
	}
	exit(cli.run(os.Args), logger)
}

func openDB(conf *core.Config) func() (*sql.DB, error) {
	return func() (*sql.DB, error) {
		if conf.Docstore.Engine != storage.EnginePostgres {
			return nil, errors.Errorf("migrations need the %s engine (got %q)", storage.EnginePostgres, conf.Docstore.Engine)
		}
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}
		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}
		return db.DB, nil
	}
}

func exit(err error, logger *logsvc.RollbarLogger) {
	if err == nil {
		return
	}
	if err != errHelp {
		logger.Error("admin command failed", err)
	}
	logger.Sync()
	os.Exit(1)
}
