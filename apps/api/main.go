package main

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/nossauesc/agenda/apps/api/echo"
	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/account"
	"github.com/nossauesc/agenda/core/appointment"
	"github.com/nossauesc/agenda/core/course"
	cachesvc "github.com/nossauesc/agenda/services/cache"
	emailsvc "github.com/nossauesc/agenda/services/email"
	logsvc "github.com/nossauesc/agenda/services/logger"
	"github.com/nossauesc/agenda/storage"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	zl := logsvc.NewZap(conf)
	logger := logsvc.NewRollbarLogger(zl, "api", conf)
	logger.Enable(!conf.Debug)
	defer logger.Sync()

	storeLogger := logsvc.NewRollbarLogger(zl, "docstore", conf)
	storeLogger.Enable(!conf.Debug)

	// set up document store
	store, err := storage.Open(context.Background(), conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up document store: %v", err), err)
	}
	defer func() {
		if err = store.Close(); err != nil {
			storeLogger.Error("Failed to close", err)
		}
	}()

	// set up session cache
	var cache account.SessionCache
	if conf.Redis.Enabled() {
		client := cachesvc.NewRedisClient(conf)
		defer func() { _ = client.Close() }()
		cache = cachesvc.NewRedisCache(client, conf.Redis.SessionTTL, logger)
	} else {
		cache = cachesvc.NewMemoryCache(conf.Redis.SessionTTL)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	account.InitValidators(validate, translator)
	appointment.InitValidators(validate, translator)

	courseSvc := course.NewService(store)
	accountSvc := account.NewService(account.Deps{
		Store:      store,
		Cache:      cache,
		Courses:    courseSvc,
		MailSvc:    mailSvc,
		Moderators: conf.ModeratorEmails,
		Validate:   validate,
		Logger:     logger,
	})
	appointmentSvc := appointment.NewService(appointment.Deps{
		Store:    store,
		Courses:  courseSvc,
		Validate: validate,
		Logger:   logger,
	})

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("docstore").Set(conf.Docstore.Engine)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:           conf,
			Logger:         logger,
			AccountSvc:     accountSvc,
			AppointmentSvc: appointmentSvc,
			CourseSvc:      courseSvc,
			Validate:       validate,
			Translator:     translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
