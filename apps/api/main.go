package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/unihive/unihive/apps/api/echo"
	"github.com/unihive/unihive/core"
	"github.com/unihive/unihive/core/booking"
	"github.com/unihive/unihive/core/catalog"
	"github.com/unihive/unihive/core/post"
	"github.com/unihive/unihive/core/rating"
	"github.com/unihive/unihive/core/review"
	"github.com/unihive/unihive/core/user"
	emailsvc "github.com/unihive/unihive/services/email"
	logsvc "github.com/unihive/unihive/services/logger"
	scoringsvc "github.com/unihive/unihive/services/scoring"
	"github.com/unihive/unihive/storage/database"
	sqlxrepos "github.com/unihive/unihive/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	scoringClient := scoringsvc.NewClient(conf.Scoring)

	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc, conf)
	reviewSvc := review.NewService(sqlxrepos.NewReviewRepository(db))
	postSvc := post.NewService(sqlxrepos.NewPostRepository(db))
	bookingSvc := booking.NewService(sqlxrepos.NewBookingRepository(db))
	catalogSvc := catalog.NewService(sqlxrepos.NewCatalogRepository(db))
	fetcher := rating.NewFetcher(scoringClient, rating.NewCache(), logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	core.ParseEmailTemplates(conf, logger)

	// warm the score cache; entities render their review averages until this lands
	go func() {
		targets, err := catalogSvc.ScoringTargets(context.Background())
		if err != nil {
			logger.Error(fmt.Sprintf("listing scoring targets: %v", err), err)
			return
		}
		fetcher.FetchAll(context.Background(), targets)
	}()

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			UserSvc:    usrSvc,
			ReviewSvc:  reviewSvc,
			PostSvc:    postSvc,
			BookingSvc: bookingSvc,
			CatalogSvc: catalogSvc,
			Fetcher:    fetcher,
			ScoringSvc: scoringClient,
			Validate:   validate,
			Translator: translator,
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

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return sqlx.NewDb(db, conf.Database.Engine), nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
