package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	echoapi "github.com/mergington/highschool/apps/api/echo"
	"github.com/mergington/highschool/core"
	"github.com/mergington/highschool/core/activity"
	"github.com/mergington/highschool/core/announcement"
	"github.com/mergington/highschool/core/bootstrap"
	"github.com/mergington/highschool/core/teacher"
	logsvc "github.com/mergington/highschool/services/logger"
	"github.com/mergington/highschool/storage/database"
	sqlxrepos "github.com/mergington/highschool/storage/database/sqlx"
)

// build is injected at compile time (-ldflags "-X main.build=...")
var build = "develop"

func main() {
	conf := core.NewConfig(build)

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug || conf.RollbarToken == "" {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	if err := run(conf, logger); err != nil {
		logger.Fatal("api startup failed", err)
	}
}

func run(conf *core.Config, logger core.Logger) error {
	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = db.Close() }()

	if err = database.Ping(db); err != nil {
		return err
	}
	if err = database.Migrate(db); err != nil {
		return err
	}

	// set up repos & services
	tchrRepo := sqlxrepos.NewTeacherRepository(db)
	actRepo := sqlxrepos.NewActivityRepository(db)
	annRepo := sqlxrepos.NewAnnouncementRepository(db)

	tchrSvc := teacher.NewService(tchrRepo)
	actSvc := activity.NewService(actRepo, tchrSvc)
	annSvc := announcement.NewService(annRepo, tchrSvc)

	// seed initial data; a no-op on an already populated deployment
	seeder := bootstrap.NewSeeder(tchrRepo, actRepo, annRepo, logger)
	if err = seeder.Run(context.Background()); err != nil {
		return errors.Wrap(err, "seeding database")
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Addr:           conf.Server.Addr(),
		Debug:          conf.Debug,
		TestMode:       conf.TestMode,
		Logger:         logger,
		SignalShutdown: func() { shutdown <- syscall.SIGTERM },
		Healthcheck:    db.PingContext,

		TeacherSvc:      tchrSvc,
		ActivitySvc:     actSvc,
		AnnouncementSvc: annSvc,
	})
	go app.Start()

	sig := <-shutdown
	logger.Info("shutting down", map[string]interface{}{"signal": sig.String()})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.Stop(ctx)
}
