package main

import (
	"log"
	"os"

	"github.com/mergington/highschool/core"
	"github.com/mergington/highschool/storage/database"
	sqlxrepos "github.com/mergington/highschool/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig("admin")

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer func() { _ = db.Close() }()
	errAndDie(database.Ping(db))

	// start CLI
	cli := commandLine{
		conf:          conf,
		db:            db,
		teacherRepo:   sqlxrepos.NewTeacherRepository(db),
		activityRepo:  sqlxrepos.NewActivityRepository(db),
		announcesRepo: sqlxrepos.NewAnnouncementRepository(db),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
