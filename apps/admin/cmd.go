package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/mergington/highschool/core"
	"github.com/mergington/highschool/core/activity"
	"github.com/mergington/highschool/core/announcement"
	"github.com/mergington/highschool/core/bootstrap"
	"github.com/mergington/highschool/core/teacher"
	"github.com/mergington/highschool/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	migrateFunc      = database.Migrate  // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf *core.Config
	db   *sqlx.DB

	teacherRepo   teacher.Repository
	activityRepo  activity.Repository
	announcesRepo announcement.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createdb                                  - create the database if it does not exist")
	fmt.Println("  migrate                                   - apply pending database migrations")
	fmt.Println("  seed                                      - load the initial dataset (no-op when present)")
	fmt.Println("  addteacher -username USERNAME -name NAME  - add a teacher account; the password is prompted next")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addTeacherCmd := flag.NewFlagSet("addteacher", flag.ExitOnError)
	addTeacherUname := addTeacherCmd.String("username", "", "The teacher's login username.")
	addTeacherName := addTeacherCmd.String("name", "", "The teacher's display name.")

	switch args[1] {
	case "createdb":
		return database.CreateIfNotExist(cli.conf)
	case "migrate":
		return migrateFunc(cli.db)
	case "seed":
		seeder := bootstrap.NewSeeder(cli.teacherRepo, cli.activityRepo, cli.announcesRepo, nil)
		return seeder.Run(context.Background())
	case "addteacher":
		if err := addTeacherCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addTeacherUname == "" || *addTeacherName == "" {
			addTeacherCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addTeacherCmd.Usage()
			return errHelp
		}
		return cli.addTeacher(*addTeacherUname, *addTeacherName, string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}

// addTeacher creates a teacher account; existing usernames are left untouched.
func (cli *commandLine) addTeacher(uname, name, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)

	if _, err := cli.teacherRepo.GetTeacherByUsername(ctx, uname); err == nil {
		return fmt.Errorf("teacher %q already exists", uname)
	} else if !errors.Is(err, teacher.ErrNotFound) {
		return err
	}

	tchr := teacher.Teacher{
		Username:    uname,
		DisplayName: core.CleanString(name),
		Role:        teacher.RoleTeacher,
	}
	if err := tchr.SetPassword(pwd); err != nil {
		return err
	}
	_, err := cli.teacherRepo.CreateTeacher(ctx, tchr)
	return err
}
