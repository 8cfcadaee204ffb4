package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/unihive/unihive/core"
	"github.com/unihive/unihive/core/user"
	"github.com/unihive/unihive/storage/database"
	sqlxrepos "github.com/unihive/unihive/storage/database/sqlx"
)

type commandLine struct {
	conf    *core.Config
	db      *sqlx.DB
	logger  *log.Logger
	usrRepo user.Repository
}

func main() {
	logger := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	rawDB, err := database.Open(conf)
	if err != nil {
		logger.Fatal(err)
	}
	defer func() { _ = rawDB.Close() }()
	if err = rawDB.Ping(); err != nil {
		logger.Fatal(err)
	}
	db := sqlx.NewDb(rawDB, conf.Database.Engine)

	cli := &commandLine{
		conf:    conf,
		db:      db,
		logger:  logger,
		usrRepo: sqlxrepos.NewUserRepository(db),
	}

	root := &cobra.Command{
		Use:           "unihive-admin",
		Short:         "UniHive management commands",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(
		newMigrateCmd(cli),
		newAddUserCmd(cli),
		newResetPasswordCmd(cli),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
