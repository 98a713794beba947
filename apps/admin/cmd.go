package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/account"
	"github.com/nossauesc/agenda/core/appointment"
	"github.com/nossauesc/agenda/core/course"
	sheetsvc "github.com/nossauesc/agenda/services/sheets"
)

var errHelp = errors.New("help provided")

// exporter appends records to a spreadsheet.
type exporter interface {
	Export(ctx context.Context, docs []core.Document) (int, error)
}

func newSheetsExporter(ctx context.Context, credentials, spreadsheet, sheet string) (exporter, error) {
	return sheetsvc.NewExporter(ctx, credentials, spreadsheet, sheet)
}

type commandLine struct {
	conf           *core.Config
	out            io.Writer
	openDB         func() (*sql.DB, error)
	accountSvc     *account.Service
	appointmentSvc *appointment.Service
	courseSvc      *course.Service
	newExporter    func(ctx context.Context, credentials, spreadsheet, sheet string) (exporter, error)
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a database migration command (up, down, status, ...)")
	fmt.Fprintln(cli.out, "  approve -uid UID - grant the teacher role to an account waiting for authorization")
	fmt.Fprintln(cli.out, "  token -uid UID [-role ROLE] [-name NAME] [-email EMAIL] - print an API token")
	fmt.Fprintln(cli.out, "  seed-courses [-file PATH] - save the course catalog")
	fmt.Fprintln(cli.out, "  export-sheet -kind KIND -spreadsheet ID [-sheet NAME] [-credentials PATH] - append records to a Google Sheet")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	approveCmd := flag.NewFlagSet("approve", flag.ContinueOnError)
	approveUID := approveCmd.String("uid", "", "The UID of the account.")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenUID := tokenCmd.String("uid", "", "The UID of the user.")
	tokenRole := tokenCmd.String("role", account.RoleStudent, "The role claimed by the token.")
	tokenName := tokenCmd.String("name", "", "The display name of the user.")
	tokenEmail := tokenCmd.String("email", "", "The email of the user.")

	seedCmd := flag.NewFlagSet("seed-courses", flag.ContinueOnError)
	seedFile := seedCmd.String("file", "", "A JSON file listing the courses. Defaults to the built-in catalog.")

	exportCmd := flag.NewFlagSet("export-sheet", flag.ContinueOnError)
	exportKind := exportCmd.String("kind", "", "The kind of records: research, activities or solidarity.")
	exportSpreadsheet := exportCmd.String("spreadsheet", "", "The spreadsheet ID.")
	exportSheet := exportCmd.String("sheet", "Sheet1", "The sheet name.")
	exportCredentials := exportCmd.String("credentials", cli.conf.Docstore.CredentialsFile, "The service account credentials file.")

	for _, fs := range []*flag.FlagSet{approveCmd, tokenCmd, seedCmd, exportCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "approve":
		if err := approveCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *approveUID == "" {
			approveCmd.Usage()
			return errHelp
		}
		return cli.approve(ctx, *approveUID)

	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *tokenUID == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenUID, *tokenRole, *tokenName, *tokenEmail)

	case "seed-courses":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seedCourses(ctx, *seedFile)

	case "export-sheet":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *exportKind == "" || *exportSpreadsheet == "" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.exportSheet(ctx, *exportKind, *exportSpreadsheet, *exportSheet, *exportCredentials)

	default:
		cli.printUsage()
		return errHelp
	}
}
