package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/joho/godotenv"

	"github.com/buildcrest/sitectl/pkg/cms"
	"github.com/buildcrest/sitectl/pkg/grace"
	"github.com/buildcrest/sitectl/pkg/store"
)

type commandContext struct {
	*cms.Config

	Context         context.Context
	OutputFormatter formatter
	Logger          log.Logger
	Notifier        store.Notifier
}

type outputFormat string

func (f outputFormat) AfterApply(cfg *commandContext) (err error) {
	cfg.OutputFormatter, err = getFormatter(f)
	return err
}

var appCli struct {
	cms.Config

	Format  outputFormat `enum:"table,yaml,yml,json" help:"Data output format" default:"table"`
	Verbose bool         `help:"Log every API request to stderr" short:"v"`

	Login    LoginCmd    `cmd:"" help:"Sign in and store the session locally"`
	Logout   LogoutCmd   `cmd:"" help:"Sign out and clear the stored session"`
	Whoami   WhoamiCmd   `cmd:"" help:"Show the identity the stored session belongs to"`
	Register RegisterCmd `cmd:"" help:"Create a new staff account"`

	Get       GetCmd       `cmd:"" help:"List or show managed content"`
	Create    CreateCmd    `cmd:"" help:"Create a record through an interactive form"`
	Edit      EditCmd      `cmd:"" help:"Edit a record through an interactive form"`
	Delete    DeleteCmd    `cmd:"" help:"Delete a record (asks for confirmation)"`
	Apply     ApplyCmd     `cmd:"" help:"Create or update a record from a manifest file"`
	Dashboard DashboardCmd `cmd:"" help:"Show collection counts and recent inquiries"`
	Version   VersionCmd   `cmd:"" help:"Show build information"`
}

func main() {
	// Same convention as the web dashboard: the API address may live in a
	// local .env file. Absence is fine.
	_ = godotenv.Load()

	cfg := &commandContext{
		Config:   &appCli.Config,
		Context:  grace.SetupSignalHandler(),
		Notifier: terminalNotifier{},
	}

	appCtx := kong.Parse(&appCli,
		kong.Name("sitectl"),
		kong.Description("Admin command line for the BuildCrest CMS"),
		kong.Bind(cfg),
	)

	cfg.Logger = log.NewNopLogger()
	if appCli.Verbose {
		cfg.Logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	}

	// An interrupted command unwinds through context cancellation and
	// exits quietly.
	grace.ExitOrLog(appCtx.Run(cfg))
}
