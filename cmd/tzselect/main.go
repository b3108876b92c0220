package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goliatone/go-tzselect/internal/config"
	"github.com/goliatone/go-tzselect/internal/logging"
)

type CLI struct {
	EnvFile    string `name:"env-file" help:"Environment file loaded before the configuration file." default:".env"`
	ConfigFile string `name:"config" short:"c" help:"YAML configuration file." type:"path"`

	config.Config `embed:""`

	Serve   ServeCmd   `cmd:"" help:"Serve the timezone search API and select page."`
	List    ListCmd    `cmd:"" help:"Print the timezone catalog."`
	Search  SearchCmd  `cmd:"" help:"Search the timezone catalog."`
	Pick    PickCmd    `cmd:"" help:"Pick a timezone interactively."`
	OpenAPI OpenAPICmd `cmd:"" name:"openapi" help:"Print the OpenAPI description of the API."`
}

// App carries what every command needs once flags and configuration are
// resolved.
type App struct {
	Config config.Config
	Logger zerolog.Logger
	Out    io.Writer
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cli := &CLI{}
	parser, err := newParser(cli)
	if err != nil {
		log.Fatal().Err(err).Msg("build command line parser")
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cfg := cli.Config
	if err := cfg.Validate(); err != nil {
		ctx.Fatalf("configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		ctx.Fatalf("logging: %v", err)
	}

	app := &App{Config: cfg, Logger: logger, Out: os.Stdout}
	if err := ctx.Run(app); err != nil {
		logger.Error().Err(err).Str("command", ctx.Command()).Msg("command failed")
		os.Exit(1)
	}
}

// newParser binds cli to the command line. Flags left off the command line
// resolve from the environment, then the YAML file, then the env file.
func newParser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	opts = append([]kong.Option{
		kong.Name("tzselect"),
		kong.Description("Curated timezone catalog with offset-aware labels and city search."),
		kong.UsageOnError(),
		kong.Resolvers(config.Resolver("env-file", "config")),
	}, opts...)
	return kong.New(cli, opts...)
}
