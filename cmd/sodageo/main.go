// Command sodageo converts, validates and exports Socrata geometry column
// data.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/CityofSantaMonica/SODA.NET-sub000/internal/config"
	"github.com/CityofSantaMonica/SODA.NET-sub000/internal/logger"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"SODAGEO_CONFIG" description:"Path to configuration file (default ./sodageo.yaml if present)"`

	WKT      wktCommand      `command:"wkt"      description:"Print the text form of a wire geometry"`
	Validate validateCommand `command:"validate" description:"Validate a column upload cell"`
	Export   exportCommand   `command:"export"   description:"Export a dataset to FlatGeobuf"`
	Inspect  inspectCommand  `command:"inspect"  description:"Describe a FlatGeobuf file"`
	Serve    serveCommand    `command:"serve"    description:"Serve a dataset as FlatGeobuf over HTTP"`
}

// app carries what every command shares.
type app struct {
	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout}

	var opts Options
	opts.WKT.app = a
	opts.Validate.app = a
	opts.Export.app = a
	opts.Inspect.app = a
	opts.Serve.app = a

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		cfg, err := config.Load(opts.ConfigFile)
		if err != nil {
			return err
		}
		if opts.Logger.Level == "" {
			opts.Logger.Level = cfg.Log.Level
		}
		if opts.Logger.Format == "" {
			opts.Logger.Format = cfg.Log.Format
		}
		opts.Logger.SetupWriter(stderr)
		a.cfg = cfg

		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, flagsErr.Message)
			return 0
		}
		fmt.Fprintln(stderr, "sodageo:", err)
		return 1
	}
	return 0
}

// openInput opens path, or returns stdin for "" and "-".
func (a *app) openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(a.stdin), nil
	}
	return os.Open(path)
}

func (a *app) readInput(path string) ([]byte, error) {
	r, err := a.openInput(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return io.ReadAll(r)
}
