package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/jilleJr/fuzzytime/pkg/config"
	"github.com/jilleJr/fuzzytime/pkg/fuzzytime"
)

var errUnresolved = errors.New("some inputs could not be resolved")

func main() {
	loggerSetup(os.Stderr, false, false)
	if err := config.LoadDotenv(); err != nil {
		log.Warn().Err(err).Msg("Failed to load .env file.")
	}
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("Failed.")
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "fuzzytime",
		Usage:     "normalize loosely formatted dates and times to RFC 3339",
		ArgsUsage: "[date...]",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "now",
				Usage:   "reference time for inputs without a year or date (default: wall clock)",
				Sources: cli.EnvVars("FUZZYTIME_NOW"),
			},
			&cli.StringFlag{
				Name:    "offset",
				Usage:   `UTC offset for inputs without one, "local" or ±hh:mm`,
				Sources: cli.EnvVars("FUZZYTIME_OFFSET"),
			},
			&cli.StringFlag{
				Name:    "date-order",
				Usage:   "how to read 07/06/1970: month-first or day-first",
				Sources: cli.EnvVars("FUZZYTIME_DATE_ORDER"),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a YAML config file",
				Sources: cli.EnvVars("FUZZYTIME_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   outputText,
				Usage:   "output format: text, json or logfmt",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log every format tried",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			noColor := cmd.Bool("no-color")
			if noColor {
				color.NoColor = true
			}
			loggerSetup(cmd.Root().ErrWriter, cmd.Bool("debug"), noColor)
			return ctx, nil
		},
		Action: parseAction,
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "resolve each argument, or each line of stdin, to RFC 3339",
				ArgsUsage: "[date...]",
				Action:    parseAction,
			},
			{
				Name:   "normalize",
				Usage:  "rewrite the timestamps of log lines read from stdin",
				Action: normalizeAction,
			},
			{
				Name:   "formats",
				Usage:  "list the known formats in the order they are tried",
				Action: formatsAction,
			},
		},
	}
}

type settings struct {
	config   config.Config
	resolver *fuzzytime.Resolver
	now      time.Time
	offset   int
	output   string
}

func loadSettings(cmd *cli.Command) (settings, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return settings{}, err
		}
		cfg = loaded
	}
	if cmd.IsSet("date-order") {
		cfg.DateOrder = cmd.String("date-order")
	}
	if cmd.IsSet("offset") {
		cfg.Offset = cmd.String("offset")
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}

	now := time.Now()
	if s := cmd.String("now"); s != "" {
		ts, err := fuzzytime.Parse(s)
		if err != nil {
			return settings{}, fmt.Errorf("--now: %w", err)
		}
		now = ts.Time()
	}
	offset, err := cfg.LocalOffset(now)
	if err != nil {
		return settings{}, err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return settings{}, err
	}

	output := strings.ToLower(cmd.String("output"))
	switch output {
	case outputText, outputJSON, outputLogfmt:
	default:
		return settings{}, fmt.Errorf("unknown output format %q, want text, json or logfmt", output)
	}

	return settings{
		config:   cfg,
		resolver: fuzzytime.NewResolver(catalog, fuzzytime.WithLogger(log.Logger)),
		now:      now,
		offset:   offset,
		output:   output,
	}, nil
}

func parseAction(ctx context.Context, cmd *cli.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	p := newPrinter(cmd.Root().Writer, s.output)

	var total, failed int
	resolve := func(input string) error {
		total++
		res, err := s.resolver.Resolve(input, s.now, s.offset)
		if err != nil {
			failed++
			logResolveError(input, err)
			return p.failure(input, err)
		}
		if res.WeekdayMismatch() {
			log.Warn().
				Str("input", input).
				Stringer("weekday", res.Timestamp.Weekday()).
				Msg("Weekday does not match the date. Using the date.")
		}
		return p.result(input, res)
	}

	if args := cmd.Args().Slice(); len(args) > 0 {
		for _, input := range args {
			if err := resolve(input); err != nil {
				return err
			}
		}
	} else {
		scanner := bufio.NewScanner(cmd.Root().Reader)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := resolve(line); err != nil {
				return err
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}
	if err := p.flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errUnresolved, failed, total)
	}
	return nil
}

func logResolveError(input string, err error) {
	ev := log.Error().Str("input", input).Stringer("type", fuzzytime.GetType(err))
	var ferr *fuzzytime.Error
	if errors.As(err, &ferr) && len(ferr.Attempts) > 0 {
		ev = ev.Int("tried", len(ferr.Attempts))
		log.Debug().Msg("Attempts:\n" + ferr.Diagnostics())
	}
	ev.Msg(err.Error())
}

func normalizeAction(ctx context.Context, cmd *cli.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	n := NewNormalizer(cmd.Root().Reader, cmd.Root().Writer, s.resolver, s.now, s.offset, s.config.Normalize)
	if !color.NoColor {
		n.highlight = color.New(color.FgGreen)
	}
	if err := n.NormalizeAll(); err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	log.Debug().
		Int("lines", n.stats.lines).
		Int("rewritten", n.stats.rewritten).
		Int("unresolved", n.stats.unresolved).
		Msg("Normalized.")
	return nil
}

func formatsAction(ctx context.Context, cmd *cli.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	p := newPrinter(cmd.Root().Writer, s.output)
	if err := p.formats(s.resolver.Catalog().Descriptors()); err != nil {
		return err
	}
	return p.flush()
}

func loggerSetup(w io.Writer, debug, noColor bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.TraceLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: "15:04:05",
	}).Level(level)
}
