// Richtext renders untrusted content as safe HTML.
//
// Usage:
//
//	richtext [flags] [file...]
//
// Each file (or standard input, if there are none) is rendered and
// written to standard output followed by a newline. Settings come from
// RICHTEXT_* environment variables, a .env file, and an optional YAML
// config file, in increasing order of precedence; flags override all
// of them.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"github.com/DipjyotiTCS/richtext"
	"github.com/DipjyotiTCS/richtext/internal/config"
	"github.com/google/safehtml"
	"github.com/pkg/errors"
)

var (
	configFile = flag.String("config", "", "YAML config file")
	envFile    = flag.String("env", ".env", "dotenv file read before the environment, if it exists")
	format     = flag.String("format", "", "input format: auto, html, text or markdown")
	engine     = flag.String("engine", "", "sanitizer engine: tree or bluemonday")
	verbose    = flag.Bool("v", false, "log at debug level")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: richtext [flags] [file...]\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("richtext: ")
	flag.Usage = usage
	flag.Parse()
	opts := options{
		configFile: *configFile,
		envFile:    *envFile,
		format:     *format,
		engine:     *engine,
		verbose:    *verbose,
	}
	if err := run(context.Background(), opts, flag.Args(), os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

// options holds the command-line flags.
type options struct {
	configFile string
	envFile    string
	format     string
	engine     string
	verbose    bool
}

func run(ctx context.Context, opts options, files []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if opts.envFile != "" {
		if err := config.LoadDotEnv(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrap(err, "load dotenv")
		}
	}
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	if opts.format != "" {
		cfg.Format = opts.format
	}
	if opts.engine != "" {
		cfg.Engine = opts.engine
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := new(slog.LevelVar)
	level.Set(cfg.Level())
	if opts.verbose {
		level.Set(slog.LevelDebug)
	}
	lg := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	eng, err := richtext.ParseEngine(cfg.Engine)
	if err != nil {
		return err
	}
	s := richtext.New(richtext.WithEngine(eng), richtext.WithLogger(lg))

	var contents []string
	if len(files) == 0 {
		c, err := readInput(stdin, cfg.MaxInputBytes)
		if err != nil {
			return errors.Wrap(err, "stdin")
		}
		contents = append(contents, c)
	}
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		c, err := readInput(f, cfg.MaxInputBytes)
		f.Close()
		if err != nil {
			return errors.Wrap(err, file)
		}
		contents = append(contents, c)
	}
	lg.Debug("rendering", "inputs", len(contents), "format", cfg.Format, "engine", eng)

	out, err := render(ctx, s, cfg.Format, contents)
	if err != nil {
		return err
	}
	for _, h := range out {
		if _, err := fmt.Fprintln(stdout, h); err != nil {
			return err
		}
	}
	return nil
}

func render(ctx context.Context, s *richtext.Sanitizer, format string, contents []string) ([]safehtml.HTML, error) {
	out := make([]safehtml.HTML, len(contents))
	switch format {
	case "auto":
		rendered, err := s.RenderAll(ctx, contents)
		if err != nil {
			return nil, err
		}
		for i, r := range rendered {
			out[i] = r.HTML()
		}
	case "html":
		for i, c := range contents {
			out[i] = s.SanitizeHTML(c)
		}
	case "text":
		for i, c := range contents {
			out[i] = richtext.FormatPlain(c).HTML()
		}
	case "markdown":
		for i, c := range contents {
			out[i] = s.RenderMarkdown(c)
		}
	default:
		return nil, errors.Errorf("unknown format %q", format)
	}
	return out, nil
}

// readInput reads all of r, failing if it holds more than limit bytes.
func readInput(r io.Reader, limit int) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return "", err
	}
	if len(data) > limit {
		return "", errors.Errorf("input larger than %d bytes", limit)
	}
	return string(data), nil
}
