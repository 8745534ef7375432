package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-auth-server-client/authserver"
	"github.com/jrsteele09/go-auth-server-client/discovery"
	"github.com/jrsteele09/go-auth-server-client/internal/config"
	"github.com/jrsteele09/go-auth-server-client/internal/utils"
	"github.com/jrsteele09/go-auth-server-client/oauth2"
	"github.com/rs/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// pairs collects repeated key=value flags.
type pairs []string

func (p *pairs) String() string {
	return strings.Join(*p, ",")
}

func (p *pairs) Set(v string) error {
	*p = append(*p, v)
	return nil
}

type options struct {
	url         string
	issuer      string
	method      string
	contentType string
	retries     int
	form        pairs
	query       pairs
	quiet       bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("authreq", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.url, "url", "", "token endpoint URL")
	fs.StringVar(&o.issuer, "issuer", "", "OpenID issuer used to discover the token endpoint when -url is empty")
	fs.StringVar(&o.method, "method", string(authserver.MethodPost), "HTTP method")
	fs.StringVar(&o.contentType, "content-type", authserver.DefaultContentType, "request Content-Type")
	fs.IntVar(&o.retries, "retries", authserver.DefaultRetries, "retries after a failed attempt")
	fs.Var(&o.form, "form", "body field as key=value, repeatable")
	fs.Var(&o.query, "query", "query parameter as key=value, repeatable")
	fs.BoolVar(&o.quiet, "quiet", false, "do not print the banner")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.url == "" && o.issuer == "" {
		return o, errors.New("one of -url or -issuer is required")
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	o, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}

	c := config.New()
	logger := newLogger(c, stderr)
	if !o.quiet {
		displayAppname(c.GetAppName(), stderr)
	}

	tokenURL := o.url
	if tokenURL == "" {
		tokenURL, err = discovery.TokenEndpoint(ctx, o.issuer)
		if err != nil {
			logger.Error().Err(err).Str("issuer", o.issuer).Msg("token endpoint discovery failed")
			return err
		}
	}

	body, err := utils.PairsToValues(o.form)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}
	query, err := utils.PairsToValues(o.query)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}

	client := authserver.NewClient(c, authserver.WithLogger(logger))
	resp, err := authserver.Do(ctx, client, authserver.Options[oauth2.AccessTokenResponse]{
		URL:         tokenURL,
		Method:      authserver.Method(strings.ToUpper(o.method)),
		Body:        body,
		Query:       query,
		Retries:     utils.Ptr(o.retries),
		ContentType: o.contentType,
		Validator:   oauth2.AccessTokenResponseValidator,
	})
	if err != nil {
		_ = writeJSON(stdout, err)
		return err
	}
	return writeJSON(stdout, resp)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newLogger(c config.EnvConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Str("env", c.GetEnv()).Logger()
}

func displayAppname(appname string, w io.Writer) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(w, myFigure.String())
}
