package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/samvad-hq/placeholder-client/internal/config"
	"github.com/samvad-hq/placeholder-client/internal/logger"
	"github.com/samvad-hq/placeholder-client/internal/prober"
	"github.com/samvad-hq/placeholder-client/pkg/checks"
	"github.com/samvad-hq/placeholder-client/pkg/placeholder"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	exitOK       = 0
	exitUsage    = 1
	exitNotOK    = 2
	commandName  = "placeholder"
	usagePreface = "usage: placeholder <operation> [flags]"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	id, postID, albumID, userID int
	body, rawBody, token        string
	baseURL                     string
	timeout                     time.Duration
	params                      []string
	verbose                     bool
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet(commandName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usagePreface)
		fmt.Fprintf(stderr, "operations: %s\n", strings.Join(checks.Operations(), ", "))
		fs.PrintDefaults()
	}

	var o options
	fs.IntVar(&o.id, "id", 0, "resource id")
	fs.IntVar(&o.postID, "post-id", 0, "filter comments by post id")
	fs.IntVar(&o.albumID, "album-id", 0, "filter photos by album id")
	fs.IntVar(&o.userID, "user-id", 0, "filter posts or todos by user id")
	fs.StringVar(&o.body, "body", "", "JSON object request body")
	fs.StringVar(&o.rawBody, "raw-body", "", "request body sent verbatim (create_post_raw)")
	fs.StringArrayVar(&o.params, "param", nil, "query parameter key=value (repeatable)")
	fs.StringVar(&o.token, "token", "", "bearer token")
	fs.StringVar(&o.baseURL, "base-url", "", "API base URL (default from API_BASE_URL)")
	fs.DurationVar(&o.timeout, "timeout", 0, "request timeout (default from API_TIMEOUT_SECONDS)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log requests to stderr")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}

	check, err := buildCheck(fs, fs.Arg(0), o)
	if err != nil {
		fmt.Fprintf(stderr, "%s failed: %v\n", commandName, err)
		return exitUsage
	}

	client, err := buildClient(o, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s failed: %v\n", commandName, err)
		return exitUsage
	}

	out := prober.Dispatch(context.Background(), client, check)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(stderr, "%s failed: encode outcome: %v\n", commandName, err)
		return exitUsage
	}
	if !out.OK {
		return exitNotOK
	}
	return exitOK
}

// buildCheck maps flags onto check arguments. Filters are only set when the
// flag was given, so --post-id=0 filters by 0.
func buildCheck(fs *pflag.FlagSet, op string, o options) (checks.Check, error) {
	check := checks.Check{ID: commandName, Operation: op}
	a := &check.Args
	if fs.Changed("id") {
		a.ID = &o.id
	}
	if fs.Changed("post-id") {
		a.PostID = &o.postID
	}
	if fs.Changed("album-id") {
		a.AlbumID = &o.albumID
	}
	if fs.Changed("user-id") {
		a.UserID = &o.userID
	}
	a.RawBody = o.rawBody

	if o.body != "" {
		if err := json.Unmarshal([]byte(o.body), &a.Body); err != nil {
			return checks.Check{}, fmt.Errorf("parse --body: %w", err)
		}
	}
	if len(o.params) > 0 {
		a.Params = make(map[string]string, len(o.params))
		for _, kv := range o.params {
			k, v, ok := strings.Cut(kv, "=")
			if !ok || strings.TrimSpace(k) == "" {
				return checks.Check{}, fmt.Errorf("invalid --param %q (want key=value)", kv)
			}
			a.Params[strings.TrimSpace(k)] = v
		}
	}

	if err := check.Validate(); err != nil {
		return checks.Check{}, err
	}
	return check, nil
}

// buildClient starts from the environment configuration and applies flag
// overrides on top.
func buildClient(o options, stderr io.Writer) (*placeholder.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	baseURL := cfg.APIBaseURL
	if o.baseURL != "" {
		baseURL = o.baseURL
	}
	timeout := cfg.APITimeout
	if o.timeout > 0 {
		timeout = o.timeout
	}
	token := cfg.APIAuthToken
	if o.token != "" {
		token = o.token
	}

	opts := []placeholder.Option{
		placeholder.WithBaseURL(baseURL),
		placeholder.WithTimeout(timeout),
	}
	if o.verbose {
		zl := zap.New(consoleCore(stderr), zap.AddCaller())
		opts = append(opts, placeholder.WithLogger(logger.NewZapLogger(zl)))
	}

	client := placeholder.New(opts...)
	if token != "" {
		client.SetAuthToken(token)
	}
	return client, nil
}

func consoleCore(w io.Writer) zapcore.Core {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel)
}
