// Command register fills in and submits the registration form from the
// command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"ctchen222/signup-form/internal/config"
	"ctchen222/signup-form/internal/form"
	"ctchen222/signup-form/internal/logger"
	"ctchen222/signup-form/internal/recaptcha"
	"ctchen222/signup-form/internal/telemetry"
	"ctchen222/signup-form/internal/transport"
	"ctchen222/signup-form/internal/validation"

	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("register", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	email := flags.String("email", "", "email address")
	dob := flags.String("dob", "", "date of birth, YYYY-MM-DD")
	password := flags.String("password", "", "password (defaults to $SIGNUP_PASSWORD)")
	flags.String("api-url", "", "base URL of the registration API")
	flags.Duration("api-timeout", 0, "timeout for the registration request")
	flags.String("site-key", "", "reCAPTCHA site key; empty disables tokens")
	flags.String("token-broker", "", "URL of the reCAPTCHA token broker")
	flags.String("static-token", "", "fixed reCAPTCHA token, for development")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.Bool("telemetry", false, "export traces, metrics and logs over OTLP")
	flags.String("otlp-endpoint", "", "OTLP gRPC collector address")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	log := logger.Init(logger.Options{Level: cfg.Log.Level, Output: stderr, Otel: cfg.Telemetry.Enabled})

	shutdown, err := telemetry.InitOtel(ctx, telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		ServiceName:  cfg.Telemetry.ServiceName,
		Endpoint:     cfg.Telemetry.OTLPEndpoint,
		StdoutTraces: cfg.Telemetry.StdoutTraces,
	})
	if err != nil {
		log.Error("failed to initialize telemetry", "error", err)
		return 1
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Error("error shutting down telemetry", "error", err)
		}
	}()

	var exec recaptcha.Executor
	switch {
	case cfg.Recaptcha.BrokerURL != "":
		exec = recaptcha.NewHTTPExecutor(cfg.Recaptcha.BrokerURL, cfg.Recaptcha.Timeout)
	case cfg.Recaptcha.StaticToken != "":
		exec = recaptcha.StaticExecutor(cfg.Recaptcha.StaticToken)
	}
	tokens := recaptcha.New(recaptcha.Config{SiteKey: cfg.Recaptcha.SiteKey}, exec).WithLogger(log)
	tr := transport.New(transport.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout})

	c := form.New(tokens, tr, form.WithLogger(log))

	pw := *password
	if pw == "" {
		pw = os.Getenv("SIGNUP_PASSWORD")
	}
	values := map[form.Field]string{
		form.FieldEmail:    *email,
		form.FieldDOB:      *dob,
		form.FieldPassword: pw,
	}
	for _, f := range form.Fields {
		if err := c.UpdateField(f, values[f]); err != nil {
			log.Error("failed to update field", "field", f, "error", err)
			return 1
		}
	}

	fmt.Fprintf(stdout, "Password strength: %s\n", validation.StrengthLabel(c.Score()))

	if !c.CanSubmit() {
		for _, f := range form.Fields {
			if msg := c.FieldError(f); msg != "" {
				fmt.Fprintf(stdout, "%s: %s\n", f, msg)
			}
		}
		return 1
	}

	c.Submit(ctx)
	fmt.Fprintln(stdout, c.Message())
	if c.Status() != form.Succeeded {
		return 1
	}
	return 0
}
