package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JacobTheEvans/swagger-validator-middleware/internal/config"
	"github.com/JacobTheEvans/swagger-validator-middleware/internal/logging"
)

// ServeFlags contains flags for the serve command
type ServeFlags struct {
	Config    string
	Addr      string
	Upstream  string
	Contract  string
	LogLevel  string
	LogFormat string
}

// serveOverrides maps flag names to the configuration keys they override.
var serveOverrides = map[string]string{
	"addr":       "server.addr",
	"upstream":   "server.upstream",
	"contract":   "contract.path",
	"log-level":  "server.log_level",
	"log-format": "server.log_format",
}

// SetupServeFlags creates and configures a FlagSet for the serve command.
// Returns the FlagSet and a ServeFlags struct with bound flag variables.
func SetupServeFlags() (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	fs.StringVar(&flags.Config, "config", "", "path to a YAML configuration file")
	fs.StringVar(&flags.Addr, "addr", "", "listen address (default :8080)")
	fs.StringVar(&flags.Upstream, "upstream", "", "URL valid requests are proxied to; without it they are echoed back")
	fs.StringVar(&flags.Contract, "contract", "", "path to the Swagger contract")
	fs.StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn, or error (default info)")
	fs.StringVar(&flags.LogFormat, "log-format", "", "log format: json or text (default json)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: swagval serve [flags]\n\n")
		Writef(fs.Output(), "Run a validating gateway in front of a service. Every contract operation is\n")
		Writef(fs.Output(), "routed; requests that violate the contract are answered with 400.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nConfiguration:\n")
		Writef(fs.Output(), "  Settings come from defaults, the -config file, %s_* environment\n", config.EnvPrefix)
		Writef(fs.Output(), "  variables (e.g. %s_SERVER_ADDR) and flags, in increasing precedence.\n", config.EnvPrefix)
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  swagval serve -contract swagger.yaml -upstream http://localhost:3000\n")
		Writef(fs.Output(), "  swagval serve -config swagval.yaml -log-level debug\n")
	}

	return fs, flags
}

// HandleServe executes the serve command
func HandleServe(args []string) error {
	fs, flags := SetupServeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("serve command takes no arguments; use -contract to name the contract")
	}

	cfg, err := config.Load(flags.Config, collectOverrides(fs))
	if err != nil {
		return err
	}

	logger := logging.Setup(os.Stderr, cfg.Server.LogLevel, cfg.Server.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, err := NewGateway(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// collectOverrides returns config overrides for the flags that were set explicitly.
func collectOverrides(fs *flag.FlagSet) map[string]any {
	overrides := make(map[string]any)
	fs.Visit(func(f *flag.Flag) {
		if key, ok := serveOverrides[f.Name]; ok {
			overrides[key] = f.Value.String()
		}
	})
	return overrides
}
