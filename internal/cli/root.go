// Package cli wires configuration, storage and the weather API into the weather command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-cli/internal/config"
	"github.com/fakhrymubarak/weather-cli/internal/redis"
	"github.com/fakhrymubarak/weather-cli/internal/repository"
	"github.com/fakhrymubarak/weather-cli/internal/selector"
	"github.com/fakhrymubarak/weather-cli/internal/service"
	"github.com/fakhrymubarak/weather-cli/internal/store"
)

// NewRootCommand builds the weather command. Tests may pass a service; otherwise
// one is built from configuration when the command runs.
func NewRootCommand(svc ...service.WeatherServiceInterface) *cobra.Command {
	var selectCity, verbose, noCache bool

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Show the current weather for your city",
		Long: `weather prints current conditions for the active city stored in active_city.json,
using the OpenWeatherMap key stored in key_config.json.

Run with --select to pick the active city from the candidates in city_config.json.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				if err := config.SetLogLevel("debug"); err != nil {
					return err
				}
			}
			logger := config.GetLogger().With("run_id", uuid.NewString())

			var reporter service.WeatherServiceInterface
			if len(svc) > 0 && svc[0] != nil {
				reporter = svc[0]
			} else {
				built, cleanup := buildService(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), logger, !noCache)
				defer cleanup()
				reporter = built
			}

			summary, err := reporter.Report(cmd.Context(), selectCity)
			if err != nil {
				logger.Debugw("Weather report failed", "error", err)
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&selectCity, "select", "s", false, "Choose the active city from the stored candidates")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the Redis weather cache")
	cmd.Flags().String("config-dir", "", "Directory holding the city and key configuration files")
	_ = viper.BindPFlag("storage.dir", cmd.Flags().Lookup("config-dir"))

	return cmd
}

func buildService(ctx context.Context, in io.Reader, out io.Writer, logger *zap.SugaredLogger, useCache bool) (*service.WeatherService, func()) {
	st := store.NewFileStore(afero.NewOsFs(), store.Options{
		Dir:            config.GetStorageDir(),
		CandidatesFile: config.GetCandidatesFile(),
		ActiveCityFile: config.GetActiveCityFile(),
		APIKeyFile:     config.GetAPIKeyFile(),
	})

	opts := repository.Options{
		BaseURL:         config.GetOpenWeatherApiUrl(),
		HTTPClient:      &http.Client{Timeout: config.GetHTTPTimeout()},
		CacheExpiration: config.GetCacheExpiration(),
		Logger:          logger,
	}
	cleanup := func() {}
	if useCache && config.IsCacheEnabled() {
		client, err := redis.Connect(ctx, config.GetRedisAddr(), config.GetRedisDialTimeout())
		if err != nil {
			logger.Warnw("Running without weather cache", "error", err)
		} else {
			opts.Cache = client
			cleanup = func() { _ = client.Close() }
		}
	}

	rps, burst := config.GetRateLimiterConfig()
	repo := repository.NewRateLimitedRepository(repository.NewWeatherRepository(opts), rps, burst)

	return service.NewWeatherService(st, selector.NewPromptSelector(in, out), repo, logger), cleanup
}

// Describe turns an error from the command into the message shown to the user.
func Describe(err error) string {
	switch {
	case errors.Is(err, store.ErrConfigUnavailable):
		return fmt.Sprintf("Could not read the configuration files: %v", err)
	case errors.Is(err, store.ErrConfigShapeMismatch):
		return fmt.Sprintf("The configuration files are not in the expected format: %v", err)
	case errors.Is(err, selector.ErrInvalidSelection):
		return fmt.Sprintf("Please enter an integer value: %v", err)
	case errors.Is(err, selector.ErrSelectionOutOfRange):
		return fmt.Sprintf("Please choose one of the listed cities: %v", err)
	case errors.Is(err, selector.ErrSelectionCancelled):
		return "No city was selected."
	case errors.Is(err, repository.ErrRetrievalFailure):
		return fmt.Sprintf("Could not retrieve the weather: %v", err)
	default:
		return err.Error()
	}
}

// Execute runs the weather command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// run executes the command against the given streams. Failures are described
// on errOut and yield exit code 1.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer, svc ...service.WeatherServiceInterface) int {
	if args == nil {
		args = []string{}
	}
	cmd := NewRootCommand(svc...)
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(errOut, Describe(err))
		return 1
	}
	return 0
}
