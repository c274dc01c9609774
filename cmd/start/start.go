package start

import (
	"context"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/caesium-cloud/slate/api"
	"github.com/caesium-cloud/slate/internal/event"
	"github.com/caesium-cloud/slate/internal/metrics"
	"github.com/caesium-cloud/slate/internal/notify"
	"github.com/caesium-cloud/slate/internal/store"
	"github.com/caesium-cloud/slate/internal/timeline"
	"github.com/caesium-cloud/slate/pkg/env"
	"github.com/caesium-cloud/slate/pkg/log"
	"github.com/spf13/cobra"
)

const (
	usage   = "start"
	short   = "Start a slate dataset server"
	long    = "This command loads or generates a dataset and serves it over REST, GraphQL and SSE"
	example = "slate start"
)

var (
	// Cmd is the start command.
	Cmd = &cobra.Command{
		Use:        usage,
		Short:      short,
		Long:       long,
		Aliases:    []string{"s"},
		SuggestFor: []string{"launch", "boot", "up", "run", "serve"},
		Example:    example,
		RunE:       start,
	}
)

var cancel context.CancelFunc

func start(cmd *cobra.Command, args []string) error {
	signalChan := make(chan os.Signal, 1)

	go func() {
		for s := range signalChan {
			switch s {
			case syscall.SIGUSR1:
				log.Info("dumping stack traces due to SIGUSR1 signal")
				if profile := pprof.Lookup("goroutine"); profile != nil {
					if err := profile.WriteTo(os.Stdout, 1); err != nil {
						log.Error("write goroutine profile", "error", err)
					}
				}
			case syscall.SIGINT, syscall.SIGTERM:
				log.Info("gracefully shutting down", "signal", s.String())
				shutdown()
			}
		}
	}()

	signal.Notify(signalChan, syscall.SIGUSR1, syscall.SIGINT, syscall.SIGTERM)

	var errs = make(chan error, 2)
	ctx, cancelFunc := context.WithCancel(context.Background())
	cancel = cancelFunc
	defer shutdown()

	metrics.Register()

	vars := env.Variables()

	d, err := store.Open(vars)
	if err != nil {
		log.Fatal("dataset load failure", "error", err)
	}

	bus := event.New(vars.EventBuffer)

	cfg := notify.ConfigFromEnv(vars)
	transport, err := notify.BuildTransport(cfg)
	if err != nil {
		log.Fatal("notification transport configuration failure", "error", err)
	}

	subscriber := notify.NewSubscriber(bus, transport)
	subscriber.SetTransportName(cfg.Transport)

	consumer := timeline.NewLogConsumer()
	if vars.TimelineURL != "" {
		consumer = timeline.NewHTTPConsumer(timeline.HTTPConsumerConfig{
			URL:     vars.TimelineURL,
			Headers: notify.ParseHeaders(cfg.Headers),
			Timeout: vars.TimelineTimeout,
		})
	}

	st := store.New(d, bus, store.WithConsumer(consumer))

	go func() {
		log.Info("starting notification subscriber", "transport", cfg.Transport)
		if err := subscriber.Start(ctx); err != nil {
			errs <- err
		}
	}()

	select {
	case <-subscriber.Ready():
	case err := <-errs:
		return err
	}

	go func() {
		log.Info("spinning up api", "port", vars.Port)
		errs <- api.Start(ctx, st, bus)
	}()

	return <-errs
}

func shutdown() {
	if cancel != nil {
		cancel()
	}
	if err := api.Shutdown(); err != nil {
		log.Error("api shutdown failure", "error", err)
	}
}
