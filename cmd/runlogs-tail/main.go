package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	runlogsapp "github.com/juanspinelli/dagster/internal/app/runlogs"
	"github.com/juanspinelli/dagster/internal/config"
	"github.com/juanspinelli/dagster/internal/logstream"
	loggerpkg "github.com/juanspinelli/dagster/internal/pkg/logger"
	postgrespkg "github.com/juanspinelli/dagster/internal/pkg/postgres"
	redispkg "github.com/juanspinelli/dagster/internal/pkg/redis"
	svcpkg "github.com/juanspinelli/dagster/internal/pkg/svc"
	"github.com/juanspinelli/dagster/internal/repository/kafkastream"
	"github.com/juanspinelli/dagster/internal/repository/redisstream"
	runsrepo "github.com/juanspinelli/dagster/internal/repository/runs"
	"github.com/juanspinelli/dagster/internal/repository/statuscache"
	runlogssvc "github.com/juanspinelli/dagster/internal/service/runlogs"
)

const (
	// ExitOk and ExitError are the exit codes.
	ExitOk = iota
	// ExitError is the exit code for errors.
	ExitError
)

func main() {
	os.Exit(run())
}

func run() int {
	// Initialize the service with all necessary components
	ctx, cancel := svcpkg.Init()
	defer cancel()

	// Handle OS signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Load the run log tail configuration
	cfg, err := config.InitRunLogsTailConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	runID := cfg.RunLogsTailConfig.RunID
	if len(os.Args) > 1 {
		runID = os.Args[1]
	}
	if runID == "" {
		fmt.Fprintln(os.Stderr, "usage: runlogs-tail <run-id> (or set RUNLOGS_RUN_ID)")
		return ExitError
	}

	// Initialize the Redis store
	rdb, err := redispkg.New(ctx, &redispkg.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}
	defer rdb.Close()

	// Initialize the PostgreSQL store
	pg, err := postgrespkg.New(ctx, &postgrespkg.Config{
		Host:        cfg.Postgres.Host,
		Port:        cfg.Postgres.Port,
		User:        cfg.Postgres.User,
		Password:    cfg.Postgres.Password,
		Database:    cfg.Postgres.Database,
		MaxConns:    cfg.Postgres.MaxConns,
		MinConns:    cfg.Postgres.MinConns,
		MaxConnLife: cfg.Postgres.MaxConnLife,
		MaxConnIdle: cfg.Postgres.MaxConnIdle,
		DialTimeout: cfg.Postgres.DialTimeout,
		SSLMode:     cfg.Postgres.SSLMode,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}
	defer pg.Close()

	// Pick the log stream transport
	var channel logstream.Channel
	switch cfg.RunLogsTailConfig.Transport {
	case "kafka":
		channel = kafkastream.New(cfg.Kafka.Brokers...)
	default:
		channel = redisstream.New(rdb)
	}

	// Initialize the run log tail components
	printer := newPrinter(os.Stdout)
	session := logstream.NewSession(ctx, channel, statuscache.New(rdb), printer.print)

	repo := runsrepo.New(pg, rdb)
	svc := runlogssvc.New(validator.New(), repo, session, logstream.QueryTokenizer{})
	app := runlogsapp.New(ctx, svc)

	// Log the service information
	loggerpkg.FromContext(ctx).Info(
		"starting service",
		zap.String("name", svcpkg.Info().GetName()),
		zap.String("version", svcpkg.Info().GetVersion()),
		zap.String("environment", cfg.Environment.Env),
		zap.String("run_id", runID),
		zap.String("transport", cfg.RunLogsTailConfig.Transport),
		zap.Int("gomaxprocs", runtime.GOMAXPROCS(0)),
	)

	// Tail the run logs
	if err := app.Run(ctx, &runlogssvc.TailRunRequest{
		RunID: runID,
		Query: cfg.RunLogsTailConfig.Query,
		Since: cfg.RunLogsTailConfig.Since,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	return ExitOk
}

// printer writes newly filtered events to the output, one line per event.
type printer struct {
	w io.Writer

	mu    sync.Mutex
	seen  map[string]struct{}
	epoch int
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:    w,
		seen: make(map[string]struct{}),
	}
}

func (p *printer) print(u *logstream.Update) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Keys restart at csk0 whenever the accumulated sequence resets, so
	// the seen set is only valid within one epoch.
	if u.Epoch != p.epoch {
		p.seen = make(map[string]struct{})
		p.epoch = u.Epoch
	}

	for _, item := range u.FilteredEvents {
		if _, ok := p.seen[item.Key]; ok {
			continue
		}
		p.seen[item.Key] = struct{}{}

		ev := item.Event
		fmt.Fprintf(p.w, "%s\t%-8s\t%s\t%s\n",
			time.UnixMilli(ev.GetTimestamp()).UTC().Format(time.RFC3339),
			ev.EffectiveLevel().ToString(),
			ev.GetStepKey(),
			ev.GetMessage(),
		)
	}
}
