package svc

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	loggerpkg "github.com/juanspinelli/dagster/internal/pkg/logger"
	otelpkg "github.com/juanspinelli/dagster/internal/pkg/otel"
)

// Defaults used when the build does not inject an identity via ldflags.
const (
	defaultName    = "runlogs"
	defaultVersion = "dev"
)

// Svc contains the service information.
type Svc struct {
	// Version is the service version.
	Version string

	// Name is the name of the service.
	Name string
}

// svc holds the process-wide service information.
var svc Svc

// GetVersion returns the service version.
func (s Svc) GetVersion() string {
	return s.Version
}

// GetName returns the service name.
func (s Svc) GetName() string {
	return s.Name
}

// SetVersion sets the service version.
func SetVersion(version string) {
	if svc.Version != "" {
		return
	}
	svc.Version = version
}

// SetName sets the service name.
func SetName(name string) {
	if svc.Name != "" {
		return
	}
	svc.Name = name
}

// Info returns the service information.
func Info() Svc {
	return svc
}

// Init initializes the service identity and the observability stack and
// returns a context carrying the logger plus a shutdown function. Missing
// OTLP collectors degrade the setup to plain stdout logging rather than
// failing the process.
func Init() (context.Context, func()) {
	SetName(defaultName)
	SetVersion(defaultVersion)

	ctx, cancel := context.WithCancel(context.Background())

	var (
		tp *sdktrace.TracerProvider
		mp *sdkmetric.MeterProvider
		lp *sdklog.LoggerProvider
	)

	res, err := otelpkg.InitResource(ctx, svc.Name, svc.Version)
	if err == nil {
		if tp, err = otelpkg.InitTracerProvider(ctx, res); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if mp, err = otelpkg.InitMeterProvider(ctx, res); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if lp, err = otelpkg.InitLogProvider(ctx, res); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	} else {
		fmt.Fprintln(os.Stderr, err)
	}

	ctx, logger := loggerpkg.Init(ctx, fmt.Sprintf("%s@%s", svc.Name, svc.Version), lp)

	var once sync.Once
	shutdown := func() {
		once.Do(func() { shutdownOnce(cancel, logger, tp, mp, lp) })
	}

	return ctx, shutdown
}

func shutdownOnce(
	cancel context.CancelFunc,
	logger *zap.Logger,
	tp *sdktrace.TracerProvider,
	mp *sdkmetric.MeterProvider,
	lp *sdklog.LoggerProvider,
) {
	cancel()

	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()

	if lp != nil {
		//nolint:errcheck // Ignore error as we are exiting
		lp.Shutdown(sctx)
	}
	if mp != nil {
		//nolint:errcheck // Ignore error as we are exiting
		mp.Shutdown(sctx)
	}
	if tp != nil {
		//nolint:errcheck // Ignore error as we are exiting
		tp.Shutdown(sctx)
	}

	//nolint:errcheck // Stdout sync errors are not actionable
	logger.Sync()
}
