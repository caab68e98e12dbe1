package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"

	domainerrors "github.com/leengari/jsonserver/internal/domain/errors"
)

var (
	operationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jsonserver",
			Subsystem: "operation",
			Name:      "total",
			Help:      "Total operations by table, kind and result.",
		}, []string{"table", "op", "result"})

	operationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jsonserver",
			Subsystem: "operation",
			Name:      "duration_seconds",
			Help:      "Bucketed histogram of processing time (s) of operations.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 18),
		}, []string{"table", "op"})

	tableRowsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "jsonserver",
			Subsystem: "table",
			Name:      "rows",
			Help:      "Committed row count of a table.",
		}, []string{"table"})
)

// Registry is the metrics registry of the server
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	Registry.MustRegister(collectors.NewGoCollector())

	Registry.MustRegister(operationCounter)
	Registry.MustRegister(operationHistogram)
	Registry.MustRegister(tableRowsGauge)
}

// Result label values
const (
	ResultOK          = "ok"
	ResultInvalid     = "invalid"
	ResultNotFound    = "not_found"
	ResultPersistFail = "persist_error"
	ResultError       = "error"
)

// ResultOf classifies an operation error into a result label
func ResultOf(err error) string {
	var (
		coercion   *domainerrors.TypeCoercionError
		validation *domainerrors.ValidationError
		notFound   *domainerrors.NotFoundError
		noTable    *domainerrors.TableNotFoundError
		persist    *domainerrors.PersistenceError
	)
	switch {
	case err == nil:
		return ResultOK
	case errors.As(err, &coercion), errors.As(err, &validation):
		return ResultInvalid
	case errors.As(err, &notFound), errors.As(err, &noTable):
		return ResultNotFound
	case errors.As(err, &persist):
		return ResultPersistFail
	default:
		return ResultError
	}
}

// ObserveOperation records one finished operation
func ObserveOperation(table, op string, d time.Duration, err error) {
	operationCounter.WithLabelValues(table, op, ResultOf(err)).Inc()
	operationHistogram.WithLabelValues(table, op).Observe(d.Seconds())
}

// SetTableRows records the committed row count of a table
func SetTableRows(table string, n int) {
	tableRowsGauge.WithLabelValues(table).Set(float64(n))
}

var getHostname = os.Hostname

func instanceName(port int) string {
	hostname, err := getHostname()
	if err != nil {
		slog.Error("failed to get hostname", slog.Any("error", err))
		return "unknown"
	}
	return fmt.Sprintf("%s_%d", hostname, port)
}

// PushClient periodically pushes the registry to a Prometheus Pushgateway
type PushClient struct {
	Addr     string
	Interval time.Duration
	Port     int // used in the instance grouping label
}

// Start runs the push loop until ctx is done
func (mc *PushClient) Start(ctx context.Context) {
	slog.Debug("start prometheus metrics client",
		slog.String("addr", mc.Addr),
		slog.Duration("interval", mc.Interval),
	)
	pusher := push.New(mc.Addr, "jsonserver").
		Gatherer(Registry).
		Grouping("instance", instanceName(mc.Port))

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(mc.Interval):
			if err := pusher.AddContext(ctx); err != nil && ctx.Err() == nil {
				slog.Error("could not push metrics to Prometheus Pushgateway", slog.Any("error", err))
			}
		}
	}
}
