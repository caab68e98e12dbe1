package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/pingcap/check"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/leengari/jsonserver/internal/catalog"
	domainerrors "github.com/leengari/jsonserver/internal/domain/errors"
	"github.com/leengari/jsonserver/internal/engine"
	"github.com/leengari/jsonserver/internal/store"
	tu "github.com/leengari/jsonserver/internal/testutil"
)

func TestMetrics(t *testing.T) {
	TestingT(t)
}

type resultSuite struct{}

var _ = Suite(&resultSuite{})

func (s *resultSuite) TestResultOf(c *C) {
	c.Assert(ResultOf(nil), Equals, ResultOK)
	c.Assert(ResultOf(&domainerrors.ValidationError{Table: "t"}), Equals, ResultInvalid)
	c.Assert(ResultOf(&domainerrors.TypeCoercionError{Table: "t"}), Equals, ResultInvalid)
	c.Assert(ResultOf(&domainerrors.NotFoundError{Table: "t", ID: 1}), Equals, ResultNotFound)
	c.Assert(ResultOf(&domainerrors.TableNotFoundError{Table: "t"}), Equals, ResultNotFound)
	c.Assert(ResultOf(&domainerrors.PersistenceError{Table: "t", Err: errors.New("disk")}), Equals, ResultPersistFail)
	c.Assert(ResultOf(errors.New("boom")), Equals, ResultError)
}

type observerSuite struct{}

var _ = Suite(&observerSuite{})

func (s *observerSuite) TestObserverCountsOperations(c *C) {
	p := &tu.MemoryPersister{}
	table, err := store.New("metric_users", "metric_users.json", tu.UsersSchema(), tu.UsersRows(), p)
	c.Assert(err, IsNil)
	cat := catalog.New()
	_, err = cat.Add(table)
	c.Assert(err, IsNil)

	o := NewObserver(cat)
	c.Assert(testutil.ToFloat64(tableRowsGauge.WithLabelValues("metric_users")), Equals, float64(3))

	_, err = table.Delete(nil, 1)
	c.Assert(err, IsNil)
	o.OnEvent(engine.Event{Type: engine.EventOpStart, Table: "metric_users", Operation: "delete"})
	o.OnEvent(engine.Event{Type: engine.EventOpEnd, Table: "metric_users", Operation: "delete", Duration: time.Millisecond})
	o.OnEvent(engine.Event{Type: engine.EventOpEnd, Table: "metric_users", Operation: "update",
		Err: &domainerrors.NotFoundError{Table: "metric_users", ID: 9}})

	c.Assert(testutil.ToFloat64(operationCounter.WithLabelValues("metric_users", "delete", ResultOK)), Equals, float64(1))
	c.Assert(testutil.ToFloat64(operationCounter.WithLabelValues("metric_users", "update", ResultNotFound)), Equals, float64(1))
	c.Assert(testutil.ToFloat64(tableRowsGauge.WithLabelValues("metric_users")), Equals, float64(2))
}

func (s *observerSuite) TestHistogramIsGathered(c *C) {
	ObserveOperation("metric_hist", "list", 2*time.Millisecond, nil)
	ObserveOperation("metric_hist", "list", 3*time.Millisecond, nil)

	families, err := Registry.Gather()
	c.Assert(err, IsNil)

	var found *dto.Metric
	for _, mf := range families {
		if mf.GetName() != "jsonserver_operation_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelValue(m, "table") == "metric_hist" {
				found = m
			}
		}
	}
	c.Assert(found, NotNil)
	c.Assert(found.GetHistogram().GetSampleCount(), Equals, uint64(2))
	c.Assert(labelValue(found, "op"), Equals, "list")
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

type instanceNameSuite struct{}

var _ = Suite(&instanceNameSuite{})

func (s *instanceNameSuite) TestShouldRetUnknown(c *C) {
	orig := getHostname
	defer func() {
		getHostname = orig
	}()
	getHostname = func() (string, error) {
		return "", errors.New("host")
	}

	c.Assert(instanceName(3000), Equals, "unknown")
}

func (s *instanceNameSuite) TestShouldUseHostname(c *C) {
	orig := getHostname
	defer func() {
		getHostname = orig
	}()
	getHostname = func() (string, error) {
		return "kendoka", nil
	}

	c.Assert(instanceName(3000), Equals, "kendoka_3000")
}

type pushSuite struct{}

var _ = Suite(&pushSuite{})

func (s *pushSuite) TestCanBeStoppedFromOutside(c *C) {
	mc := PushClient{Addr: "localhost", Interval: 2 * time.Second, Port: 3000}
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		mc.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		c.Fatal("metric push loop doesn't stop in time")
	}
}
