package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func Test_ObserverCounts(t *testing.T) {
	o := New()

	pubBefore := testutil.ToFloat64(eventsPublishedTotal.WithLabelValues("combat.severity"))
	okBefore := testutil.ToFloat64(handlerInvocationsTotal.WithLabelValues("combat.severity", "ok"))
	errBefore := testutil.ToFloat64(handlerInvocationsTotal.WithLabelValues("combat.severity", "error"))
	resBefore := testutil.ToFloat64(resolutionFailuresTotal.WithLabelValues("method_unresolved"))

	o.EventPublished("combat.severity", 2)
	o.HandlerInvoked("combat.severity", nil)
	o.HandlerInvoked("combat.severity", errors.New("boom"))
	o.ResolutionFailed("OnSeverity", "method_unresolved")

	if got := testutil.ToFloat64(eventsPublishedTotal.WithLabelValues("combat.severity")); got != pubBefore+1 {
		t.Fatalf("events_published_total=%v", got)
	}

	if got := testutil.ToFloat64(handlerInvocationsTotal.WithLabelValues("combat.severity", "ok")); got != okBefore+1 {
		t.Fatalf("handler_invocations_total{ok}=%v", got)
	}

	if got := testutil.ToFloat64(handlerInvocationsTotal.WithLabelValues("combat.severity", "error")); got != errBefore+1 {
		t.Fatalf("handler_invocations_total{error}=%v", got)
	}

	if got := testutil.ToFloat64(resolutionFailuresTotal.WithLabelValues("method_unresolved")); got != resBefore+1 {
		t.Fatalf("resolution_failures_total=%v", got)
	}
}
