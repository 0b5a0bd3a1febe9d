package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.OperationsTotal == nil {
		t.Error("OperationsTotal not initialized")
	}
	if r.FramesRenderedTotal == nil {
		t.Error("FramesRenderedTotal not initialized")
	}
	if r.AssistantAnswersTotal == nil {
		t.Error("AssistantAnswersTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("POST", "/api/sessions", "201", 100*time.Millisecond)
	r.RecordHTTPRequest("POST", "/api/sessions", "400", 50*time.Millisecond)

	counter, err := r.HTTPRequestsTotal.GetMetricWithLabelValues("POST", "/api/sessions", "201")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if v := counterValue(t, counter); v != 1 {
		t.Errorf("Counter value = %v, want 1", v)
	}
}

func TestHTTPInFlightAndResponseSize(t *testing.T) {
	r := NewRegistry()

	r.IncHTTPRequestsInFlight()
	r.IncHTTPRequestsInFlight()
	r.DecHTTPRequestsInFlight()
	if v := gaugeValue(t, r.HTTPRequestsInFlight); v != 1 {
		t.Errorf("Expected 1 request in flight, got %f", v)
	}

	r.RecordResponseSize("GET", "GET /api/sessions", 512)
	if n := testutil.CollectAndCount(r.HTTPResponseSizeBytes); n != 1 {
		t.Errorf("Expected 1 response size series, got %d", n)
	}
}

func TestRecordOperation(t *testing.T) {
	r := NewRegistry()
	r.RecordOperation("array", "bubble", OutcomeSuccess, 40, time.Millisecond)
	r.RecordOperation("array", "bubble", OutcomeSuccess, 12, time.Millisecond)
	r.RecordOperation("stack", "pop", OutcomeDeclined, 2, time.Millisecond)

	ok, _ := r.OperationsTotal.GetMetricWithLabelValues("array", "bubble", OutcomeSuccess)
	if v := counterValue(t, ok); v != 2 {
		t.Errorf("success counter = %v, want 2", v)
	}
	declined, _ := r.OperationsTotal.GetMetricWithLabelValues("stack", "pop", OutcomeDeclined)
	if v := counterValue(t, declined); v != 1 {
		t.Errorf("declined counter = %v, want 1", v)
	}

	hist, err := r.TraceFrames.GetMetricWithLabelValues("array")
	if err != nil {
		t.Fatal(err)
	}
	var metric dto.Metric
	if err := hist.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatal(err)
	}
	if metric.Histogram.GetSampleCount() != 2 || metric.Histogram.GetSampleSum() != 52 {
		t.Errorf("frames histogram count=%d sum=%v", metric.Histogram.GetSampleCount(), metric.Histogram.GetSampleSum())
	}
}

func TestRecordOperation_NoFramesSkipsHistogram(t *testing.T) {
	r := NewRegistry()
	r.RecordOperation("list", "insertAtPosition", OutcomeInvalid, 0, 0)

	hist, _ := r.TraceFrames.GetMetricWithLabelValues("list")
	var metric dto.Metric
	if err := hist.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatal(err)
	}
	if metric.Histogram.GetSampleCount() != 0 {
		t.Errorf("invalid operation observed %d frames samples", metric.Histogram.GetSampleCount())
	}
}

func TestSessionGauge(t *testing.T) {
	r := NewRegistry()
	r.SessionOpened()
	r.SessionOpened()
	r.SessionClosed()

	if v := gaugeValue(t, r.SessionsActive); v != 1 {
		t.Errorf("SessionsActive = %v, want 1", v)
	}
	if v := counterValue(t, r.SessionsCreated); v != 2 {
		t.Errorf("SessionsCreated = %v, want 2", v)
	}
}

func TestPlaybackAndAssistantCounters(t *testing.T) {
	r := NewRegistry()
	for range 3 {
		r.RecordFrameRendered("heap")
	}
	r.RecordPlayback("step")
	r.RecordAssistantAnswer("local", 2*time.Millisecond)
	r.RecordAssistantAnswer("fallback", time.Millisecond)
	r.RecordAssistantRemoteError()

	tests := []struct {
		name    string
		counter prometheus.Counter
		want    float64
	}{
		{"frames", r.FramesRenderedTotal.WithLabelValues("heap"), 3},
		{"step", r.PlaybacksTotal.WithLabelValues("step"), 1},
		{"local", r.AssistantAnswersTotal.WithLabelValues("local"), 1},
		{"fallback", r.AssistantAnswersTotal.WithLabelValues("fallback"), 1},
		{"remote errors", r.AssistantRemoteErrors, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v := counterValue(t, tt.counter); v != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, v, tt.want)
			}
		})
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics()

	if v := gaugeValue(t, r.GoRoutines); v < 1 {
		t.Errorf("GoRoutines = %v, want >= 1", v)
	}
	if v := gaugeValue(t, r.MemorySysBytes); v <= 0 {
		t.Errorf("MemorySysBytes = %v, want > 0", v)
	}
	if v := gaugeValue(t, r.UptimeSeconds); v < 0 {
		t.Errorf("UptimeSeconds = %v", v)
	}
}

func TestGetPrometheusRegistry(t *testing.T) {
	r := NewRegistry()
	r.RecordOperation("graph", "bfs", OutcomeSuccess, 10, time.Millisecond)

	metrics, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	metricNames := make(map[string]bool)
	for _, m := range metrics {
		metricNames[m.GetName()] = true
	}
	for _, expected := range []string{
		"algoviz_operations_total",
		"algoviz_trace_frames",
		"algoviz_sessions_active",
		"algoviz_uptime_seconds",
	} {
		if !metricNames[expected] {
			t.Errorf("Expected metric %s not found", expected)
		}
	}
}

func TestConcurrentMetricUpdates(t *testing.T) {
	r := NewRegistry()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				r.RecordFrameRendered("array")
			}
			done <- true
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	if v := counterValue(t, r.FramesRenderedTotal.WithLabelValues("array")); v != 1000 {
		t.Errorf("Counter = %v, want 1000", v)
	}
}

func TestMetricNaming(t *testing.T) {
	r := NewRegistry()
	metrics, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}
	for _, m := range metrics {
		if name := m.GetName(); !strings.HasPrefix(name, "algoviz_") {
			t.Errorf("Metric %s does not have algoviz_ prefix", name)
		}
	}
}

func BenchmarkRecordOperation(b *testing.B) {
	r := NewRegistry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.RecordOperation("array", "quick", OutcomeSuccess, 64, 50*time.Microsecond)
	}
}
