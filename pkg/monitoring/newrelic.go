package monitoring

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// Config holds New Relic configuration
type Config struct {
	LicenseKey string
	AppName    string
	Enabled    bool
	LogLevel   string
}

// NewRelicApp wraps the New Relic application. The zero value and a nil
// pointer are both valid disabled instances.
type NewRelicApp struct {
	*newrelic.Application
	enabled bool
}

// New creates a new New Relic application
func New(cfg Config) (*NewRelicApp, error) {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return &NewRelicApp{nil, false}, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(true),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create New Relic application: %w", err)
	}

	return &NewRelicApp{app, true}, nil
}

// Disabled returns an instance that records nothing.
func Disabled() *NewRelicApp {
	return &NewRelicApp{nil, false}
}

// IsEnabled returns whether New Relic is enabled
func (nr *NewRelicApp) IsEnabled() bool {
	return nr != nil && nr.enabled && nr.Application != nil
}

// StartTransaction starts a transaction and stores it in the returned context
// so instrumented HTTP calls attach external segments to it. The returned
// transaction is nil when disabled; its methods are nil-safe.
func (nr *NewRelicApp) StartTransaction(ctx context.Context, name string) (context.Context, *newrelic.Transaction) {
	if !nr.IsEnabled() {
		return ctx, nil
	}
	txn := nr.Application.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), txn
}

// Transport wraps base so requests carrying a transaction in their context
// are recorded as external segments.
func (nr *NewRelicApp) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if !nr.IsEnabled() {
		return base
	}
	return newrelic.NewRoundTripper(base)
}

// RecordCustomEvent records a custom event
func (nr *NewRelicApp) RecordCustomEvent(eventType string, params map[string]interface{}) {
	if !nr.IsEnabled() {
		return
	}
	nr.Application.RecordCustomEvent(eventType, params)
}

// RecordCustomMetric records a custom metric
func (nr *NewRelicApp) RecordCustomMetric(name string, value float64) {
	if !nr.IsEnabled() {
		return
	}
	nr.Application.RecordCustomMetric(name, value)
}

// Shutdown gracefully shuts down the New Relic application
func (nr *NewRelicApp) Shutdown(timeout time.Duration) {
	if !nr.IsEnabled() {
		return
	}
	nr.Application.Shutdown(timeout)
}

// RecordScreenLoaded records how long a screen's batch took to settle
func (nr *NewRelicApp) RecordScreenLoaded(screen string, refresh bool, latency time.Duration) {
	nr.RecordCustomMetric(fmt.Sprintf("custom/screen/%s/load_ms", screen), float64(latency.Milliseconds()))
	nr.RecordCustomEvent("ScreenLoaded", map[string]interface{}{
		"screen":     screen,
		"refresh":    refresh,
		"latency_ms": latency.Milliseconds(),
	})
}

// RecordBatchFailed records a failed batch with the names of failing fetches
func (nr *NewRelicApp) RecordBatchFailed(screen string, failed []string) {
	nr.RecordCustomEvent("BatchFailed", map[string]interface{}{
		"screen": screen,
		"failed": fmt.Sprint(failed),
	})
}

// RecordSessionRoute records the outcome of the role router
func (nr *NewRelicApp) RecordSessionRoute(state string) {
	nr.RecordCustomMetric("custom/session/route/"+state, 1)
}
