package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry creates a registry with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves reg in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// PlayerMetrics records command traffic. It implements player.Recorder.
type PlayerMetrics struct {
	FramesSent     *prometheus.CounterVec // labels: op
	FrameBytesSent prometheus.Counter
	Errors         *prometheus.CounterVec // labels: op
	Settle         prometheus.Histogram
	TrackCountLast prometheus.Gauge
}

// NewPlayerMetrics registers and returns the player metrics.
func NewPlayerMetrics(reg prometheus.Registerer) *PlayerMetrics {
	m := &PlayerMetrics{
		FramesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wt2003s_frames_sent_total",
			Help: "Frames written to the device by command.",
		}, []string{"op"}),
		FrameBytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wt2003s_frame_bytes_sent_total",
			Help: "Total frame bytes written to the device.",
		}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wt2003s_errors_total",
			Help: "Failed commands by command.",
		}, []string{"op"}),
		Settle: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wt2003s_settle_seconds",
			Help:    "Time spent waiting for the device after each frame.",
			Buckets: []float64{0.05, 0.1, 0.2, 0.25, 0.5, 1},
		}),
		TrackCountLast: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wt2003s_track_count",
			Help: "Track count last reported by the device.",
		}),
	}
	reg.MustRegister(m.FramesSent, m.FrameBytesSent, m.Errors, m.Settle, m.TrackCountLast)
	return m
}

// FrameSent counts a written frame and its size.
func (m *PlayerMetrics) FrameSent(op string, size int) {
	m.FramesSent.WithLabelValues(op).Inc()
	m.FrameBytesSent.Add(float64(size))
}

// Settled observes one settle wait.
func (m *PlayerMetrics) Settled(d time.Duration) {
	m.Settle.Observe(d.Seconds())
}

// CommandFailed counts a failed command.
func (m *PlayerMetrics) CommandFailed(op string) {
	m.Errors.WithLabelValues(op).Inc()
}

// TrackCount stores the last reported track count.
func (m *PlayerMetrics) TrackCount(n uint16) {
	m.TrackCountLast.Set(float64(n))
}
