package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// Resume scan instrumentation. Counters are monotonic; the histogram tracks
// end-to-end scan latency including object storage and text extraction.
var (
	scanStarted   counter
	scanCompleted counter
	scanFailed    counter

	scanDurationMs = newHistogram(10, 25, 50, 100, 250, 500, 1000, 2000, 5000)
)

func IncScanStarted()   { scanStarted.inc() }
func IncScanCompleted() { scanCompleted.inc() }
func IncScanFailed()    { scanFailed.inc() }

// ObserveScanDurationMs records one scan latency sample.
func ObserveScanDurationMs(ms float64) {
	if ms < 0 {
		ms = 0
	}
	scanDurationMs.observe(ms)
}

// NowMillis is a wall-clock sample in milliseconds for duration math.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / 1e6
}

// Handler serves the Prometheus text exposition.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render produces the full exposition for every registered metric.
func Render() string {
	var buf bytes.Buffer
	scanStarted.write(&buf, "resume_scan_started_total", "Resume scans started")
	scanCompleted.write(&buf, "resume_scan_completed_total", "Resume scans finished successfully")
	scanFailed.write(&buf, "resume_scan_failed_total", "Resume scans that returned an error")
	scanDurationMs.write(&buf, "resume_scan_duration_ms", "Resume scan latency in milliseconds")
	return buf.String()
}

type counter struct {
	v atomic.Uint64
}

func (c *counter) inc() { c.v.Add(1) }

func (c *counter) write(buf *bytes.Buffer, name, help string) {
	fmt.Fprintf(buf, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", name, help, name, name, c.v.Load())
}

// histogram keeps one count per bucket; cumulative sums are computed at
// render time, as the exposition format requires.
type histogram struct {
	mu     sync.Mutex
	bounds []float64
	counts []uint64
	sum    float64
	total  uint64
}

func newHistogram(bounds ...float64) *histogram {
	sort.Float64s(bounds)
	return &histogram{
		bounds: bounds,
		counts: make([]uint64, len(bounds)),
	}
}

func (h *histogram) observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.total++
	h.sum += v
	for i, bound := range h.bounds {
		if v <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) write(buf *bytes.Buffer, name, help string) {
	h.mu.Lock()
	bounds := append([]float64(nil), h.bounds...)
	counts := append([]uint64(nil), h.counts...)
	sum, total := h.sum, h.total
	h.mu.Unlock()

	fmt.Fprintf(buf, "# HELP %s %s\n# TYPE %s histogram\n", name, help, name)
	var cumulative uint64
	for i, bound := range bounds {
		cumulative += counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=%q} %d\n", name, formatBound(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, total)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatBound(sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, total)
}

func formatBound(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
