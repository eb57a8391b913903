// Package metrics2 keeps counters in a Prometheus registry and writes them out
// in the node_exporter textfile format.
package metrics2

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.skia.org/minicalc/go/skerr"
	"go.skia.org/minicalc/go/sklog"
)

var (
	// invalidChar is used to force metric and tag names to conform to Prometheus's restrictions.
	invalidChar = regexp.MustCompile("([^a-zA-Z0-9_:])")
)

func clean(s string) string {
	return invalidChar.ReplaceAllLiteralString(s, "_")
}

// Counter is a metric which only moves by explicit Inc/Reset calls.
type Counter interface {
	Inc(i int64)
	Get() int64
	Reset()
}

// promCounter implements Counter on top of a Gauge, because the prometheus
// client lib doesn't support get on metric values.
type promCounter struct {
	i     int64
	gauge prometheus.Gauge
}

func (pc *promCounter) Get() int64 {
	return atomic.LoadInt64(&pc.i)
}

func (pc *promCounter) Inc(i int64) {
	pc.gauge.Set(float64(atomic.AddInt64(&pc.i, i)))
}

func (pc *promCounter) Reset() {
	atomic.StoreInt64(&pc.i, 0)
	pc.gauge.Set(0)
}

// Client hands out counters registered on its own registry, so that several
// clients (e.g. one per test) never collide.
type Client struct {
	registry *prometheus.Registry

	mtx       sync.Mutex
	gaugeVecs map[string]*prometheus.GaugeVec
	counters  map[string]*promCounter
}

// NewClient returns a Client with an empty registry.
func NewClient() *Client {
	return &Client{
		registry:  prometheus.NewRegistry(),
		gaugeVecs: map[string]*prometheus.GaugeVec{},
		counters:  map[string]*promCounter{},
	}
}

// commonGet returns the clean measurement name, the clean tags, the sorted tag
// keys, a key identifying the single metric and a key identifying the
// collection of metrics that share the measurement name and tag keys.
func commonGet(measurement string, tags ...map[string]string) (string, map[string]string, []string, string, string) {
	measurement = clean(measurement)

	cleanTags := map[string]string{}
	for _, t := range tags {
		for k, v := range t {
			cleanTags[clean(k)] = v
		}
	}
	keys := make([]string, 0, len(cleanTags))
	for k := range cleanTags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	gaugeKeySrc := []string{measurement}
	for _, key := range keys {
		gaugeKeySrc = append(gaugeKeySrc, key, cleanTags[key])
	}
	gaugeKey := strings.Join(gaugeKeySrc, "-")
	gaugeVecKey := fmt.Sprintf("%s %v", measurement, keys)
	return measurement, cleanTags, keys, gaugeKey, gaugeVecKey
}

// GetCounter returns the counter for the given name and tags, creating it on
// first use.
func (c *Client) GetCounter(name string, tags ...map[string]string) Counter {
	measurement, cleanTags, keys, gaugeKey, gaugeVecKey := commonGet(name, tags...)

	c.mtx.Lock()
	defer c.mtx.Unlock()
	if ret, ok := c.counters[gaugeKey]; ok {
		return ret
	}
	gaugeVec, ok := c.gaugeVecs[gaugeVecKey]
	if !ok {
		gaugeVec = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: measurement,
				Help: measurement,
			},
			keys,
		)
		if err := c.registry.Register(gaugeVec); err != nil {
			sklog.Fatalf("Failed to register %q: %s", measurement, err)
		}
		c.gaugeVecs[gaugeVecKey] = gaugeVec
	}
	gauge, err := gaugeVec.GetMetricWith(prometheus.Labels(cleanTags))
	if err != nil {
		sklog.Fatalf("Failed to get gauge: %s", err)
	}
	ret := &promCounter{gauge: gauge}
	c.counters[gaugeKey] = ret
	return ret
}

// WriteToTextfile writes every metric of the client to path in the text
// exposition format. The file is replaced atomically.
func (c *Client) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return skerr.Wrapf(err, "writing metrics to %s", path)
	}
	return nil
}
