// Package ingest turns wearable export payloads into scored-ready night
// summaries. It accepts two payload shapes under the sleep_analysis metric
// channel: raw per-segment stage samples and pre-aggregated per-night
// summaries. The shape is decided once per batch; individual bad samples
// become diagnostics instead of aborting the batch.
package ingest

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// SleepMetricName is the metric channel the webhook pipeline consumes.
const SleepMetricName = "sleep_analysis"

// ExportPayload is the webhook envelope: { data: { metrics: [...] } }.
type ExportPayload struct {
	Data struct {
		Metrics []MetricChannel `json:"metrics"`
	} `json:"data"`
}

// MetricChannel is one named metric stream inside the export.
type MetricChannel struct {
	Name    string            `json:"name"`
	Units   string            `json:"units"`
	Samples []json.RawMessage `json:"data"`
}

// SleepSamples returns the sample list of the sleep_analysis channel, or
// nil when the channel is absent.
func (p *ExportPayload) SleepSamples() []json.RawMessage {
	for _, m := range p.Data.Metrics {
		if m.Name == SleepMetricName {
			return m.Samples
		}
	}
	return nil
}

// FlexHours is an hour count that tolerates string encoding and garbage.
// "7.5", 7.5 and null all decode; non-numeric input decodes to zero.
type FlexHours float64

func (h *FlexHours) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*h = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		*h = 0
		return nil
	}
	*h = FlexHours(v)
	return nil
}

// Minutes converts the hour value to minutes.
func (h FlexHours) Minutes() float64 {
	return float64(h) * 60.0
}

// sample is the lenient union of both accepted payload shapes. Raw-format
// samples populate startDate/endDate/value; aggregated samples populate
// date/sleepStart/sleepEnd plus per-stage hour fields.
type sample struct {
	// Raw segment shape
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Value     string    `json:"value"`
	Qty       FlexHours `json:"qty"`

	// Aggregated night shape
	Date       string    `json:"date"`
	SleepStart string    `json:"sleepStart"`
	SleepEnd   string    `json:"sleepEnd"`
	TotalSleep FlexHours `json:"totalSleep"`
	Asleep     FlexHours `json:"asleep"`
	Awake      FlexHours `json:"awake"`
	Rem        FlexHours `json:"rem"`
	Core       FlexHours `json:"core"`
	Deep       FlexHours `json:"deep"`
	InBed      FlexHours `json:"inBed"`
}

// isAggregated reports whether the sample carries the per-night summary
// shape. Detection looks at the fields only the aggregated format has.
func (s *sample) isAggregated() bool {
	return s.SleepStart != "" || s.TotalSleep != 0 || (s.Date != "" && s.StartDate == "")
}

// exportTimeLayouts are the timestamp formats the exporter is known to emit.
var exportTimeLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseExportTime parses a timestamp in any accepted layout, keeping the
// embedded zone offset so local-hour grouping sees the wearer's clock.
func parseExportTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range exportTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
