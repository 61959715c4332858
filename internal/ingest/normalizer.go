package ingest

import (
	"encoding/json"

	"github.com/blaisecz/sleep-sync/internal/domain"
)

// Diagnostic records one skipped sample and why it was skipped.
type Diagnostic struct {
	Reason string          `json:"reason"`
	Sample json.RawMessage `json:"sample"`
}

// Result is the normalizer output: one summary per resolved sleep night
// plus diagnostics for every sample that could not be used.
type Result struct {
	Nights      []domain.NightSummary
	Diagnostics []Diagnostic
}

// Normalize reduces a sleep_analysis sample batch into night summaries.
// The payload format (raw segments vs aggregated nights) is detected once
// from the first decodable sample and applied to the whole batch; mixed
// batches are not supported. Pure function: no side effects beyond the
// returned value.
func Normalize(samples []json.RawMessage, cutoffHour int) Result {
	var res Result
	if len(samples) == 0 {
		return res
	}

	decoded := make([]sample, len(samples))
	firstValid := -1
	for i, raw := range samples {
		if err := json.Unmarshal(raw, &decoded[i]); err != nil {
			decoded[i] = sample{}
			continue
		}
		if firstValid < 0 {
			firstValid = i
		}
	}
	if firstValid < 0 {
		for _, raw := range samples {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Reason: "undecodable sample", Sample: raw})
		}
		return res
	}

	if decoded[firstValid].isAggregated() {
		return normalizeAggregated(samples, decoded)
	}
	return normalizeRaw(samples, decoded, cutoffHour)
}

// normalizeRaw parses per-segment samples, groups them into nights, and
// aggregates each group. Samples with unparseable timestamps are recorded
// as diagnostics and excluded from grouping.
func normalizeRaw(raw []json.RawMessage, decoded []sample, cutoffHour int) Result {
	var res Result
	var segments []domain.RawSegment

	for i, s := range decoded {
		start, okStart := parseExportTime(s.StartDate)
		end, okEnd := parseExportTime(s.EndDate)
		if !okStart || !okEnd {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Reason: "unparseable segment timestamps", Sample: raw[i]})
			continue
		}
		if s.Value == "" {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Reason: "missing stage label", Sample: raw[i]})
			continue
		}
		segments = append(segments, domain.RawSegment{
			Stage:           domain.StageLabel(s.Value),
			StartAt:         start,
			EndAt:           end,
			DurationSeconds: float64(s.Qty) * 3600,
		})
	}

	groups := GroupSegments(segments, cutoffHour)
	for _, date := range sortedNightKeys(groups) {
		if night, ok := AggregateNight(date, groups[date]); ok {
			res.Nights = append(res.Nights, night)
		}
	}
	return res
}

// normalizeAggregated turns pre-aggregated per-night samples into night
// summaries. Grouping is a no-op here since each sample carries its date.
// Hour fields tolerate string encoding and garbage (treated as zero);
// samples missing date, sleepStart, or sleepEnd become diagnostics.
func normalizeAggregated(raw []json.RawMessage, decoded []sample) Result {
	var res Result

	for i, s := range decoded {
		start, okStart := parseExportTime(s.SleepStart)
		end, okEnd := parseExportTime(s.SleepEnd)
		date, okDate := parseExportTime(s.Date)
		if !okDate || !okStart || !okEnd {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Reason: "missing date or sleep span", Sample: raw[i]})
			continue
		}

		stages := domain.StageBreakdown{
			AwakeMinutes: s.Awake.Minutes(),
			RemMinutes:   s.Rem.Minutes(),
			CoreMinutes:  s.Core.Minutes(),
			DeepMinutes:  s.Deep.Minutes(),
			InBedMinutes: s.InBed.Minutes(),
		}

		// Some exports carry only a total (or generic "asleep" hours)
		// without stage detail; fold that into core. When stage detail
		// exists the total is their sum, keeping the stage invariant.
		staged := stages.RemMinutes + stages.CoreMinutes + stages.DeepMinutes
		if staged == 0 {
			total := s.TotalSleep.Minutes()
			if total == 0 {
				total = s.Asleep.Minutes()
			}
			stages.CoreMinutes = total
			stages.TotalSleepMinutes = total
		} else {
			stages.TotalSleepMinutes = staged
		}

		if stages.InBedMinutes < stages.TotalSleepMinutes {
			stages.InBedMinutes = stages.TotalSleepMinutes + stages.AwakeMinutes
		}

		interruptions := domain.InterruptionSummary{TotalMinutes: stages.AwakeMinutes}
		if stages.AwakeMinutes > 0 {
			// The aggregated format reports awake time without discrete
			// segments; count it as a single interruption block.
			interruptions.Count = 1
		}

		res.Nights = append(res.Nights, domain.NightSummary{
			Date:          date.Format(domain.SleepDateFormat),
			SleepStart:    start,
			SleepEnd:      end,
			Stages:        stages,
			Interruptions: interruptions,
		})
	}
	return res
}
