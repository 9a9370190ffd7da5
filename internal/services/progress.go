package services

import "time"

// Stages surfaced while a job is in flight. They are display labels only and
// are not tied to any real unit of work.
const (
	StageParsing    = "parsing"
	StageAnalyzing  = "analyzing"
	StageGenerating = "generating"
	StageFinalizing = "finalizing"
	StageComplete   = "complete"
	StageFailed     = "failed"
)

// ProgressEstimator maps an in-flight job onto a progress percentage and a
// stage label. The default is a clock-based placeholder; a real pipeline
// would report measured progress through the same interface.
type ProgressEstimator interface {
	Estimate(startedAt, now time.Time) (percentage int, stage string)
}

// TimeBasedEstimator spreads [MinPercent, MaxPercent) linearly over the
// completion threshold. Values are indicative only, not telemetry: the
// percentage says nothing about how much work was actually done. It is
// deterministic so repeated polls at the same instant agree.
type TimeBasedEstimator struct {
	Threshold  time.Duration
	MinPercent int
	MaxPercent int
}

func NewTimeBasedEstimator(threshold time.Duration) *TimeBasedEstimator {
	return &TimeBasedEstimator{
		Threshold:  threshold,
		MinPercent: 20,
		MaxPercent: 90,
	}
}

var inFlightStages = []string{StageParsing, StageAnalyzing, StageGenerating, StageFinalizing}

func (e *TimeBasedEstimator) Estimate(startedAt, now time.Time) (int, string) {
	elapsed := now.Sub(startedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	fraction := float64(elapsed) / float64(e.Threshold)
	if fraction >= 1 {
		fraction = 0.999
	}

	span := e.MaxPercent - e.MinPercent
	percentage := e.MinPercent + int(fraction*float64(span))
	if percentage >= e.MaxPercent {
		percentage = e.MaxPercent - 1
	}

	stageIdx := int(fraction * float64(len(inFlightStages)))
	if stageIdx >= len(inFlightStages) {
		stageIdx = len(inFlightStages) - 1
	}

	return percentage, inFlightStages[stageIdx]
}
