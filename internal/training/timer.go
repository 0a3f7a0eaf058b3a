package training

// TimerState is the display state of a round countdown.
type TimerState string

const (
	TimerNormal   TimerState = "normal"
	TimerWarning  TimerState = "warning"
	TimerCritical TimerState = "critical"
)

const (
	timerCriticalSeconds = 3
	timerWarningSeconds  = 5
)

// CalculateTimerProgress returns the remaining time as a percentage of
// duration, or 0 when duration is not positive.
func CalculateTimerProgress(remaining, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return remaining / duration * 100
}

func TimerColor(remaining float64) TimerState {
	switch {
	case remaining <= timerCriticalSeconds:
		return TimerCritical
	case remaining <= timerWarningSeconds:
		return TimerWarning
	default:
		return TimerNormal
	}
}
