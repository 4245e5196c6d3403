package fulfillment

import (
	"math"
	"time"
)

// ETA is the live countdown view of an order at a given instant. It is never stored.
type ETA struct {
	Deadline         time.Time `json:"deadline"`
	ElapsedMinutes   int       `json:"elapsedMinutes"`
	RemainingMillis  int64     `json:"remainingMillis"`
	RemainingMinutes int       `json:"remainingMinutes"`
	RemainingSeconds int       `json:"remainingSeconds"`
	ProgressPercent  int       `json:"progressPercent"`
	HoldBadgeMinutes int       `json:"holdBadgeMinutes"`
}

// Estimate computes the countdown for an order created at createdAt with a budget of
// estimatedTime minutes. holdMinutes is reported separately and does not move the deadline.
// A clock behind createdAt is treated as zero elapsed time.
func Estimate(createdAt time.Time, estimatedTime, holdMinutes int, now time.Time) (ETA, error) {
	if !validMinutes(estimatedTime) {
		return ETA{}, &FieldError{Field: FieldEstimatedTime, Err: ErrInvalidEstimate}
	}
	if !validMinutes(holdMinutes) {
		return ETA{}, &FieldError{Field: FieldHoldMinutes, Err: ErrInvalidEstimate}
	}

	budget := time.Duration(estimatedTime) * time.Minute
	elapsed := now.Sub(createdAt)
	if elapsed < 0 {
		elapsed = 0
	}

	remaining := budget - elapsed
	if remaining < 0 {
		remaining = 0
	}
	remainingMillis := remaining.Milliseconds()
	elapsedMinutes := int(elapsed / time.Minute)

	progress := 100
	if estimatedTime > 0 {
		progress = int(math.Round(float64(elapsedMinutes) / float64(estimatedTime) * 100))
		if progress > 100 {
			progress = 100
		}
	}

	return ETA{
		Deadline:         createdAt.Add(budget),
		ElapsedMinutes:   elapsedMinutes,
		RemainingMillis:  remainingMillis,
		RemainingMinutes: int(remainingMillis / 60000),
		RemainingSeconds: int(remainingMillis % 60000 / 1000),
		ProgressPercent:  progress,
		HoldBadgeMinutes: holdMinutes,
	}, nil
}

// Estimate returns nil for closed orders: they have no countdown.
func (o *Order) Estimate(now time.Time) (*ETA, error) {
	if !o.IsActive() {
		return nil, nil
	}
	eta, err := Estimate(o.CreatedAt, o.EstimatedTime, o.HoldMinutes, now)
	if err != nil {
		return nil, err
	}
	return &eta, nil
}
