package fulfillment

import "math"

const (
	// MaxEstimateMinutes caps estimatedTime and holdMinutes at one year.
	MaxEstimateMinutes = 365 * 24 * 60
	// MaxQueuePosition is the largest slot the store can hold.
	MaxQueuePosition = math.MaxInt32
)

func validMinutes(minutes int) bool {
	return minutes >= 0 && minutes <= MaxEstimateMinutes
}

// Queue adjustments are annotations. They never touch Status or Stage and are
// accepted on closed orders as well.

func (o *Order) SetHold(onHold bool) {
	o.IsOnHold = onHold
}

func (o *Order) SetHoldMinutes(minutes int) error {
	if !validMinutes(minutes) {
		return &FieldError{Field: FieldHoldMinutes, Err: ErrInvalidEstimate}
	}
	o.HoldMinutes = minutes
	return nil
}

// SetHoldWithMinutes is the combined console control: any positive hold puts the order on hold.
func (o *Order) SetHoldWithMinutes(minutes int) error {
	if err := o.SetHoldMinutes(minutes); err != nil {
		return err
	}
	o.IsOnHold = minutes > 0
	return nil
}

// SetQueuePosition sets the informational queue slot. nil clears it.
func (o *Order) SetQueuePosition(pos *int) error {
	if pos == nil {
		o.QueuePosition = nil
		return nil
	}
	if *pos < 1 || *pos > MaxQueuePosition {
		return &FieldError{Field: FieldQueuePosition, Err: ErrInvalidQueuePosition}
	}
	p := *pos
	o.QueuePosition = &p
	return nil
}

func (o *Order) SetEstimatedTime(minutes int) error {
	if !validMinutes(minutes) {
		return &FieldError{Field: FieldEstimatedTime, Err: ErrInvalidEstimate}
	}
	o.EstimatedTime = minutes
	return nil
}

func (o *Order) SetAssignee(assignee string) {
	o.AssignedTo = assignee
}

func (o *Order) SetAdminNotes(notes string) {
	o.AdminNotes = notes
}
