package fulfillment

import "strings"

// Status is the commercial/administrative axis of an order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

var statuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// Stage is the physical progress axis of an order. It moves independently of Status.
type Stage string

const (
	StageReceived    Stage = "RECEIVED"
	StagePreparing   Stage = "PREPARING"
	StageReady       Stage = "READY"
	StageOutDelivery Stage = "OUT_DELIVERY"
	StageDelivered   Stage = "DELIVERED"
)

var stages = []Stage{StageReceived, StagePreparing, StageReady, StageOutDelivery, StageDelivered}

func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// ParseStatus accepts the canonical token in any letter case.
func ParseStatus(s string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range statuses {
		if st == candidate {
			return st, nil
		}
	}
	return "", &FieldError{Field: FieldStatus, Value: s, Err: ErrInvalidEnumValue}
}

func ParseStage(s string) (Stage, error) {
	candidate := Stage(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range stages {
		if st == candidate {
			return st, nil
		}
	}
	return "", &FieldError{Field: FieldStage, Value: s, Err: ErrInvalidEnumValue}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) String() string {
	return string(s)
}

func (s Stage) String() string {
	return string(s)
}
