package fulfillment

import (
	"bytes"
	"encoding/json"
	"io"
	"time"
)

// NullableInt distinguishes an absent key from an explicit null in a JSON patch.
type NullableInt struct {
	Set   bool
	Value *int
}

func NullInt() NullableInt {
	return NullableInt{Set: true}
}

func SomeInt(v int) NullableInt {
	return NullableInt{Set: true, Value: &v}
}

func (n *NullableInt) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// DecodePatch reads one JSON patch object. Unknown keys are rejected so a
// misspelled field cannot turn into a silent no-op.
func DecodePatch(r io.Reader) (Patch, error) {
	var p Patch
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Patch{}, err
	}
	return p, nil
}

// Patch is a partial staff update. Only present keys are applied.
type Patch struct {
	Status        *string     `json:"status,omitempty"`
	Stage         *string     `json:"stage,omitempty"`
	AssignedTo    *string     `json:"assignedTo,omitempty"`
	AdminNotes    *string     `json:"adminNotes,omitempty"`
	EstimatedTime *int        `json:"estimatedTime,omitempty"`
	HoldMinutes   *int        `json:"holdMinutes,omitempty"`
	IsOnHold      *bool       `json:"isOnHold,omitempty"`
	QueuePosition NullableInt `json:"queuePosition"`
}

func (p Patch) IsEmpty() bool {
	return p.Status == nil && p.Stage == nil && p.AssignedTo == nil && p.AdminNotes == nil &&
		p.EstimatedTime == nil && p.HoldMinutes == nil && p.IsOnHold == nil && !p.QueuePosition.Set
}

// TouchesLifecycle reports whether the patch needs an open order.
func (p Patch) TouchesLifecycle() bool {
	return p.Status != nil || p.Stage != nil
}

type validatedPatch struct {
	status *Status
	stage  *Stage
}

// Validate checks every present field without looking at any order.
func (p Patch) Validate() error {
	_, err := p.validate()
	return err
}

func (p Patch) validate() (validatedPatch, error) {
	var v validatedPatch
	if p.Status != nil {
		s, err := ParseStatus(*p.Status)
		if err != nil {
			return v, err
		}
		v.status = &s
	}
	if p.Stage != nil {
		s, err := ParseStage(*p.Stage)
		if err != nil {
			return v, err
		}
		v.stage = &s
	}
	if p.EstimatedTime != nil && !validMinutes(*p.EstimatedTime) {
		return v, &FieldError{Field: FieldEstimatedTime, Err: ErrInvalidEstimate}
	}
	if p.HoldMinutes != nil && !validMinutes(*p.HoldMinutes) {
		return v, &FieldError{Field: FieldHoldMinutes, Err: ErrInvalidEstimate}
	}
	if p.QueuePosition.Set && p.QueuePosition.Value != nil && (*p.QueuePosition.Value < 1 || *p.QueuePosition.Value > MaxQueuePosition) {
		return v, &FieldError{Field: FieldQueuePosition, Err: ErrInvalidQueuePosition}
	}
	return v, nil
}

// Apply validates the whole patch and then applies it to o as one unit.
// On error o is left untouched. Values equal to the current ones produce no change,
// so re-applying a patch is a no-op. UpdatedAt moves only when something changed.
func Apply(o *Order, p Patch, now time.Time) (Changeset, error) {
	v, err := p.validate()
	if err != nil {
		return nil, err
	}
	if p.TouchesLifecycle() && o.Status.IsTerminal() {
		return nil, ErrOrderClosed
	}

	next := o.Clone()

	// Stage first: a patch that closes the order may still carry its final stage.
	if v.stage != nil {
		if err := next.SetStage(*v.stage); err != nil {
			return nil, err
		}
	}
	if v.status != nil {
		if err := next.SetStatus(*v.status); err != nil {
			return nil, err
		}
	}

	switch {
	case p.HoldMinutes != nil && p.IsOnHold == nil:
		if err := next.SetHoldWithMinutes(*p.HoldMinutes); err != nil {
			return nil, err
		}
	case p.HoldMinutes != nil:
		if err := next.SetHoldMinutes(*p.HoldMinutes); err != nil {
			return nil, err
		}
		next.SetHold(*p.IsOnHold)
	case p.IsOnHold != nil:
		next.SetHold(*p.IsOnHold)
	}

	if p.QueuePosition.Set {
		if err := next.SetQueuePosition(p.QueuePosition.Value); err != nil {
			return nil, err
		}
	}
	if p.EstimatedTime != nil {
		if err := next.SetEstimatedTime(*p.EstimatedTime); err != nil {
			return nil, err
		}
	}
	if p.AssignedTo != nil {
		next.SetAssignee(*p.AssignedTo)
	}
	if p.AdminNotes != nil {
		next.SetAdminNotes(*p.AdminNotes)
	}

	changes := Diff(o, next)
	if len(changes) == 0 {
		return nil, nil
	}
	next.UpdatedAt = now
	*o = *next
	return changes, nil
}
