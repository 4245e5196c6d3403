package fulfillment

// SetStatus moves the order to any status while it is still open.
// There is no ordering between statuses; staff may jump or roll back.
func (o *Order) SetStatus(s Status) error {
	if o.Status.IsTerminal() {
		return ErrOrderClosed
	}
	parsed, err := ParseStatus(string(s))
	if err != nil {
		return err
	}
	o.Status = parsed
	return nil
}

// SetStage moves the physical stage. Reaching DELIVERED leaves Status untouched.
func (o *Order) SetStage(s Stage) error {
	if o.Status.IsTerminal() {
		return ErrOrderClosed
	}
	parsed, err := ParseStage(string(s))
	if err != nil {
		return err
	}
	o.Stage = parsed
	return nil
}
