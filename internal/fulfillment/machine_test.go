package fulfillment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		parsed, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := ParseStatus(" confirmed ")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, parsed)

	_, err = ParseStatus("SHIPPED")
	assert.ErrorIs(t, err, ErrInvalidEnumValue)
	assert.Equal(t, FieldStatus, FieldOf(err))
	assert.Contains(t, err.Error(), "SHIPPED")
}

func TestParseStage(t *testing.T) {
	for _, s := range Stages() {
		parsed, err := ParseStage(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStage("")
	assert.ErrorIs(t, err, ErrInvalidEnumValue)
	assert.Equal(t, FieldStage, FieldOf(err))
}

func TestOrder_SetStatus(t *testing.T) {
	tests := []struct {
		name          string
		from          Status
		to            Status
		expectedErr   error
		expectedAfter Status
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed, expectedAfter: StatusConfirmed},
		{name: "jump straight to completed", from: StatusPending, to: StatusCompleted, expectedAfter: StatusCompleted},
		{name: "roll back to pending", from: StatusConfirmed, to: StatusPending, expectedAfter: StatusPending},
		{name: "cancel", from: StatusConfirmed, to: StatusCancelled, expectedAfter: StatusCancelled},
		{name: "completed is closed", from: StatusCompleted, to: StatusPending, expectedErr: ErrOrderClosed, expectedAfter: StatusCompleted},
		{name: "cancelled is closed", from: StatusCancelled, to: StatusCancelled, expectedErr: ErrOrderClosed, expectedAfter: StatusCancelled},
		{name: "unknown token", from: StatusPending, to: Status("LOST"), expectedErr: ErrInvalidEnumValue, expectedAfter: StatusPending},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := &Order{Status: tc.from, Stage: StageReceived}
			err := o.SetStatus(tc.to)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectedAfter, o.Status)
			assert.Equal(t, StageReceived, o.Stage)
		})
	}
}

func TestOrder_SetStage(t *testing.T) {
	t.Run("jumps are allowed", func(t *testing.T) {
		o := &Order{Status: StatusConfirmed, Stage: StageReceived}
		require.NoError(t, o.SetStage(StageOutDelivery))
		assert.Equal(t, StageOutDelivery, o.Stage)
		require.NoError(t, o.SetStage(StagePreparing))
		assert.Equal(t, StagePreparing, o.Stage)
	})

	t.Run("delivered does not complete the order", func(t *testing.T) {
		o := &Order{Status: StatusConfirmed, Stage: StageOutDelivery}
		require.NoError(t, o.SetStage(StageDelivered))
		assert.Equal(t, StageDelivered, o.Stage)
		assert.Equal(t, StatusConfirmed, o.Status)
	})

	t.Run("cancelled order rejects stage change", func(t *testing.T) {
		o := &Order{Status: StatusCancelled, Stage: StagePreparing}
		err := o.SetStage(StageDelivered)
		assert.ErrorIs(t, err, ErrOrderClosed)
		assert.Equal(t, StagePreparing, o.Stage)
	})

	t.Run("unknown stage", func(t *testing.T) {
		o := &Order{Status: StatusPending, Stage: StageReceived}
		err := o.SetStage(Stage("BAKING"))
		assert.ErrorIs(t, err, ErrInvalidEnumValue)
		assert.Equal(t, StageReceived, o.Stage)
	})
}

func TestOrder_QueueAdjustments(t *testing.T) {
	t.Run("combined hold control", func(t *testing.T) {
		o := &Order{Status: StatusConfirmed}
		require.NoError(t, o.SetHoldWithMinutes(10))
		assert.True(t, o.IsOnHold)
		assert.Equal(t, 10, o.HoldMinutes)

		require.NoError(t, o.SetHoldWithMinutes(0))
		assert.False(t, o.IsOnHold)
		assert.Equal(t, 0, o.HoldMinutes)
	})

	t.Run("flag and minutes are independent", func(t *testing.T) {
		o := &Order{Status: StatusConfirmed}
		o.SetHold(true)
		assert.True(t, o.IsOnHold)
		assert.Equal(t, 0, o.HoldMinutes)

		require.NoError(t, o.SetHoldMinutes(7))
		assert.True(t, o.IsOnHold)
		assert.Equal(t, 7, o.HoldMinutes)
	})

	t.Run("queue position", func(t *testing.T) {
		o := &Order{Status: StatusConfirmed}
		pos := 3
		require.NoError(t, o.SetQueuePosition(&pos))
		require.NotNil(t, o.QueuePosition)
		assert.Equal(t, 3, *o.QueuePosition)

		pos = 9
		assert.Equal(t, 3, *o.QueuePosition)

		zero := 0
		err := o.SetQueuePosition(&zero)
		assert.ErrorIs(t, err, ErrInvalidQueuePosition)
		assert.Equal(t, 3, *o.QueuePosition)

		require.NoError(t, o.SetQueuePosition(nil))
		assert.Nil(t, o.QueuePosition)
	})

	t.Run("negative values are rejected", func(t *testing.T) {
		o := &Order{Status: StatusConfirmed, EstimatedTime: 30, HoldMinutes: 5}
		assert.ErrorIs(t, o.SetEstimatedTime(-1), ErrInvalidEstimate)
		assert.ErrorIs(t, o.SetHoldMinutes(-1), ErrInvalidEstimate)
		assert.Equal(t, 30, o.EstimatedTime)
		assert.Equal(t, 5, o.HoldMinutes)
	})

	t.Run("closed orders accept annotations", func(t *testing.T) {
		o := &Order{Status: StatusCompleted}
		require.NoError(t, o.SetEstimatedTime(15))
		o.SetHold(true)
		assert.Equal(t, 15, o.EstimatedTime)
		assert.True(t, o.IsOnHold)
		assert.Equal(t, StatusCompleted, o.Status)
	})
}
