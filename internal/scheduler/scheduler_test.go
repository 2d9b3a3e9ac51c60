package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/emulium/models"
)

type fakeStore struct {
	actions []*models.ScheduledAction
	updates []*models.ScheduledAction
	err     error
}

func (f *fakeStore) GetActiveScheduledActions(ctx context.Context) ([]*models.ScheduledAction, error) {
	return f.actions, f.err
}

func (f *fakeStore) UpdateScheduledAction(ctx context.Context, action *models.ScheduledAction) error {
	f.updates = append(f.updates, action)
	return nil
}

type fakeExecutor struct {
	executed []*models.ScheduledAction
	result   *models.ActionResult
	err      error
}

func (f *fakeExecutor) Execute(ctx context.Context, action *models.ScheduledAction) (*models.ActionResult, error) {
	f.executed = append(f.executed, action)
	return f.result, f.err
}

func testAction(freq string) *models.ScheduledAction {
	return &models.ScheduledAction{
		Context:      "https://schema.org",
		Type:         models.ActionTypeDeploy,
		ID:           "action:test",
		Name:         "morning lab",
		ActionStatus: models.ActionStatusPotential,
		Object:       &models.ActionObject{Type: "Scenario", ID: "scenario:test"},
		Schedule:     &models.Schedule{Type: "Schedule", RepeatFrequency: freq},
		Enabled:      true,
	}
}

func TestParseISO8601Duration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"PT30S", 30 * time.Second},
		{"PT5M", 5 * time.Minute},
		{"PT1H", time.Hour},
		{"P1D", 24 * time.Hour},
		{"P1W", 7 * 24 * time.Hour},
		{"P1M", 30 * 24 * time.Hour},
	}

	for _, tt := range tests {
		got, err := parseISO8601Duration(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := parseISO8601Duration("")
	assert.Error(t, err)

	_, err = parseISO8601Duration("every morning")
	assert.Error(t, err)
}

func TestShouldExecuteFirstRun(t *testing.T) {
	s := New(nil, nil, 0)
	action := testAction("PT30M")

	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	assert.True(t, s.shouldExecute(action, now))
}

func TestShouldExecuteHonorsStartDate(t *testing.T) {
	s := New(nil, nil, 0)
	action := testAction("PT30M")
	start := time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC)
	action.Schedule.StartDate = &start

	assert.False(t, s.shouldExecute(action, start.Add(-time.Hour)))
	assert.True(t, s.shouldExecute(action, start.Add(time.Hour)))
}

func TestShouldExecuteHonorsEndDate(t *testing.T) {
	s := New(nil, nil, 0)
	action := testAction("PT30M")
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	action.Schedule.EndDate = &end

	assert.False(t, s.shouldExecute(action, end.Add(time.Hour)))
}

func TestShouldExecuteRepeatFrequency(t *testing.T) {
	s := New(nil, nil, 0)
	action := testAction("PT30M")
	last := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	action.StartTime = &last

	assert.False(t, s.shouldExecute(action, last.Add(10*time.Minute)))
	assert.True(t, s.shouldExecute(action, last.Add(31*time.Minute)))
}

func TestShouldExecuteByDay(t *testing.T) {
	s := New(nil, nil, 0)
	action := testAction("P1D")
	action.Schedule.ByDay = []string{"Monday", "Friday"}

	monday := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	assert.True(t, s.shouldExecute(action, monday))
	assert.False(t, s.shouldExecute(action, tuesday))
}

func TestShouldExecuteByMonthDay(t *testing.T) {
	s := New(nil, nil, 0)
	action := testAction("P1D")
	action.Schedule.ByMonthDay = []int{1, 15}

	assert.True(t, s.shouldExecute(action, time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)))
	assert.False(t, s.shouldExecute(action, time.Date(2025, 3, 16, 8, 0, 0, 0, time.UTC)))
}

func TestShouldExecuteExceptDate(t *testing.T) {
	s := New(nil, nil, 0)
	action := testAction("P1D")
	action.Schedule.ExceptDate = []string{"2025-03-03"}

	assert.False(t, s.shouldExecute(action, time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)))
	assert.True(t, s.shouldExecute(action, time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC)))
}

func TestShouldExecuteRepeatCountExhausted(t *testing.T) {
	s := New(nil, nil, 0)
	action := testAction("PT5M")
	zero := 0
	action.Schedule.RepeatCount = &zero

	assert.False(t, s.shouldExecute(action, time.Now()))
}

func TestEvaluateActionsExecutesDueAction(t *testing.T) {
	action := testAction("PT5M")
	store := &fakeStore{actions: []*models.ScheduledAction{action}}
	exec := &fakeExecutor{result: &models.ActionResult{Type: "Thing", Name: "deployment"}}

	s := New(store, exec, time.Minute)
	s.evaluateActions()

	require.Len(t, exec.executed, 1)
	assert.Equal(t, models.ActionStatusCompleted, action.ActionStatus)
	assert.NotNil(t, action.Result)
	assert.Nil(t, action.Error)
	// One update marks the start, one records the outcome.
	assert.Len(t, store.updates, 2)
}

func TestEvaluateActionsSkipsActiveAction(t *testing.T) {
	action := testAction("PT5M")
	action.ActionStatus = models.ActionStatusActive
	store := &fakeStore{actions: []*models.ScheduledAction{action}}
	exec := &fakeExecutor{}

	s := New(store, exec, time.Minute)
	s.evaluateActions()

	assert.Empty(t, exec.executed)
	assert.Empty(t, store.updates)
}

func TestEvaluateActionsRecordsFailure(t *testing.T) {
	action := testAction("PT5M")
	store := &fakeStore{actions: []*models.ScheduledAction{action}}
	exec := &fakeExecutor{err: errors.New("gns3 server unavailable")}

	s := New(store, exec, time.Minute)
	s.evaluateActions()

	assert.Equal(t, models.ActionStatusFailed, action.ActionStatus)
	require.NotNil(t, action.Error)
	assert.Contains(t, action.Error.Description, "unavailable")
}

func TestEvaluateActionsExhaustsRepeatBudget(t *testing.T) {
	action := testAction("PT5M")
	one := 1
	action.Schedule.RepeatCount = &one
	store := &fakeStore{actions: []*models.ScheduledAction{action}}
	exec := &fakeExecutor{result: &models.ActionResult{Type: "Thing", Name: "deployment"}}

	s := New(store, exec, time.Minute)
	s.evaluateActions()

	require.Len(t, exec.executed, 1)
	assert.Equal(t, 0, *action.Schedule.RepeatCount)
	assert.False(t, action.Enabled)
}
