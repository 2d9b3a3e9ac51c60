package models

import "time"

// ScheduledAction is a schema.org Action with a Schedule: bring a lab up
// before a class, stop it between sessions, tear it down after the course.
// The scheduler evaluates enabled actions and executes the matching scenario
// operation against the configured GNS3 server.
type ScheduledAction struct {
	Context string `json:"@context" couchdb:"@context"`
	Type    string `json:"@type" couchdb:"@type"`
	ID      string `json:"@id" couchdb:"_id"`
	Rev     string `json:"_rev,omitempty" couchdb:"_rev"`

	Name         string `json:"name" validate:"required"`
	Description  string `json:"description,omitempty"`
	ActionStatus string `json:"actionStatus"`

	// Object is the action target, normally a stored scenario.
	Object *ActionObject `json:"object" validate:"required"`

	// Instrument carries execution options: gns3_url, project override,
	// start_nodes, run_scripts.
	Instrument map[string]interface{} `json:"instrument,omitempty"`

	Result *ActionResult `json:"result,omitempty"`
	Error  *ActionError  `json:"error,omitempty"`

	// Schedule says when and how often to execute.
	Schedule *Schedule `json:"schedule" validate:"required"`

	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Schedule follows schema.org/Schedule. RepeatFrequency is an ISO 8601
// duration (PT30M, P1D); calendar constraints narrow when it may fire.
type Schedule struct {
	Type             string     `json:"@type"`
	RepeatFrequency  string     `json:"repeatFrequency"`
	RepeatCount      *int       `json:"repeatCount,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	ScheduleTimezone string     `json:"scheduleTimezone,omitempty"`
	ByDay            []string   `json:"byDay,omitempty"`
	ByMonth          []int      `json:"byMonth,omitempty"`
	ByMonthDay       []int      `json:"byMonthDay,omitempty"`
	ExceptDate       []string   `json:"exceptDate,omitempty"`
}

// ActionObject references the scenario (or project) the action operates on.
type ActionObject struct {
	Type string `json:"@type"` // "Scenario" or "Project"
	ID   string `json:"@id,omitempty"`
	Name string `json:"name,omitempty"`
}

// ActionResult is the outcome of the last execution.
type ActionResult struct {
	Type        string                 `json:"@type"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Value       map[string]interface{} `json:"value,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
	Duration    int64                  `json:"duration"` // milliseconds
}

// ActionError is the last execution failure.
type ActionError struct {
	Type        string    `json:"@type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Action status constants (schema.org ActionStatusType).
const (
	ActionStatusPotential = "PotentialActionStatus"
	ActionStatusActive    = "ActiveActionStatus"
	ActionStatusCompleted = "CompletedActionStatus"
	ActionStatusFailed    = "FailedActionStatus"
)

// Action types mapped onto schema.org Action subtypes.
const (
	ActionTypeDeploy   = "ActivateAction"   // deploy the scenario
	ActionTypeStop     = "DeactivateAction" // stop all project nodes
	ActionTypeTeardown = "DeleteAction"     // delete all project nodes
)

// NewScheduledAction creates an enabled action in the potential state.
func NewScheduledAction(actionType, name string, object *ActionObject, schedule *Schedule) *ScheduledAction {
	now := time.Now().UTC()
	return &ScheduledAction{
		Context:      "https://schema.org",
		Type:         actionType,
		ID:           GenerateID("action"),
		Name:         name,
		ActionStatus: ActionStatusPotential,
		Object:       object,
		Schedule:     schedule,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsActive reports whether the action is currently executing.
func (a *ScheduledAction) IsActive() bool {
	return a.Enabled && a.ActionStatus == ActionStatusActive
}

// MarkStarted records the beginning of an execution.
func (a *ScheduledAction) MarkStarted() {
	now := time.Now().UTC()
	a.StartTime = &now
	a.ActionStatus = ActionStatusActive
	a.UpdatedAt = now
}

// MarkCompleted records a successful execution.
func (a *ScheduledAction) MarkCompleted(result *ActionResult) {
	now := time.Now().UTC()
	a.EndTime = &now
	a.Result = result
	a.Error = nil
	a.ActionStatus = ActionStatusCompleted
	a.UpdatedAt = now
}

// MarkFailed records a failed execution.
func (a *ScheduledAction) MarkFailed(err *ActionError) {
	now := time.Now().UTC()
	a.EndTime = &now
	a.Error = err
	a.ActionStatus = ActionStatusFailed
	a.UpdatedAt = now
}

// InstrumentString reads a string option from Instrument.
func (a *ScheduledAction) InstrumentString(key string) string {
	if a.Instrument == nil {
		return ""
	}
	if v, ok := a.Instrument[key].(string); ok {
		return v
	}
	return ""
}

// InstrumentBool reads a boolean option from Instrument, with a default.
func (a *ScheduledAction) InstrumentBool(key string, def bool) bool {
	if a.Instrument == nil {
		return def
	}
	if v, ok := a.Instrument[key].(bool); ok {
		return v
	}
	return def
}
