// Package scheduler evaluates stored scheduled lab actions and executes
// them when their schema.org Schedule says so: bring a lab up before a
// class, stop it between sessions, tear it down after the course.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"evalgo.org/emulium/models"
)

// Store is the slice of the storage layer the scheduler reads and
// writes.
type Store interface {
	GetActiveScheduledActions(ctx context.Context) ([]*models.ScheduledAction, error)
	UpdateScheduledAction(ctx context.Context, action *models.ScheduledAction) error
}

// Executor performs one scheduled lab action and returns its result.
type Executor interface {
	Execute(ctx context.Context, action *models.ScheduledAction) (*models.ActionResult, error)
}

// Scheduler periodically evaluates enabled scheduled actions and runs
// the ones that are due.
type Scheduler struct {
	store    Store
	executor Executor
	interval time.Duration
	ticker   *time.Ticker
	stop     chan bool
	running  bool
}

// New creates a scheduler. A non-positive interval falls back to 30s.
func New(store Store, executor Executor, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Scheduler{
		store:    store,
		executor: executor,
		interval: interval,
		stop:     make(chan bool),
	}
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running {
		log.Println("Scheduler already running")
		return
	}

	s.running = true
	s.ticker = time.NewTicker(s.interval)

	log.Printf("Scheduler started - evaluating schedules every %v", s.interval)

	go func() {
		// Evaluate immediately on start
		s.evaluateActions()

		for {
			select {
			case <-s.ticker.C:
				s.evaluateActions()
			case <-s.stop:
				s.ticker.Stop()
				s.running = false
				log.Println("Scheduler stopped")
				return
			}
		}
	}()
}

// Stop halts the scheduler
func (s *Scheduler) Stop() {
	if s.running {
		s.stop <- true
	}
}

// evaluateActions checks all enabled scheduled actions and executes the
// ones that are due. Executions run serially inside the loop goroutine;
// an action stuck in the active state is skipped until its status is
// cleared.
func (s *Scheduler) evaluateActions() {
	ctx := context.Background()

	actions, err := s.store.GetActiveScheduledActions(ctx)
	if err != nil {
		log.Printf("Error getting scheduled actions: %v", err)
		return
	}

	if len(actions) == 0 {
		return
	}

	now := time.Now()

	for _, action := range actions {
		// Skip if currently executing
		if action.ActionStatus == models.ActionStatusActive {
			continue
		}

		if !s.shouldExecute(action, now) {
			continue
		}

		log.Printf("Executing scheduled action: %s (type: %s)", action.Name, action.Type)
		s.execute(ctx, action)
	}
}

// execute runs one due action through the executor and records the
// outcome on the action document.
func (s *Scheduler) execute(ctx context.Context, action *models.ScheduledAction) {
	action.MarkStarted()
	if err := s.store.UpdateScheduledAction(ctx, action); err != nil {
		log.Printf("Error updating action %s: %v", action.ID, err)
		return
	}

	result, err := s.executor.Execute(ctx, action)
	if err != nil {
		log.Printf("Scheduled action %s failed: %v", action.ID, err)
		action.MarkFailed(&models.ActionError{
			Type:        "Thing",
			Name:        "execution failed",
			Description: err.Error(),
			Timestamp:   time.Now().UTC(),
		})
	} else {
		action.MarkCompleted(result)
	}

	// A repeat budget counts down on every attempt; exhausting it
	// disables the action.
	if action.Schedule != nil && action.Schedule.RepeatCount != nil {
		remaining := *action.Schedule.RepeatCount - 1
		action.Schedule.RepeatCount = &remaining
		if remaining <= 0 {
			action.Enabled = false
		}
	}

	if err := s.store.UpdateScheduledAction(ctx, action); err != nil {
		log.Printf("Error updating action %s: %v", action.ID, err)
	}
}

// shouldExecute determines if an action should execute at the given time
func (s *Scheduler) shouldExecute(action *models.ScheduledAction, now time.Time) bool {
	schedule := action.Schedule
	if schedule == nil {
		return false
	}

	// Check if schedule has ended
	if schedule.EndDate != nil && now.After(*schedule.EndDate) {
		return false
	}

	// Check if schedule hasn't started yet
	if schedule.StartDate != nil && now.Before(*schedule.StartDate) {
		return false
	}

	// Check if repeat count has been reached
	if schedule.RepeatCount != nil && *schedule.RepeatCount <= 0 {
		return false
	}

	// Check except dates
	if s.isExceptDate(now, schedule.ExceptDate) {
		return false
	}

	// Get timezone
	loc, err := time.LoadLocation(schedule.ScheduleTimezone)
	if err != nil {
		loc = time.UTC
	}
	now = now.In(loc)

	// Check by day, month, monthday constraints
	if !s.matchesDayConstraints(now, schedule) {
		return false
	}

	// Determine last execution time
	lastExecution := action.StartTime
	if lastExecution == nil {
		// Never executed before - check if we should execute now
		return s.shouldExecuteFirstTime(action, now)
	}

	// Calculate next execution time based on repeat frequency
	nextExecution := s.calculateNextExecution(*lastExecution, schedule)
	if nextExecution == nil {
		return false
	}

	// Execute if current time is at or past next execution time
	return now.After(*nextExecution) || now.Equal(*nextExecution)
}

// shouldExecuteFirstTime determines if an action should execute for the first time
func (s *Scheduler) shouldExecuteFirstTime(action *models.ScheduledAction, now time.Time) bool {
	schedule := action.Schedule

	// If there's a start date, check if we've passed it
	if schedule.StartDate != nil {
		if now.Before(*schedule.StartDate) {
			return false
		}
		// If we're past the start date, execute now
		return true
	}

	// No start date - execute now
	return true
}

// calculateNextExecution calculates when the action should next execute
func (s *Scheduler) calculateNextExecution(lastExecution time.Time, schedule *models.Schedule) *time.Time {
	duration, err := parseISO8601Duration(schedule.RepeatFrequency)
	if err != nil {
		log.Printf("Error parsing repeat frequency %q: %v", schedule.RepeatFrequency, err)
		return nil
	}

	next := lastExecution.Add(duration)
	return &next
}

// parseISO8601Duration parses ISO 8601 duration strings
// Examples: PT5M (5 minutes), PT1H (1 hour), P1D (1 day), P1W (1 week)
func parseISO8601Duration(duration string) (time.Duration, error) {
	if duration == "" {
		return 0, fmt.Errorf("empty duration")
	}

	// Simple parser for common cases
	// Full ISO 8601 parser would be more complex
	switch {
	case strings.HasPrefix(duration, "PT"):
		// Time duration
		timepart := duration[2:]
		if strings.HasSuffix(timepart, "S") {
			// Seconds
			var seconds int
			fmt.Sscanf(timepart, "%dS", &seconds)
			return time.Duration(seconds) * time.Second, nil
		} else if strings.HasSuffix(timepart, "M") {
			// Minutes
			var minutes int
			fmt.Sscanf(timepart, "%dM", &minutes)
			return time.Duration(minutes) * time.Minute, nil
		} else if strings.HasSuffix(timepart, "H") {
			// Hours
			var hours int
			fmt.Sscanf(timepart, "%dH", &hours)
			return time.Duration(hours) * time.Hour, nil
		}
	case strings.HasPrefix(duration, "P"):
		// Date duration
		datepart := duration[1:]
		if strings.HasSuffix(datepart, "D") {
			// Days
			var days int
			fmt.Sscanf(datepart, "%dD", &days)
			return time.Duration(days) * 24 * time.Hour, nil
		} else if strings.HasSuffix(datepart, "W") {
			// Weeks
			var weeks int
			fmt.Sscanf(datepart, "%dW", &weeks)
			return time.Duration(weeks) * 7 * 24 * time.Hour, nil
		} else if strings.HasSuffix(datepart, "M") {
			// Months (approximate - 30 days)
			var months int
			fmt.Sscanf(datepart, "%dM", &months)
			return time.Duration(months) * 30 * 24 * time.Hour, nil
		}
	}

	return 0, fmt.Errorf("unsupported duration format: %s", duration)
}

// matchesDayConstraints checks if the given time matches day/month constraints
func (s *Scheduler) matchesDayConstraints(now time.Time, schedule *models.Schedule) bool {
	// Check by month
	if len(schedule.ByMonth) > 0 {
		month := int(now.Month())
		found := false
		for _, m := range schedule.ByMonth {
			if m == month {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// Check by month day
	if len(schedule.ByMonthDay) > 0 {
		day := now.Day()
		found := false
		for _, d := range schedule.ByMonthDay {
			if d == day {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// Check by weekday
	if len(schedule.ByDay) > 0 {
		weekday := now.Weekday().String()
		found := false
		for _, d := range schedule.ByDay {
			if strings.EqualFold(d, weekday) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// isExceptDate checks if the given date is in the except list
func (s *Scheduler) isExceptDate(now time.Time, exceptDates []string) bool {
	dateStr := now.Format("2006-01-02")
	for _, except := range exceptDates {
		if strings.HasPrefix(except, dateStr) {
			return true
		}
	}
	return false
}
