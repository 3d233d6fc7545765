// Package winsched registers scheduled tasks with the Windows Task Scheduler
// over COM (Schedule.Service). It translates a small set of human-friendly
// parameters into a single create-or-replace registration call; scheduling,
// triggering and persistence stay entirely inside the scheduler itself.
package winsched

import (
	"fmt"
	"strings"
	"time"
)

// DefaultFolder is the scheduler folder tasks land in when no location is given.
const DefaultFolder = `\Scheduler`

// TriggerKind is a symbolic trigger name accepted in a TaskRequest.
type TriggerKind string

const (
	TriggerEvent          TriggerKind = "Event"
	TriggerOnce           TriggerKind = "Once"
	TriggerDaily          TriggerKind = "Daily"
	TriggerWeekly         TriggerKind = "Weekly"
	TriggerMonthly        TriggerKind = "Monthly"
	TriggerMonthlyDay     TriggerKind = "MonthlyDay"
	TriggerOnTaskCreation TriggerKind = "OnTaskCreation"
)

// TASK_TRIGGER_TYPE2 values from the Task Scheduler COM interface.
const (
	taskTriggerEvent        = 0
	taskTriggerTime         = 1
	taskTriggerDaily        = 2
	taskTriggerWeekly       = 3
	taskTriggerMonthly      = 4
	taskTriggerMonthlyDOW   = 5
	taskTriggerRegistration = 7
)

var triggerCodes = map[TriggerKind]int{
	TriggerEvent:          taskTriggerEvent,
	TriggerOnce:           taskTriggerTime,
	TriggerDaily:          taskTriggerDaily,
	TriggerWeekly:         taskTriggerWeekly,
	TriggerMonthly:        taskTriggerMonthly,
	TriggerMonthlyDay:     taskTriggerMonthlyDOW,
	TriggerOnTaskCreation: taskTriggerRegistration,
}

// TriggerKinds returns the recognized symbolic trigger names, for usage text.
func TriggerKinds() []string {
	names := []string{
		string(TriggerOnce),
		string(TriggerDaily),
		string(TriggerWeekly),
		string(TriggerMonthly),
		string(TriggerMonthlyDay),
		string(TriggerEvent),
		string(TriggerOnTaskCreation),
	}
	return names
}

// TaskRequest carries the parameters for one registration. FilePath is the
// argument string handed to the program, not the task's own path; the name is
// kept as-is because existing callers rely on it.
type TaskRequest struct {
	Name        string
	Executor    string
	FilePath    string
	TriggerType TriggerKind
	EventID     string
	StartDate   string
	StartTime   string
	EndDate     string
	EndTime     string
	Location    string
	Description string
}

// Definition is a fully validated task, ready to hand to the scheduler.
type Definition struct {
	Name          string
	Folder        string
	TriggerCode   int
	StartBoundary string
	EndBoundary   string
	Subscription  string
	ActionID      string
	Program       string
	Arguments     string
	Description   string
}

// BuildDefinition validates a request and resolves it into a Definition.
// It performs no I/O; any error it returns is a *ValidationError and means
// the scheduler was never going to be called for this request.
func BuildDefinition(req TaskRequest) (Definition, error) {
	if strings.TrimSpace(req.Name) == "" {
		return Definition{}, missingField("name")
	}
	if strings.TrimSpace(req.Executor) == "" {
		return Definition{}, missingField("executor")
	}
	if strings.TrimSpace(req.FilePath) == "" {
		return Definition{}, missingField("filepath")
	}
	code, ok := triggerCodes[req.TriggerType]
	if !ok {
		return Definition{}, unknownTrigger(string(req.TriggerType))
	}

	startDate := time.Now()
	if req.StartDate != "" {
		parsed, ok := parseDateTime(req.StartDate)
		if !ok {
			return Definition{}, invalidDate("start_date", req.StartDate)
		}
		startDate = parsed
	}

	var startBoundary string
	if req.StartTime != "" {
		startTime, ok := parseDateTime(req.StartTime)
		if !ok {
			return Definition{}, invalidTime("start_time", req.StartTime)
		}
		startBoundary = boundary(startDate, startTime)
	} else if req.TriggerType != TriggerEvent {
		// Every time-based trigger needs a start boundary.
		return Definition{}, missingField("start_time")
	}

	var endDate, endTime time.Time
	haveEndDate, haveEndTime := false, false
	if req.EndDate != "" {
		parsed, ok := parseDateTime(req.EndDate)
		if !ok {
			return Definition{}, invalidDate("end_date", req.EndDate)
		}
		endDate, haveEndDate = parsed, true
	}
	if req.EndTime != "" {
		parsed, ok := parseDateTime(req.EndTime)
		if !ok {
			return Definition{}, invalidTime("end_time", req.EndTime)
		}
		endTime, haveEndTime = parsed, true
	}
	// A lone end date or lone end time is dropped rather than guessed at;
	// the trigger then runs without an end boundary.
	var endBoundary string
	if haveEndDate && haveEndTime {
		endBoundary = boundary(endDate, endTime)
	}

	folder := req.Location
	if folder == "" {
		folder = DefaultFolder
	}

	var subscription string
	if req.TriggerType == TriggerEvent {
		if req.EventID == "" {
			return Definition{}, missingField("event_id")
		}
		sub, err := eventFilter(folder, req.EventID)
		if err != nil {
			return Definition{}, err
		}
		subscription = sub
	}

	return Definition{
		Name:          req.Name,
		Folder:        folder,
		TriggerCode:   code,
		StartBoundary: startBoundary,
		EndBoundary:   endBoundary,
		Subscription:  subscription,
		ActionID:      req.Name,
		Program:       req.Executor,
		Arguments:     req.FilePath,
		Description:   req.Description,
	}, nil
}

// boundary combines the date part of one value with the time part of another
// into the scheduler's YYYY-MM-DDThh:mm:ss boundary form.
func boundary(date, clock time.Time) string {
	return fmt.Sprintf("%sT%s", date.Format("2006-01-02"), clock.Format("15:04:05"))
}
