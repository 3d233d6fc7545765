package winsched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// baseRequest returns a minimal valid Once request to mutate per test.
func baseRequest() TaskRequest {
	return TaskRequest{
		Name:        "teste",
		Executor:    "WINWORD.EXE",
		FilePath:    "teste.docx",
		TriggerType: TriggerOnce,
		StartTime:   "22:00",
	}
}

func requireValidationError(t *testing.T, err error, kind ErrorKind, field string) {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, kind, verr.Kind)
	assert.Equal(t, field, verr.Field)
}

func TestBuildDefinitionTriggerCodes(t *testing.T) {
	cases := []struct {
		kind TriggerKind
		code int
	}{
		{TriggerEvent, 0},
		{TriggerOnce, 1},
		{TriggerDaily, 2},
		{TriggerWeekly, 3},
		{TriggerMonthly, 4},
		{TriggerMonthlyDay, 5},
		{TriggerOnTaskCreation, 7},
	}
	for _, tc := range cases {
		req := baseRequest()
		req.TriggerType = tc.kind
		if tc.kind == TriggerEvent {
			req.EventID = "parent task"
		}
		def, err := BuildDefinition(req)
		require.NoError(t, err, "trigger kind %s", tc.kind)
		assert.Equal(t, tc.code, def.TriggerCode, "trigger kind %s", tc.kind)
	}
}

func TestBuildDefinitionUnknownTrigger(t *testing.T) {
	req := baseRequest()
	req.TriggerType = "Hourly"
	_, err := BuildDefinition(req)
	requireValidationError(t, err, ErrUnknownTriggerKind, "trigger_type")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Hourly", verr.Value)
}

func TestBuildDefinitionStartBoundaryDefaultsToToday(t *testing.T) {
	def, err := BuildDefinition(baseRequest())
	require.NoError(t, err)
	want := time.Now().Format("2006-01-02") + "T22:00:00"
	assert.Equal(t, want, def.StartBoundary)
	assert.Empty(t, def.EndBoundary)
}

func TestBuildDefinitionExplicitStartDate(t *testing.T) {
	for _, startDate := range []string{"2026-09-01", "09-01-2026", "09/01/26", "2026/09/01"} {
		req := baseRequest()
		req.StartDate = startDate
		req.StartTime = "10:30:45 PM"
		def, err := BuildDefinition(req)
		require.NoError(t, err, "start date %q", startDate)
		assert.Equal(t, "2026-09-01T22:30:45", def.StartBoundary, "start date %q", startDate)
	}
}

func TestBuildDefinitionInvalidDatesAndTimes(t *testing.T) {
	cases := []struct {
		mutate func(*TaskRequest)
		kind   ErrorKind
		field  string
	}{
		{func(r *TaskRequest) { r.StartDate = "yesterday" }, ErrInvalidDateFormat, "start_date"},
		{func(r *TaskRequest) { r.StartTime = "22h00" }, ErrInvalidTimeFormat, "start_time"},
		{func(r *TaskRequest) { r.EndDate = "30/08/2026" }, ErrInvalidDateFormat, "end_date"},
		{func(r *TaskRequest) { r.EndTime = "midnight" }, ErrInvalidTimeFormat, "end_time"},
	}
	for _, tc := range cases {
		req := baseRequest()
		tc.mutate(&req)
		_, err := BuildDefinition(req)
		requireValidationError(t, err, tc.kind, tc.field)
	}
}

func TestBuildDefinitionEndBoundaryNeedsBothParts(t *testing.T) {
	req := baseRequest()
	req.EndDate = "2026-09-01"
	def, err := BuildDefinition(req)
	require.NoError(t, err)
	assert.Empty(t, def.EndBoundary, "lone end date must be dropped")

	req = baseRequest()
	req.EndTime = "08:00"
	def, err = BuildDefinition(req)
	require.NoError(t, err)
	assert.Empty(t, def.EndBoundary, "lone end time must be dropped")

	req = baseRequest()
	req.EndDate = "2026-09-01"
	req.EndTime = "08:00"
	def, err = BuildDefinition(req)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01T08:00:00", def.EndBoundary)
}

func TestBuildDefinitionMissingStartTime(t *testing.T) {
	req := baseRequest()
	req.StartTime = ""
	_, err := BuildDefinition(req)
	requireValidationError(t, err, ErrMissingRequiredField, "start_time")

	// Event triggers fire off the parent task, not a clock; no boundary needed.
	req = baseRequest()
	req.TriggerType = TriggerEvent
	req.EventID = "parent task"
	req.StartTime = ""
	def, err := BuildDefinition(req)
	require.NoError(t, err)
	assert.Empty(t, def.StartBoundary)
}

func TestBuildDefinitionMissingEventID(t *testing.T) {
	req := baseRequest()
	req.TriggerType = TriggerEvent
	req.StartTime = ""
	_, err := BuildDefinition(req)
	requireValidationError(t, err, ErrMissingRequiredField, "event_id")
}

func TestBuildDefinitionRequiredFields(t *testing.T) {
	for _, tc := range []struct {
		mutate func(*TaskRequest)
		field  string
	}{
		{func(r *TaskRequest) { r.Name = "" }, "name"},
		{func(r *TaskRequest) { r.Executor = " " }, "executor"},
		{func(r *TaskRequest) { r.FilePath = "" }, "filepath"},
	} {
		req := baseRequest()
		tc.mutate(&req)
		_, err := BuildDefinition(req)
		requireValidationError(t, err, ErrMissingRequiredField, tc.field)
	}
}

func TestBuildDefinitionActionAndFolder(t *testing.T) {
	def, err := BuildDefinition(baseRequest())
	require.NoError(t, err)
	assert.Equal(t, `\Scheduler`, def.Folder)
	assert.Equal(t, "teste", def.ActionID)
	assert.Equal(t, "WINWORD.EXE", def.Program)
	assert.Equal(t, "teste.docx", def.Arguments)

	req := baseRequest()
	req.Location = `\Reports`
	req.Description = "opens the weekly report"
	def, err = BuildDefinition(req)
	require.NoError(t, err)
	assert.Equal(t, `\Reports`, def.Folder)
	assert.Equal(t, "opens the weekly report", def.Description)
}
