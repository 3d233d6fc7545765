package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"winsched"
)

var (
	// Arguments
	configFile  = flag.String("config", "", "path to a YAML file of tasks to register; overrides the single-task flags")
	name        = flag.String("name", "", "task name")
	executor    = flag.String("executor", "", "program the task launches")
	filePath    = flag.String("filepath", "", "argument string passed to the program")
	trigger     = flag.String("trigger", "Once", fmt.Sprintf("trigger kind (%s)", strings.Join(winsched.TriggerKinds(), ", ")))
	eventID     = flag.String("event-id", "", "parent task name for Event triggers")
	startDate   = flag.String("start-date", "", "start date; defaults to today")
	startTime   = flag.String("start-time", "", "start time, e.g. 22:00")
	endDate     = flag.String("end-date", "", "end date; only used together with -end-time")
	endTime     = flag.String("end-time", "", "end time; only used together with -end-date")
	location    = flag.String("location", winsched.DefaultFolder, "scheduler folder to register into")
	description = flag.String("description", "", "task description")
)

func main() {
	flag.Parse()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	var requests []winsched.TaskRequest
	if *configFile != "" {
		cfg, err := winsched.ParseConfig(*configFile)
		if err != nil {
			logger.Fatal().Err(err).Str("config", *configFile).Msg("failed to parse config file")
		}
		requests = cfg.Requests()
		if len(requests) == 0 {
			logger.Fatal().Str("config", *configFile).Msg("config file defines no tasks")
		}
	} else {
		requests = []winsched.TaskRequest{{
			Name:        *name,
			Executor:    *executor,
			FilePath:    *filePath,
			TriggerType: winsched.TriggerKind(*trigger),
			EventID:     *eventID,
			StartDate:   *startDate,
			StartTime:   *startTime,
			EndDate:     *endDate,
			EndTime:     *endTime,
			Location:    *location,
			Description: *description,
		}}
	}

	client, err := winsched.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to task scheduler")
	}
	defer client.Close()

	failed := 0
	for _, req := range requests {
		if err := client.RegisterTask(req); err != nil {
			logger.Error().Err(err).Str("task", req.Name).Msg("registration failed")
			failed++
			continue
		}
		folder := req.Location
		if folder == "" {
			folder = winsched.DefaultFolder
		}
		logger.Info().Str("task", req.Name).Str("folder", folder).Msg("task registered")
	}
	if failed > 0 {
		logger.Error().Int("failed", failed).Int("total", len(requests)).Msg("some registrations failed")
		os.Exit(1)
	}
}
