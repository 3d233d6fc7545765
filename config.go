package winsched

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML batch layout: a list of tasks to register plus defaults
// applied to tasks that leave the corresponding field empty.
type Config struct {
	Defaults struct {
		Location string `yaml:"location"`
	} `yaml:"defaults"`
	Tasks []TaskConfig `yaml:"tasks"`
}

// TaskConfig is one task entry in the config file. Fields mirror TaskRequest.
type TaskConfig struct {
	Name        string `yaml:"name"`
	Executor    string `yaml:"executor"`
	FilePath    string `yaml:"filepath"`
	Trigger     string `yaml:"trigger"`
	EventID     string `yaml:"event_id"`
	StartDate   string `yaml:"start_date"`
	StartTime   string `yaml:"start_time"`
	EndDate     string `yaml:"end_date"`
	EndTime     string `yaml:"end_time"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
}

// ParseConfig reads the YAML config file and unmarshalls into a Config struct
func ParseConfig(path string) (Config, error) {
	var c Config
	f, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err = yaml.Unmarshal(f, &c); err != nil {
		return c, err
	}
	return c, nil
}

// Requests expands the config into registration requests, filling in the
// configured default location where a task does not set its own. Validation
// happens later, per request, so one bad entry does not block the rest.
func (c Config) Requests() []TaskRequest {
	requests := make([]TaskRequest, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		location := t.Location
		if location == "" {
			location = c.Defaults.Location
		}
		requests = append(requests, TaskRequest{
			Name:        t.Name,
			Executor:    t.Executor,
			FilePath:    t.FilePath,
			TriggerType: TriggerKind(t.Trigger),
			EventID:     t.EventID,
			StartDate:   t.StartDate,
			StartTime:   t.StartTime,
			EndDate:     t.EndDate,
			EndTime:     t.EndTime,
			Location:    location,
			Description: t.Description,
		})
	}
	return requests
}
