package winsched

import (
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// Registration constants from the Task Scheduler COM interface.
const (
	// TASK_ACTION_EXEC - run a program
	taskActionExec = 0
	// TASK_CREATE_OR_UPDATE - always register, replacing an existing task of the same name
	taskCreateOrUpdate = 6
	// TASK_LOGON_NONE - no stored credentials needed to run or alter the task
	taskLogonNone = 0
)

// Client is a live connection to the local Task Scheduler service. Callers
// own its lifecycle: Connect it, use it, Close it. It is not safe for
// concurrent use; the scheduler itself arbitrates conflicting registrations.
type Client struct {
	service *ole.IDispatch
}

// Connect initializes COM and connects to Schedule.Service. Close must be
// called on the returned client to release the connection.
func Connect() (*Client, error) {
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		return nil, fmt.Errorf("failed to initialize COM: %v", err)
	}
	unknown, err := oleutil.CreateObject("Schedule.Service")
	if err != nil {
		ole.CoUninitialize()
		return nil, fmt.Errorf("failed to create Schedule.Service: %v", err)
	}
	defer unknown.Release()

	service, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		ole.CoUninitialize()
		return nil, fmt.Errorf("failed to get IDispatch for scheduler: %v", err)
	}
	if _, err = oleutil.CallMethod(service, "Connect"); err != nil {
		service.Release()
		ole.CoUninitialize()
		return nil, fmt.Errorf("failed to connect to task scheduler: %v", err)
	}
	return &Client{service: service}, nil
}

// Close releases the scheduler connection and uninitializes COM.
func (c *Client) Close() {
	if c.service != nil {
		c.service.Release()
		c.service = nil
		ole.CoUninitialize()
	}
}

// RegisterTask validates the request and registers it with the scheduler.
// Validation failures return a *ValidationError before any scheduler call;
// a task that already exists under the same name in the same folder is
// replaced.
func (c *Client) RegisterTask(req TaskRequest) error {
	def, err := BuildDefinition(req)
	if err != nil {
		return err
	}
	return c.register(def)
}

// register performs the single mutating scheduler call for a resolved
// definition: one trigger, one exec action, one RegisterTaskDefinition.
func (c *Client) register(def Definition) error {
	folderRaw, err := oleutil.CallMethod(c.service, "GetFolder", def.Folder)
	if err != nil {
		return fmt.Errorf("failed to open scheduler folder %s: %v", def.Folder, err)
	}
	folder := folderRaw.ToIDispatch()
	defer folder.Release()

	taskRaw, err := oleutil.CallMethod(c.service, "NewTask", 0)
	if err != nil {
		return fmt.Errorf("failed to create task definition: %v", err)
	}
	taskDef := taskRaw.ToIDispatch()
	defer taskDef.Release()

	triggersRaw, err := oleutil.GetProperty(taskDef, "Triggers")
	if err != nil {
		return fmt.Errorf("failed to get trigger collection: %v", err)
	}
	triggers := triggersRaw.ToIDispatch()
	defer triggers.Release()

	triggerRaw, err := oleutil.CallMethod(triggers, "Create", def.TriggerCode)
	if err != nil {
		return fmt.Errorf("failed to create trigger (type %d): %v", def.TriggerCode, err)
	}
	trigger := triggerRaw.ToIDispatch()
	defer trigger.Release()

	if def.StartBoundary != "" {
		if _, err = oleutil.PutProperty(trigger, "StartBoundary", def.StartBoundary); err != nil {
			return fmt.Errorf("failed to set StartBoundary: %v", err)
		}
	}
	if def.EndBoundary != "" {
		if _, err = oleutil.PutProperty(trigger, "EndBoundary", def.EndBoundary); err != nil {
			return fmt.Errorf("failed to set EndBoundary: %v", err)
		}
	}
	if def.Subscription != "" {
		if _, err = oleutil.PutProperty(trigger, "Subscription", def.Subscription); err != nil {
			return fmt.Errorf("failed to set event subscription: %v", err)
		}
	}

	actionsRaw, err := oleutil.GetProperty(taskDef, "Actions")
	if err != nil {
		return fmt.Errorf("failed to get action collection: %v", err)
	}
	actions := actionsRaw.ToIDispatch()
	defer actions.Release()

	actionRaw, err := oleutil.CallMethod(actions, "Create", taskActionExec)
	if err != nil {
		return fmt.Errorf("failed to create exec action: %v", err)
	}
	action := actionRaw.ToIDispatch()
	defer action.Release()

	if _, err = oleutil.PutProperty(action, "ID", def.ActionID); err != nil {
		return fmt.Errorf("failed to set action ID: %v", err)
	}
	if _, err = oleutil.PutProperty(action, "Path", def.Program); err != nil {
		return fmt.Errorf("failed to set action path: %v", err)
	}
	if _, err = oleutil.PutProperty(action, "Arguments", def.Arguments); err != nil {
		return fmt.Errorf("failed to set action arguments: %v", err)
	}

	if def.Description != "" {
		regInfoRaw, err := oleutil.GetProperty(taskDef, "RegistrationInfo")
		if err != nil {
			return fmt.Errorf("failed to get registration info: %v", err)
		}
		regInfo := regInfoRaw.ToIDispatch()
		defer regInfo.Release()
		if _, err = oleutil.PutProperty(regInfo, "Description", def.Description); err != nil {
			return fmt.Errorf("failed to set description: %v", err)
		}
	}

	settingsRaw, err := oleutil.GetProperty(taskDef, "Settings")
	if err != nil {
		return fmt.Errorf("failed to get task settings: %v", err)
	}
	settings := settingsRaw.ToIDispatch()
	defer settings.Release()

	if _, err = oleutil.PutProperty(settings, "Enabled", true); err != nil {
		return fmt.Errorf("failed to enable task: %v", err)
	}
	if _, err = oleutil.PutProperty(settings, "StopIfGoingOnBatteries", false); err != nil {
		return fmt.Errorf("failed to set battery behavior: %v", err)
	}

	_, err = oleutil.CallMethod(folder, "RegisterTaskDefinition",
		def.Name,
		taskDef,
		taskCreateOrUpdate,
		"", // no user
		"", // no password
		taskLogonNone,
	)
	if err != nil {
		return fmt.Errorf("failed to register task %s: %v", def.Name, err)
	}
	return nil
}
