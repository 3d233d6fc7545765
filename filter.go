package winsched

import (
	"fmt"
	"strings"
)

// Event triggers subscribe to the scheduler's own operational log and fire
// when the parent task at location\event_id completes successfully.
const operationalLog = "Microsoft-Windows-TaskScheduler/Operational"

const subscriptionTemplate = `<QueryList>
  <Query Id="0" Path="%[1]s">
    <Select Path="%[1]s">*[EventData[@Name='TaskSuccessEvent'][Data[@Name='TaskName']='%[2]s']]</Select>
  </Query>
</QueryList>`

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// eventFilter builds the event subscription for an Event trigger. The task
// name is substituted into an XPath string literal, so the parts are escaped
// for XML and rejected outright if they contain a single quote, which the
// literal cannot carry.
func eventFilter(folder, eventID string) (string, error) {
	if strings.Contains(folder, "'") {
		return "", invalidValue("location", folder)
	}
	if strings.Contains(eventID, "'") {
		return "", invalidValue("event_id", eventID)
	}
	taskName := xmlEscaper.Replace(fmt.Sprintf(`%s\%s`, folder, eventID))
	return fmt.Sprintf(subscriptionTemplate, operationalLog, taskName), nil
}
