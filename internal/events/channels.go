package events

import "fmt"

const (
	EVENT_CHANNEL = "blog:events:%s" // <eventType>
)

func EventChannel(eventType string) string {
	return fmt.Sprintf(EVENT_CHANNEL, eventType)
}
