// Package notification delivers push notifications to client devices.
// Dispatch is best-effort: failures degrade to a logged no-op and never
// fail the request that triggered them.
package notification

import (
	"giglink_backend/internal/logger"
)

// Pusher sends a push notification to a device token.
type Pusher interface {
	Push(pushToken string, title string, body string) error
}

// LogPusher records the notification instead of delivering it.
type LogPusher struct{}

func (p *LogPusher) Push(pushToken string, title string, body string) error {
	logger.Info("push dispatch (log pusher)", "title", title)
	return nil
}

// Notify dispatches asynchronously and swallows errors with a log line.
// Callers with an empty token get a no-op.
func Notify(pusher Pusher, pushToken string, title string, body string) {
	if pusher == nil || pushToken == "" {
		return
	}
	go func() {
		if err := pusher.Push(pushToken, title, body); err != nil {
			logger.Warn("push notification failed", "title", title, "error", err.Error())
		}
	}()
}
