package robot

import (
	"github.com/sirupsen/logrus"

	"github.com/keepmind9/symbot/internal/logger"
)

// ConsoleRobot is the minimal built-in robot used by `symbot start`.
// It logs everything the adapter hands it, which makes the binary usable
// standalone for smoke-testing a pod connection.
type ConsoleRobot struct {
	Emitter
}

// NewConsoleRobot creates a console robot with lifecycle logging wired up
func NewConsoleRobot() *ConsoleRobot {
	r := &ConsoleRobot{}
	r.On(EventConnected, func(args ...interface{}) {
		logger.Info("adapter-connected")
	})
	r.On(EventError, func(args ...interface{}) {
		if len(args) > 0 {
			logger.WithField("error", args[0]).Warn("adapter-error")
		}
	})
	return r
}

// Receive logs one inbound message
func (r *ConsoleRobot) Receive(msg Message) {
	logger.WithFields(logrus.Fields{
		"stream_id": msg.StreamID,
		"user_id":   msg.UserID,
		"text":      msg.Text,
	}).Info("message-received")
}
