package hostbridge

import (
	"github.com/sirupsen/logrus"
)

// LogReporter is the Dispatcher's default Reporter, it only writes to Log.
type LogReporter struct{}

func (LogReporter) Warn(title, message string) {
	Log.WithField("title", title).Warn(message)
}

func (LogReporter) Fail(title string, err error) {
	Log.WithFields(logrus.Fields{"title": title}).Error(err)
}
