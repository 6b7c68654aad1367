package host

import (
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// DefaultQueueSize bounds how many raised events and idle jobs can wait for the loop.
const DefaultQueueSize = 64
