package hostbridge

import (
	"github.com/sirupsen/logrus"
)

// Log is shared by the dispatcher, the bridge and the application lifecycle.
var Log = logrus.New()

// DefaultHandlerName is what GetName reports when no name is configured.
const DefaultHandlerName = "Request Handler"

// Titles used with the Reporter.
const (
	warningTitle = "Warning"
	errorTitle   = "Error!"
)

const noValidRequest = "No valid request has been taken"

// singleflight key for ShowWindow, only one surface may be alive per Application.
const windowKey = "window"
