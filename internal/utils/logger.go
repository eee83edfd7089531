package utils

import (
	"strings"

	"github.com/sirupsen/logrus"
)

var appLog = logrus.New()

// SetupLogger configures the shared logrus instance. Call once from main.
func SetupLogger(ginMode string) {
	if ginMode == "release" {
		appLog.SetFormatter(&logrus.JSONFormatter{})
		appLog.SetLevel(logrus.InfoLevel)
		return
	}
	appLog.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	appLog.SetLevel(logrus.DebugLevel)
}

// Log exposes the shared logger for structured call sites.
func Log() *logrus.Logger {
	return appLog
}

// LogEvent prints a standardized line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	appLog.WithFields(logrus.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Info(message)
}
