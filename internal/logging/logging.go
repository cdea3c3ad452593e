package logging

import (
	"github.com/sirupsen/logrus"
)

// New builds the process-wide logger: JSON in prod so log pipelines can
// parse it, human-readable text everywhere else.
func New(appEnv string) *logrus.Logger {
	log := logrus.New()
	if appEnv == "prod" {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
