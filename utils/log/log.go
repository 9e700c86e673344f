package log

import (
	"os"

	"github.com/inkpress/inkpress/utils/dotenv"
	Flag "github.com/inkpress/inkpress/utils/flag"
	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is
// not main function. Unit test will fail with nil pointer dereference if
// we don't init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()

	// JSON in production for log collection, plain text locally for
	// readability.
	if dotenv.IsProd() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetOutput(os.Stderr)

	Log = logger.WithFields(
		logrus.Fields{"service": Flag.ServiceName, "is_development": !dotenv.IsProd()},
	)
}
