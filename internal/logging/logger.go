package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()

// Init configures the process logger. When logFile is non-empty, entries
// are duplicated into a size-rotated file alongside stdout.
func Init(logFile string) {
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	Logger.SetLevel(logrus.InfoLevel)

	if logFile == "" {
		Logger.SetOutput(os.Stdout)
		return
	}

	rotated := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	Logger.SetOutput(io.MultiWriter(os.Stdout, rotated))
}
