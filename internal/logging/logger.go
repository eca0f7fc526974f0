package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. It is usable before Init is called and
// writes to stderr until then.
var Logger = logrus.New()

var once sync.Once

// Options configures Init.
type Options struct {
	Level string
	// File enables rotated file output. Empty means stdout.
	File string
}

// Init configures Logger once per process.
func Init(opts Options) {
	once.Do(func() {
		var out io.Writer = os.Stdout
		if opts.File != "" {
			out = &lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
		}
		Logger.SetOutput(out)
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})

		level, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			level = logrus.InfoLevel
		}
		Logger.SetLevel(level)

		Logger.WithField("output", describe(opts.File)).Info("logger initialized")
	})
}

func describe(file string) string {
	if file == "" {
		return "stdout"
	}
	return file
}
