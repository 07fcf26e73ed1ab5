package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLog = log.New(os.Stdout, "INFO: ", log.LstdFlags|log.Lshortfile)
	WarnLog = log.New(os.Stdout, "WARN: ", log.LstdFlags|log.Lshortfile)
	ErrLog  = log.New(os.Stderr, "ERROR: ", log.LstdFlags|log.Lshortfile)

	logFile *lumberjack.Logger
)

// SetOutput redirects all loggers to w
func SetOutput(w io.Writer) {
	InfoLog.SetOutput(w)
	WarnLog.SetOutput(w)
	ErrLog.SetOutput(w)
}

// SetLogFile tees all loggers into a rotating log file at path, in addition to stdout/stderr.
// maxSizeMB<=0 uses lumberjack's default of 100MB.
func SetLogFile(path string, maxSizeMB int) {

	CloseLogFile()

	logFile = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: 1,
	}

	InfoLog.SetOutput(io.MultiWriter(os.Stdout, logFile))
	WarnLog.SetOutput(io.MultiWriter(os.Stdout, logFile))
	ErrLog.SetOutput(io.MultiWriter(os.Stderr, logFile))
}

// CloseLogFile stops writing to the log file set by SetLogFile, if any
func CloseLogFile() {

	if logFile == nil {
		return
	}

	InfoLog.SetOutput(os.Stdout)
	WarnLog.SetOutput(os.Stdout)
	ErrLog.SetOutput(os.Stderr)

	logFile.Close()
	logFile = nil
}
