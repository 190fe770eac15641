package tools

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/glog"
)

var isEnabled = true
var printTimestamp = true
var output io.Writer = os.Stdout

func EnableLogger() {
	isEnabled = true
}

func DisableLogger() {
	isEnabled = false
}

func EnableLoggerTimestamp() {
	printTimestamp = true
}

func DisableLoggerTimestamp() {
	printTimestamp = false
}

// Redirects user facing output, nil restores stdout
func SetLoggerOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	output = w
}

// Prints a progress message for the user and records it in the glog info log.
// Nothing is printed when the logger is disabled, glog still receives the message.
func LogOutput(val ...interface{}) {
	glog.Infoln(val...)
	if !isEnabled {
		return
	}
	if printTimestamp {
		fmt.Fprint(output, "["+time.Now().Format("2006-01-02 15.04:05.000")+"] ")
	}
	fmt.Fprintln(output, val...)
}
