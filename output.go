package steg

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// OutputLevel is the amount of progress output the file operations produce.
type OutputLevel int

const (
	OutputNone  OutputLevel = iota // Nothing at all.
	OutputSteps                    // One line per step of the operation.
	OutputInfo                     // Steps plus image and bitstream statistics.
	OutputDebug                    // Everything, including every channel write.
)

// String returns the name of the level.
func (l OutputLevel) String() string {
	switch l {
	case OutputNone:
		return "quiet"
	case OutputSteps:
		return "steps"
	case OutputInfo:
		return "info"
	case OutputDebug:
		return "debug"
	default:
		return fmt.Sprintf("OutputLevel(%d)", int(l))
	}
}

// ParseOutputLevel parses the name of a level as returned by String.
func ParseOutputLevel(s string) (OutputLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiet", "none":
		return OutputNone, nil
	case "steps", "":
		return OutputSteps, nil
	case "info":
		return OutputInfo, nil
	case "debug":
		return OutputDebug, nil
	default:
		return OutputNone, &InvalidFormatError{fmt.Sprintf("Unknown output level '%v'.", s)}
	}
}

var (
	outputMu sync.Mutex
	output   io.Writer = os.Stdout
)

// SetOutput redirects progress output. It returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	outputMu.Lock()
	defer outputMu.Unlock()
	prev := output
	output = w
	return prev
}

func printlnLvl(current, min OutputLevel, a ...interface{}) {
	if current < min {
		return
	}
	outputMu.Lock()
	defer outputMu.Unlock()
	fmt.Fprintln(output, a...)
}

func printfLvl(current, min OutputLevel, format string, a ...interface{}) {
	if current < min {
		return
	}
	outputMu.Lock()
	defer outputMu.Unlock()
	fmt.Fprintf(output, format, a...)
}
