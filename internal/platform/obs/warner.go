package obs

import "log"

// LogWarner forwards resolver diagnostics to the process log.
type LogWarner struct{}

func (LogWarner) Warnf(format string, args ...any) {
	log.Printf("warn: "+format, args...)
}
