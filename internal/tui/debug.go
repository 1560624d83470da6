package tui

import (
	"fmt"
	"os"
	"time"
)

// debugLogf appends one line to the file named by DEVNOTE_TUI_DEBUG_LOG.
// Best effort; the dashboard owns the terminal, so stderr is not an option.
func (m *appModel) debugLogf(format string, args ...any) {
	if m.debugLogPath == "" {
		return
	}
	f, err := os.OpenFile(m.debugLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s "+format+"\n", append([]any{time.Now().Format("15:04:05.000")}, args...)...)
}
