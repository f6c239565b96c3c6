package testdata

import (
	"bytes"
	"embed"
	"fmt"
	"strings"

	"github.com/ayusman/lace/internal/tracking"
)

//go:embed recordings/*.jsonl
var recordingsFS embed.FS

// LoadRecording returns the raw JSON lines of a recorded session by name
func LoadRecording(name string) ([]byte, error) {
	data, err := recordingsFS.ReadFile("recordings/" + name)
	if err != nil {
		return nil, fmt.Errorf("load recording %s: %w", name, err)
	}
	return data, nil
}

// Recordings lists the names of the embedded sessions
func Recordings() ([]string, error) {
	entries, err := recordingsFS.ReadDir("recordings")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// OpenReplay builds a replay tracker over an embedded session
func OpenReplay(name string, fps int, loop bool) (*tracking.ReplayTracker, error) {
	data, err := LoadRecording(name)
	if err != nil {
		return nil, err
	}
	t, err := tracking.NewReplayTracker(bytes.NewReader(data), fps, loop)
	if err != nil {
		return nil, fmt.Errorf("decode recording %s: %w", name, err)
	}
	return t, nil
}
