package tracking

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// DefaultReplayRate is the playback rate of a recorded session in frames per second.
const DefaultReplayRate = 60

// ReplayTracker plays back a recorded tracking session. Frames are published
// from a background goroutine at a fixed rate, like a live sensor would.
type ReplayTracker struct {
	snapshot
	messages []Message
	interval time.Duration
	loop     bool

	mu     sync.Mutex
	stopCh chan struct{}
	done   chan struct{}
	index  int
}

// NewReplayTracker decodes a recording from r. Each line holds one message of
// the tracking stream; malformed lines are skipped.
func NewReplayTracker(r io.Reader, fps int, loop bool) (*ReplayTracker, error) {
	if fps <= 0 {
		fps = DefaultReplayRate
	}

	var messages []Message
	frames := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		msg, err := DecodeMessage(line)
		if err != nil {
			log.Printf("Skipping recording line %d: %v", n, err)
			continue
		}
		if msg.Kind == MessageIgnored {
			continue
		}
		if msg.Kind == MessageFrame {
			frames++
		}
		messages = append(messages, msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	if frames == 0 {
		return nil, ErrNoFrames
	}

	return &ReplayTracker{
		snapshot: newSnapshot(),
		messages: messages,
		interval: time.Second / time.Duration(fps),
		loop:     loop,
	}, nil
}

// OpenReplayFile creates a ReplayTracker from a recording on disk.
func OpenReplayFile(path string, fps int, loop bool) (*ReplayTracker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	t, err := NewReplayTracker(f, fps, loop)
	if err != nil {
		return nil, fmt.Errorf("load recording %s: %w", path, err)
	}
	return t, nil
}

// Len returns the number of messages in the recording.
func (t *ReplayTracker) Len() int {
	return len(t.messages)
}

// Open starts playback from the beginning.
func (t *ReplayTracker) Open() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopCh != nil {
		return nil
	}

	t.index = 0
	t.stopCh = make(chan struct{})
	t.done = make(chan struct{})
	t.setConnected(true)

	go t.play(t.stopCh, t.done)
	return nil
}

// Close stops playback.
func (t *ReplayTracker) Close() error {
	t.mu.Lock()
	if t.stopCh == nil {
		t.mu.Unlock()
		return nil
	}
	close(t.stopCh)
	done := t.done
	t.stopCh = nil
	t.mu.Unlock()

	<-done
	t.setConnected(false)
	return nil
}

// SetReceiveBackgroundFrames records the setting; playback does not depend on focus.
func (t *ReplayTracker) SetReceiveBackgroundFrames(enabled bool) {
	t.setReceiveBackground(enabled)
}

func (t *ReplayTracker) play(stopCh, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !t.step() {
				return
			}
		}
	}
}

// step publishes the next message. It returns false once a non-looping
// recording is exhausted.
func (t *ReplayTracker) step() bool {
	t.mu.Lock()
	if t.index >= len(t.messages) {
		if !t.loop {
			t.mu.Unlock()
			t.setConnected(false)
			return false
		}
		t.index = 0
	}
	msg := t.messages[t.index]
	t.index++
	t.mu.Unlock()

	switch msg.Kind {
	case MessageFrame:
		t.publish(msg.FrameID, msg.Hands)
	case MessageDevice:
		t.setConnected(msg.Attached)
	}
	return true
}
