package tracking

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"sync"
)

// maxLineSize bounds one JSON frame from the bridge process.
const maxLineSize = 1 << 20

// BridgeTracker implements Tracker by running a helper process that writes
// tracking frames to stdout as JSON lines. Control messages go to its stdin.
// Any program that relays the sensor service's JSON stream works as a bridge.
type BridgeTracker struct {
	snapshot
	command []string

	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	done    chan struct{}
	started bool
}

// NewBridgeTracker creates a tracker for the given bridge command line.
// The process is started by Open.
func NewBridgeTracker(command []string) (*BridgeTracker, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("bridge command is empty")
	}
	return &BridgeTracker{
		snapshot: newSnapshot(),
		command:  command,
	}, nil
}

// Open starts the bridge process and the goroutine reading its frames.
func (b *BridgeTracker) Open() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return nil
	}

	b.cmd = exec.Command(b.command[0], b.command[1:]...)

	stdin, err := b.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := b.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	// Capture stderr for debugging
	b.cmd.Stderr = os.Stderr

	if err := b.cmd.Start(); err != nil {
		return fmt.Errorf("start bridge: %w", err)
	}

	b.stdin = stdin
	b.done = make(chan struct{})
	b.started = true

	go b.readLoop(stdout, b.done)

	if b.receiveBackground() {
		b.sendControl(true)
	}

	log.Printf("Tracking bridge started: %s", b.command[0])
	return nil
}

// readLoop publishes every frame read from r until EOF.
func (b *BridgeTracker) readLoop(r io.Reader, done chan struct{}) {
	defer close(done)
	defer b.setConnected(false)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		consume(&b.snapshot, scanner.Bytes())
	}
	if err := scanner.Err(); err != nil {
		log.Printf("Error reading tracking bridge: %v", err)
	}
}

// consume applies one line of the tracking stream to s.
func consume(s *snapshot, line []byte) {
	if len(line) == 0 {
		return
	}
	msg, err := DecodeMessage(line)
	if err != nil {
		log.Printf("Skipping tracking message: %v", err)
		return
	}
	switch msg.Kind {
	case MessageFrame:
		s.publish(msg.FrameID, msg.Hands)
	case MessageDevice:
		s.setConnected(msg.Attached)
	}
}

// SetReceiveBackgroundFrames records the setting and forwards it to a
// running bridge.
func (b *BridgeTracker) SetReceiveBackgroundFrames(enabled bool) {
	b.setReceiveBackground(enabled)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		b.sendControl(enabled)
	}
}

// sendControl writes the background flag to the bridge. Caller holds b.mu.
func (b *BridgeTracker) sendControl(background bool) {
	msg, _ := json.Marshal(map[string]bool{"background": background})
	if _, err := b.stdin.Write(append(msg, '\n')); err != nil {
		log.Printf("Error writing to tracking bridge: %v", err)
	}
}

// Close stops the bridge process and waits for the reader to finish.
func (b *BridgeTracker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return nil
	}

	b.stdin.Close()
	if b.cmd.Process != nil {
		b.cmd.Process.Kill()
	}
	<-b.done

	err := b.cmd.Wait()
	b.started = false
	b.cmd = nil
	b.stdin = nil
	b.setConnected(false)

	log.Println("Tracking bridge stopped")
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return nil
		}
		return fmt.Errorf("wait for bridge: %w", err)
	}
	return nil
}
