package app

import (
	"context"
	"log"
	"time"

	"github.com/ayusman/lace/internal/scene"
)

// DefaultFPS is the display refresh rate the loops target.
const DefaultFPS = 60

// StatusInterval is how often the headless loop logs its status.
const StatusInterval = 5 * time.Second

// RunHeadless ticks the app at fps against a Recorder until ctx is done or,
// when maxTicks is positive, that many ticks have run. Each tick starts from
// an empty recording.
func (a *App) RunHeadless(ctx context.Context, rec *scene.Recorder, fps, maxTicks int) error {
	if fps <= 0 {
		fps = DefaultFPS
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	lastStatus := time.Now()
	ticks := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rec.Reset()
			a.Tick(rec)
			ticks++

			if time.Since(lastStatus) >= StatusInterval {
				lastStatus = time.Now()
				st := a.state
				log.Printf("Frame %d: %d hands, %d fingers, trails %d/%d, %d draw calls, connected=%t",
					st.Frame, len(st.Hands), len(st.FingersFound),
					st.LeftTrail.Len(), st.RightTrail.Len(), len(rec.Commands()),
					a.tracker.IsConnected())
			}

			if maxTicks > 0 && ticks >= maxTicks {
				return nil
			}
		}
	}
}
