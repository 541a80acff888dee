package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/novel/internal/application/scene"
)

// Source supplies the time step and input events for each frame.
// ok is false once the source is exhausted.
type Source interface {
	NextFrame(dt float64) (frameDT float64, events []scene.Event, ok bool)
}

// Frame is one decoded frame of a replay.
type Frame struct {
	DT     float64
	Events []scene.Event
}

// Replayer handles input playback from recorded data
type Replayer struct {
	data   ReplayData
	frames []Frame
	frame  int
}

// NewReplayer decodes replay data into frames.
func NewReplayer(data ReplayData) (*Replayer, error) {
	frames := make([]Frame, len(data.Frames))
	for i, fi := range data.Frames {
		frames[i].DT = fi.DT
		for _, rec := range fi.Events {
			ev, err := Decode(rec)
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", fi.F, err)
			}
			frames[i].Events = append(frames[i].Events, ev)
		}
	}
	return &Replayer{data: data, frames: frames}, nil
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// NextFrame returns the recorded frame and advances. The live dt is ignored.
func (r *Replayer) NextFrame(float64) (float64, []scene.Event, bool) {
	if r.frame >= len(r.frames) {
		return 0, nil, false
	}
	f := r.frames[r.frame]
	r.frame++
	return f.DT, f.Events, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}
