package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/novel/internal/application/scene"
)

// Recorder handles input recording for replay
type Recorder struct {
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a new recorder for a story
func NewRecorder(seed int64, story string) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   Version,
			Seed:      seed,
			Story:     story,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
	}
}

// RecordFrame records a single frame's time step and events
func (r *Recorder) RecordFrame(dt float64, events []scene.Event) {
	if !r.recording {
		return
	}

	fi := FrameInput{F: r.frame, DT: dt}
	for _, ev := range events {
		fi.Events = append(fi.Events, Encode(ev))
	}

	r.data.Frames = append(r.data.Frames, fi)
	r.frame++
}

// Wrap returns a source that records every frame src yields.
func (r *Recorder) Wrap(src Source) Source {
	return &recordingSource{src: src, rec: r}
}

type recordingSource struct {
	src Source
	rec *Recorder
}

func (s *recordingSource) NextFrame(dt float64) (float64, []scene.Event, bool) {
	frameDT, events, ok := s.src.NextFrame(dt)
	if ok {
		s.rec.RecordFrame(frameDT, events)
	}
	return frameDT, events, ok
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// AutoFilename asks RecordPath for a generated name.
const AutoFilename = "auto"

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}

// RecordPath returns the file a recording is saved to.
func RecordPath(name string) string {
	if name == AutoFilename {
		return GenerateFilename()
	}
	return name
}
