package replay

// Version is the replay file format version.
const Version = "2.0"

// EventRecord is the serialized form of a scene.Event.
type EventRecord struct {
	T      string  `json:"t"`             // Event type
	X      float64 `json:"x,omitempty"`   // Cursor X or wheel X
	Y      float64 `json:"y,omitempty"`   // Cursor Y or wheel Y
	DX     float64 `json:"dx,omitempty"`  // Motion delta X
	DY     float64 `json:"dy,omitempty"`  // Motion delta Y
	B      int     `json:"b,omitempty"`   // Mouse or gamepad button
	K      int     `json:"k,omitempty"`   // Key
	Rep    bool    `json:"rep,omitempty"` // Key repeat
	Text   string  `json:"s,omitempty"`   // Text input
	Pad    int     `json:"p,omitempty"`   // Gamepad ID
	Axis   int     `json:"a,omitempty"`   // Gamepad axis
	V      float64 `json:"v,omitempty"`   // Axis value
	W      int     `json:"w,omitempty"`   // Resize width
	H      int     `json:"h,omitempty"`   // Resize height
	Gained bool    `json:"g,omitempty"`   // Focus gained
}

// FrameInput records the time step and input events of a single frame
type FrameInput struct {
	F      int           `json:"f"`
	DT     float64       `json:"dt"`
	Events []EventRecord `json:"e,omitempty"`
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Story     string       `json:"story"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
