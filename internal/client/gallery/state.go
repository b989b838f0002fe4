package gallery

// State is a step of one upload.
type State int

const (
	Idle State = iota
	FileSelected
	Resizing
	Uploading
	Cached
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FileSelected:
		return "file selected"
	case Resizing:
		return "resizing"
	case Uploading:
		return "uploading"
	case Cached:
		return "cached"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
