package dnd

import "fmt"

// FilesType is the manifest entry announcing that a drag carries files.
const FilesType = "Files"

// Kind identifies a drag-and-drop event.
type Kind int

const (
	Enter Kind = iota
	Leave
	Over
	Drop
)

func (k Kind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Leave:
		return "leave"
	case Over:
		return "over"
	case Drop:
		return "drop"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a single drag-and-drop notification delivered at the window level.
type Event struct {
	Kind  Kind
	Types []string
	Paths []string
}

// HasFiles reports whether the type manifest includes FilesType.
func HasFiles(types []string) bool {
	for _, t := range types {
		if t == FilesType {
			return true
		}
	}
	return false
}

// DropEvents returns the sequence a terminal produces for a completed file
// drop: the drag enters the window and is released in the same instant.
// Publishing both in one call means no drag is ever observed open.
func DropEvents(paths []string) []Event {
	types := []string{FilesType}
	return []Event{
		{Kind: Enter, Types: types},
		{Kind: Drop, Types: types, Paths: paths},
	}
}
