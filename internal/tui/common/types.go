package common

import (
	"mlibctl/internal/gateway"
	"mlibctl/internal/naming"
)

// Focus is the part of a dialog receiving keys
type Focus int

const (
	FocusFolders Focus = iota
	FocusName
	FocusOptions
)

// Next cycles folders, name, options
func (f Focus) Next() Focus {
	return (f + 1) % 3
}

// Toggle is one export checkbox
type Toggle struct {
	Label string
	On    bool
}

// ExportReader defines what the export view reads from its model
type ExportReader interface {
	File() gateway.File
	Location() string
	FolderList() string
	Focus() Focus
	NameInput() string
	NameEnabled() bool
	Convention() naming.Convention
	Preview() string
	Toggles() []Toggle
	OptionCursor() int
	FullExportPath() string
	ExportError() string
	Status() string
	Details() string
	ShowHelp() bool
	HelpLine() string
}

// TagReader defines what the tag view reads from its model
type TagReader interface {
	Form() string
	CanSave() bool
	ErrorMessage() string
	Status() string
	HelpLine() string
}
