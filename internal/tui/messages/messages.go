package messages

import (
	"mlibctl/internal/config"
	"mlibctl/internal/export"
)

type ErrorMsg struct {
	Err error
}

// FoldersLoadedMsg reports that the navigator finished a listing
type FoldersLoadedMsg struct {
	Err error
}

// ExportDoneMsg carries the outcome of a submission
type ExportDoneMsg struct {
	Err error
}

// DialogClosedMsg is sent once the export controller has closed. OK is
// false when the result was already taken by another reader.
type DialogClosedMsg struct {
	Result export.Result
	OK     bool
}

// TagSavedMsg carries the outcome of a tag save
type TagSavedMsg struct {
	Err error
}

type ConfigUpdateMsg struct {
	Config *config.Config
}
