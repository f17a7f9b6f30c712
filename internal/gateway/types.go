package gateway

import (
	"bytes"
	"encoding/json"

	"mlibctl/internal/naming"
)

// File is a media record as the backend describes it. Only the fields the
// export dialog reads are decoded.
type File struct {
	UID        string `json:"uid"`
	ID         string `json:"id,omitempty"`
	Title      string `json:"title,omitempty"`
	UploadDate string `json:"upload_date,omitempty"`
	Uploader   string `json:"uploader,omitempty"`
	Channel    string `json:"channel,omitempty"`
	Extractor  string `json:"extractor,omitempty"`
}

// NamingFields returns the values a custom folder template can reference
func (f File) NamingFields() naming.Fields {
	return naming.Fields{
		Title:      f.Title,
		Uploader:   f.Uploader,
		Channel:    f.Channel,
		UploadDate: f.UploadDate,
		ID:         f.ID,
		Extractor:  f.Extractor,
	}
}

// Folder is a directory under the backend's export root. Children is only
// populated when the tree was requested recursively.
type Folder struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	FullPath  string   `json:"fullPath"`
	IsSymlink bool     `json:"isSymlink"`
	Children  []Folder `json:"children,omitempty"`
}

// FolderQuery selects between fetching the whole tree and fetching one
// directory level.
type FolderQuery struct {
	Recursive bool   `json:"recursive,omitempty"`
	Path      string `json:"path,omitempty"`
}

// ExportOptions is what the export dialog sends along with a file
type ExportOptions struct {
	IncludeNFO         bool              `json:"includeNfo"`
	UseSimpleFilenames bool              `json:"useSimpleFilenames"`
	NamingConvention   naming.Convention `json:"namingConvention"`
	CustomFolderName   string            `json:"customFolderName,omitempty"`
	CreateNewFolder    bool              `json:"createNewFolder"`
}

// Tag is a user-defined label. Fields the dialog does not edit are kept in
// Extra as raw JSON and sent back untouched on update.
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var tagFields = []string{"id", "name", "color", "description"}

// tagJSON has Tag's fields without its methods
type tagJSON Tag

// UnmarshalJSON decodes the known fields and keeps the rest in Extra
func (t *Tag) UnmarshalJSON(data []byte) error {
	var known tagJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range tagFields {
		delete(all, k)
	}
	known.Extra = nil
	if len(all) > 0 {
		known.Extra = all
	}
	*t = Tag(known)
	return nil
}

// MarshalJSON writes Extra alongside the known fields. Known fields win over
// an Extra entry of the same name.
func (t Tag) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(tagJSON(t))
	if err != nil || len(t.Extra) == 0 {
		return known, err
	}
	out := make(map[string]json.RawMessage, len(t.Extra)+len(tagFields))
	for k, v := range t.Extra {
		out[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		out[k] = v
	}
	return json.Marshal(out)
}

// Clone returns an independent copy of t
func (t Tag) Clone() Tag {
	c := t
	if t.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(t.Extra))
		for k, v := range t.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}

// Equal compares two tags field by field, including Extra
func (t Tag) Equal(o Tag) bool {
	if t.ID != o.ID || t.Name != o.Name || t.Color != o.Color || t.Description != o.Description {
		return false
	}
	if len(t.Extra) != len(o.Extra) {
		return false
	}
	for k, v := range t.Extra {
		w, ok := o.Extra[k]
		if !ok || !bytes.Equal(v, w) {
			return false
		}
	}
	return true
}

// Response is the envelope every backend operation answers with
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// FoldersResponse answers getExportFolders
type FoldersResponse struct {
	Response
	Folders     []Folder `json:"folders"`
	CurrentPath string   `json:"currentPath,omitempty"`
}

type fileResponse struct {
	Response
	File *File `json:"file"`
}

type tagsResponse struct {
	Response
	Tags []Tag `json:"tags"`
}

type exportRequest struct {
	UID     string        `json:"uid"`
	Path    string        `json:"exportPath"`
	Options ExportOptions `json:"options"`
}

type tagRequest struct {
	Tag Tag `json:"tag"`
}

type fileRequest struct {
	UID string `json:"uid"`
}
