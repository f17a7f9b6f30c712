// Package gatewaytest provides an in-memory Gateway for tests.
package gatewaytest

import (
	"context"
	"strings"
	"sync"

	"mlibctl/internal/errors"
	"mlibctl/internal/gateway"
)

// ExportCall records one ExportFile invocation
type ExportCall struct {
	UID     string
	Path    string
	Options gateway.ExportOptions
}

// Fake is a programmable gateway.Gateway. Unset funcs fall back to serving
// Tree, Files and Tags.
type Fake struct {
	mu sync.Mutex

	Tree  []gateway.Folder
	Files map[string]gateway.File
	Tags  []gateway.Tag

	FoldersFunc func(ctx context.Context, q gateway.FolderQuery) (*gateway.FoldersResponse, error)
	ExportFunc  func(ctx context.Context, uid, path string, opts gateway.ExportOptions) (*gateway.Response, error)
	UpdateFunc  func(ctx context.Context, tag gateway.Tag) (*gateway.Response, error)

	FolderQueries []gateway.FolderQuery
	Exports       []ExportCall
	Updates       []gateway.Tag
	TagLoads      int
}

var _ gateway.Gateway = (*Fake)(nil)

// GetExportFolders serves Tree, recursively or one level at a time
func (f *Fake) GetExportFolders(ctx context.Context, q gateway.FolderQuery) (*gateway.FoldersResponse, error) {
	f.mu.Lock()
	f.FolderQueries = append(f.FolderQueries, q)
	fn := f.FoldersFunc
	tree := f.Tree
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, q)
	}
	resp := &gateway.FoldersResponse{Response: gateway.Response{Success: true}}
	if q.Recursive {
		resp.Folders = tree
		return resp, nil
	}
	level, ok := Lookup(tree, q.Path)
	if !ok {
		return nil, errors.NewGatewayError(gateway.OpGetExportFolders, "Folder not found")
	}
	for _, c := range level {
		c.Children = nil
		resp.Folders = append(resp.Folders, c)
	}
	resp.CurrentPath = strings.Trim(q.Path, "/")
	return resp, nil
}

// ExportFile records the call and succeeds unless ExportFunc says otherwise
func (f *Fake) ExportFile(ctx context.Context, uid, path string, opts gateway.ExportOptions) (*gateway.Response, error) {
	f.mu.Lock()
	f.Exports = append(f.Exports, ExportCall{UID: uid, Path: path, Options: opts})
	fn := f.ExportFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, uid, path, opts)
	}
	return &gateway.Response{Success: true}, nil
}

// UpdateTag records the call and stores the tag
func (f *Fake) UpdateTag(ctx context.Context, tag gateway.Tag) (*gateway.Response, error) {
	f.mu.Lock()
	f.Updates = append(f.Updates, tag)
	fn := f.UpdateFunc
	f.mu.Unlock()

	if fn != nil {
		resp, err := fn(ctx, tag)
		if err != nil {
			return nil, err
		}
		f.storeTag(tag)
		return resp, nil
	}
	f.storeTag(tag)
	return &gateway.Response{Success: true}, nil
}

func (f *Fake) storeTag(tag gateway.Tag) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Tags {
		if f.Tags[i].ID == tag.ID {
			f.Tags[i] = tag
			return
		}
	}
	f.Tags = append(f.Tags, tag)
}

// GetAllTags returns a copy of Tags
func (f *Fake) GetAllTags(ctx context.Context) ([]gateway.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TagLoads++
	out := make([]gateway.Tag, len(f.Tags))
	copy(out, f.Tags)
	return out, nil
}

// GetFile serves Files
func (f *Fake) GetFile(ctx context.Context, uid string) (*gateway.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.Files[uid]
	if !ok {
		return nil, errors.NotFoundf("file %s not found", uid)
	}
	return &file, nil
}

// ExportCalls returns a copy of the recorded exports
func (f *Fake) ExportCalls() []ExportCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ExportCall, len(f.Exports))
	copy(out, f.Exports)
	return out
}

// Queries returns a copy of the recorded folder queries
func (f *Fake) Queries() []gateway.FolderQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]gateway.FolderQuery, len(f.FolderQueries))
	copy(out, f.FolderQueries)
	return out
}

// Lookup walks tree along path and returns that folder's children
func Lookup(tree []gateway.Folder, path string) ([]gateway.Folder, bool) {
	current := tree
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		found := false
		for _, f := range current {
			if f.Name == part {
				current = f.Children
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return current, true
}

// Node builds a folder whose Path is parent/name
func Node(parent, name string, children ...gateway.Folder) gateway.Folder {
	path := name
	if parent != "" {
		path = parent + "/" + name
	}
	return gateway.Folder{
		Name:     name,
		Path:     path,
		FullPath: "/exports/" + path,
		Children: children,
	}
}

// SampleTree returns root -> {Movies -> {Action, Drama}, Shows -> {}, .cache}
func SampleTree() []gateway.Folder {
	return []gateway.Folder{
		Node("", "Movies",
			Node("Movies", "Action"),
			Node("Movies", "Drama",
				Node("Movies/Drama", "Classics"),
			),
		),
		Node("", "Shows"),
		Node("", ".cache"),
	}
}
