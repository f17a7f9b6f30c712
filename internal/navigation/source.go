package navigation

import (
	"context"
	"strings"
	"sync"

	"mlibctl/internal/errors"
	"mlibctl/internal/gateway"
	"mlibctl/internal/log"

	"github.com/gobwas/glob"
	"golang.org/x/sync/singleflight"
)

// Listing is the content of one folder
type Listing struct {
	Folders []gateway.Folder
	// CurrentPath is the path the listing belongs to. Sources may normalise
	// the requested path; callers adopt this value.
	CurrentPath string
}

// FolderSource lists the folders below a path ("" is the export root)
type FolderSource interface {
	List(ctx context.Context, path string) (Listing, error)
}

// Strategy names a FolderSource implementation
type Strategy string

const (
	// StrategyTree fetches the whole tree once and walks it locally
	StrategyTree Strategy = "tree"
	// StrategyLazy fetches one directory level per navigation
	StrategyLazy Strategy = "lazy"
)

// ParseStrategy validates s
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyTree, "":
		return StrategyTree, nil
	case StrategyLazy:
		return StrategyLazy, nil
	default:
		return "", errors.NewInvalidInputError("folder_source", "must be \"tree\" or \"lazy\"")
	}
}

// NewSource builds the source for strategy on top of gw
func NewSource(strategy Strategy, gw gateway.Gateway) (FolderSource, error) {
	switch strategy {
	case StrategyTree, "":
		return NewTreeSource(gw), nil
	case StrategyLazy:
		return NewLazySource(gw), nil
	default:
		return nil, errors.NewInvalidInputError("folder_source", "unknown strategy "+string(strategy))
	}
}

// TreeSource fetches the full folder tree on first use and answers every
// later listing from that cache.
type TreeSource struct {
	gw    gateway.Gateway
	group singleflight.Group

	mu     sync.RWMutex
	tree   []gateway.Folder
	loaded bool
}

// NewTreeSource creates a TreeSource
func NewTreeSource(gw gateway.Gateway) *TreeSource {
	return &TreeSource{gw: gw}
}

// List resolves path against the cached tree. A path segment with no
// matching folder yields an empty listing, not an error.
func (s *TreeSource) List(ctx context.Context, path string) (Listing, error) {
	tree, err := s.load(ctx)
	if err != nil {
		return Listing{}, err
	}
	path = cleanPath(path)
	return Listing{Folders: walk(tree, path), CurrentPath: path}, nil
}

// Reload drops the cached tree so the next List fetches it again
func (s *TreeSource) Reload() {
	s.mu.Lock()
	s.tree = nil
	s.loaded = false
	s.mu.Unlock()
}

func (s *TreeSource) load(ctx context.Context) ([]gateway.Folder, error) {
	s.mu.RLock()
	if s.loaded {
		tree := s.tree
		s.mu.RUnlock()
		return tree, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.group.Do("tree", func() (interface{}, error) {
		s.mu.RLock()
		if s.loaded {
			tree := s.tree
			s.mu.RUnlock()
			return tree, nil
		}
		s.mu.RUnlock()

		resp, err := s.gw.GetExportFolders(ctx, gateway.FolderQuery{Recursive: true})
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.tree = resp.Folders
		s.loaded = true
		s.mu.Unlock()
		log.Debugf("cached export folder tree with %d top-level folders", len(resp.Folders))
		return resp.Folders, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]gateway.Folder), nil
}

func walk(tree []gateway.Folder, path string) []gateway.Folder {
	current := tree
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		var next []gateway.Folder
		found := false
		for _, f := range current {
			if f.Name == part {
				next = f.Children
				found = true
				break
			}
		}
		if !found {
			return []gateway.Folder{}
		}
		current = next
	}
	if current == nil {
		return []gateway.Folder{}
	}
	return current
}

// LazySource asks the backend for one directory level at a time. The
// backend's currentPath is authoritative.
type LazySource struct {
	gw    gateway.Gateway
	group singleflight.Group
}

// NewLazySource creates a LazySource
func NewLazySource(gw gateway.Gateway) *LazySource {
	return &LazySource{gw: gw}
}

// List fetches the immediate children of path
func (s *LazySource) List(ctx context.Context, path string) (Listing, error) {
	path = cleanPath(path)
	v, err, shared := s.group.Do(path, func() (interface{}, error) {
		resp, err := s.gw.GetExportFolders(ctx, gateway.FolderQuery{Path: path})
		if err != nil {
			return nil, err
		}
		current := resp.CurrentPath
		if current == "" && path != "" {
			current = path
		}
		folders := resp.Folders
		if folders == nil {
			folders = []gateway.Folder{}
		}
		return Listing{Folders: folders, CurrentPath: cleanPath(current)}, nil
	})
	if err != nil {
		return Listing{}, err
	}
	if shared {
		log.Debugf("shared in-flight folder listing for %q", path)
	}
	return v.(Listing), nil
}

// Filter hides folders whose name matches any of its glob patterns
type Filter struct {
	next     FolderSource
	patterns []glob.Glob
}

// NewFilter wraps next. An empty pattern list hides nothing.
func NewFilter(next FolderSource, patterns []string) (*Filter, error) {
	f := &Filter{next: next}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.NewInvalidInputError("hidden_folders", "invalid pattern "+p+": "+err.Error())
		}
		f.patterns = append(f.patterns, g)
	}
	return f, nil
}

// List lists via the wrapped source and drops hidden folders
func (f *Filter) List(ctx context.Context, path string) (Listing, error) {
	l, err := f.next.List(ctx, path)
	if err != nil || len(f.patterns) == 0 {
		return l, err
	}
	kept := make([]gateway.Folder, 0, len(l.Folders))
	for _, folder := range l.Folders {
		if !f.hidden(folder.Name) {
			kept = append(kept, folder)
		}
	}
	l.Folders = kept
	return l, nil
}

func (f *Filter) hidden(name string) bool {
	for _, g := range f.patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func cleanPath(p string) string {
	return strings.Trim(p, "/")
}
