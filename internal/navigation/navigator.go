// Package navigation implements folder browsing for the export dialog.
//
// A Navigator tracks the current folder and a back stack. Where folder
// listings come from is decided by a FolderSource chosen at construction:
// TreeSource caches the whole tree, LazySource fetches one level per move.
// The Navigator behaves identically over either.
package navigation

import (
	"context"
	"sync"

	"mlibctl/internal/errors"
	"mlibctl/internal/gateway"
	"mlibctl/internal/log"
)

// LoadFailedMessage is shown when the backend rejects a listing without
// saying why.
const LoadFailedMessage = "Failed to load folders"

// State is a snapshot of where the navigator is
type State struct {
	CurrentPath string
	History     []string
}

// Navigator is the folder browsing state machine. It is safe for use from
// several goroutines; listings that arrive after a newer navigation started
// are discarded.
type Navigator struct {
	source FolderSource

	mu      sync.RWMutex
	current string
	history []string
	folders []gateway.Folder
	loading bool
	err     error
	errMsg  string
	seq     uint64
}

// New creates a navigator at the export root
func New(source FolderSource) *Navigator {
	return &Navigator{source: source}
}

// Load lists the current folder. It is used for the initial listing and
// for refreshes.
func (n *Navigator) Load(ctx context.Context) error {
	n.mu.Lock()
	path := n.current
	n.mu.Unlock()
	return n.load(ctx, path)
}

func (n *Navigator) load(ctx context.Context, path string) error {
	n.mu.Lock()
	n.seq++
	seq := n.seq
	n.loading = true
	n.err = nil
	n.errMsg = ""
	n.mu.Unlock()

	listing, err := n.source.List(ctx, path)

	n.mu.Lock()
	defer n.mu.Unlock()
	if seq != n.seq {
		// a newer navigation owns the state now
		return err
	}
	n.loading = false
	if err != nil {
		n.err = err
		n.errMsg = errors.UserMessage(err, LoadFailedMessage)
		n.folders = nil
		if errors.IsTransportFailure(err) {
			log.LogWithError(err).Error("folder listing failed")
		}
		return err
	}
	n.folders = listing.Folders
	if listing.CurrentPath != n.current {
		log.Debugf("backend moved navigation from %q to %q", n.current, listing.CurrentPath)
		n.current = listing.CurrentPath
	}
	return nil
}

// NavigateTo enters folder, remembering the current path for Back
func (n *Navigator) NavigateTo(ctx context.Context, folder gateway.Folder) error {
	n.mu.Lock()
	n.history = append(n.history, n.current)
	n.current = cleanPath(folder.Path)
	path := n.current
	n.mu.Unlock()
	return n.load(ctx, path)
}

// Back returns to the most recently visited path. It does nothing when
// there is no history.
func (n *Navigator) Back(ctx context.Context) error {
	n.mu.Lock()
	if len(n.history) == 0 {
		n.mu.Unlock()
		return nil
	}
	last := len(n.history) - 1
	n.current = n.history[last]
	n.history = n.history[:last]
	path := n.current
	n.mu.Unlock()
	return n.load(ctx, path)
}

// Home clears the history and returns to the root
func (n *Navigator) Home(ctx context.Context) error {
	n.mu.Lock()
	n.history = nil
	n.current = ""
	n.mu.Unlock()
	return n.load(ctx, "")
}

// CanGoBack reports whether the current folder is below the root
func (n *Navigator) CanGoBack() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current != ""
}

// CurrentPath returns the current path relative to the export root
func (n *Navigator) CurrentPath() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

// Display returns the current path for showing: "/" at the root
func (n *Navigator) Display() string {
	return DisplayPath(n.CurrentPath())
}

// DisplayPath renders a relative path with a leading slash
func DisplayPath(path string) string {
	if path == "" {
		return "/"
	}
	return "/" + path
}

// History returns a copy of the back stack, oldest first
func (n *Navigator) History() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, len(n.history))
	copy(out, n.history)
	return out
}

// State returns a snapshot of path and history
func (n *Navigator) State() State {
	n.mu.RLock()
	defer n.mu.RUnlock()
	h := make([]string, len(n.history))
	copy(h, n.history)
	return State{CurrentPath: n.current, History: h}
}

// Folders returns the folders of the last successful listing
func (n *Navigator) Folders() []gateway.Folder {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]gateway.Folder, len(n.folders))
	copy(out, n.folders)
	return out
}

// Loading reports whether a listing is in flight
func (n *Navigator) Loading() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.loading
}

// Err returns the error of the last listing, if it failed
func (n *Navigator) Err() error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.err
}

// ErrorMessage returns the user-facing text for Err, or ""
func (n *Navigator) ErrorMessage() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.errMsg
}
