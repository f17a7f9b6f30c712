// Package export holds the state behind the export dialog: which folder the
// file goes to, what the new folder is called and which options are sent.
package export

import (
	"context"
	"sync"
	"time"

	"mlibctl/internal/errors"
	"mlibctl/internal/gateway"
	"mlibctl/internal/log"
	"mlibctl/internal/naming"
	"mlibctl/internal/navigation"
)

const (
	// DefaultCloseDelay leaves the success message visible before closing
	DefaultCloseDelay = 1500 * time.Millisecond

	SuccessMessage = "File exported successfully"
	FailedMessage  = "Export failed"
)

// Options are the initial form values
type Options struct {
	IncludeNFO         bool
	UseSimpleFilenames bool
	CreateNewFolder    bool
	Convention         naming.Convention
	CloseDelay         time.Duration
}

// DefaultOptions mirrors the dialog's defaults
func DefaultOptions() Options {
	return Options{
		IncludeNFO:      true,
		CreateNewFolder: true,
		Convention:      naming.Original,
		CloseDelay:      DefaultCloseDelay,
	}
}

// Result is delivered once when the dialog closes
type Result struct {
	Exported bool
	Path     string
}

// Controller is the export dialog's state. All methods are safe for
// concurrent use.
type Controller struct {
	file     gateway.File
	nav      *navigation.Navigator
	gw       gateway.Gateway
	notifier gateway.Notifier
	delay    time.Duration

	mu                 sync.Mutex
	folderName         string
	convention         naming.Convention
	custom             bool
	includeNFO         bool
	useSimpleFilenames bool
	createNewFolder    bool
	exporting          bool
	succeeded          bool
	exportErr          string
	closed             bool
	timer              *time.Timer

	done      chan Result
	closeOnce sync.Once
}

// New creates the controller for file. The folder name starts out as the
// name generated by opts.Convention.
func New(file gateway.File, nav *navigation.Navigator, gw gateway.Gateway, notifier gateway.Notifier, opts Options) *Controller {
	if notifier == nil {
		notifier = gateway.LogNotifier{}
	}
	if opts.CloseDelay <= 0 {
		opts.CloseDelay = DefaultCloseDelay
	}
	c := &Controller{
		file:               file,
		nav:                nav,
		gw:                 gw,
		notifier:           notifier,
		delay:              opts.CloseDelay,
		includeNFO:         opts.IncludeNFO,
		useSimpleFilenames: opts.UseSimpleFilenames,
		createNewFolder:    opts.CreateNewFolder,
		done:               make(chan Result, 1),
	}
	c.convention = naming.Original
	c.folderName = naming.Generate(file.Title, file.UploadDate, naming.Original)
	if opts.Convention != "" && opts.Convention != naming.Custom {
		c.SetConvention(opts.Convention)
	}
	return c
}

// File returns the record being exported
func (c *Controller) File() gateway.File {
	return c.file
}

// Navigator returns the folder browser
func (c *Controller) Navigator() *navigation.Navigator {
	return c.nav
}

// LoadFolders lists the current folder
func (c *Controller) LoadFolders(ctx context.Context) error {
	return c.nav.Load(ctx)
}

// SetConvention picks a naming convention and regenerates the folder name.
// Choosing Custom keeps whatever was typed.
func (c *Controller) SetConvention(conv naming.Convention) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if conv == naming.Custom {
		c.custom = true
		return
	}
	c.convention = conv
	c.folderName = naming.Generate(c.file.Title, c.file.UploadDate, conv)
	c.custom = false
}

// SetFolderName records typed text. A name equal to one of the generated
// names switches to that convention; anything else makes the name custom.
func (c *Controller) SetFolderName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.folderName = name
	if conv, ok := naming.Match(c.file.Title, c.file.UploadDate, name); ok {
		c.convention = conv
		c.custom = false
		return
	}
	c.custom = true
}

func (c *Controller) SetIncludeNFO(v bool) {
	c.mu.Lock()
	c.includeNFO = v
	c.mu.Unlock()
}

func (c *Controller) SetUseSimpleFilenames(v bool) {
	c.mu.Lock()
	c.useSimpleFilenames = v
	c.mu.Unlock()
}

func (c *Controller) SetCreateNewFolder(v bool) {
	c.mu.Lock()
	c.createNewFolder = v
	c.mu.Unlock()
}

// FolderName returns the folder name as currently shown
func (c *Controller) FolderName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.folderName
}

// Convention returns the effective convention: Custom when the typed name
// matches none of the generated ones.
func (c *Controller) Convention() naming.Convention {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.custom {
		return naming.Custom
	}
	return c.convention
}

// IsCustomName reports whether the folder name was typed by hand
func (c *Controller) IsCustomName() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.custom
}

func (c *Controller) IncludeNFO() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.includeNFO
}

func (c *Controller) UseSimpleFilenames() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.useSimpleFilenames
}

func (c *Controller) CreateNewFolder() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.createNewFolder
}

// Preview renders template placeholders in a custom name for display. It
// returns "" when there is nothing to render.
func (c *Controller) Preview() string {
	c.mu.Lock()
	name, custom := c.folderName, c.custom
	c.mu.Unlock()
	if !custom || !naming.HasPlaceholders(name) {
		return ""
	}
	return naming.Preview(name, c.file.NamingFields())
}

// FullExportPath is where the export will land, for display
func (c *Controller) FullExportPath() string {
	c.mu.Lock()
	name, create := c.folderName, c.createNewFolder
	c.mu.Unlock()

	base := c.nav.Display()
	if !create {
		return base
	}
	if name == "" {
		name = "..."
	}
	sep := "/"
	if base == "/" {
		sep = ""
	}
	return base + sep + name
}

// BuildOptions assembles what Submit sends
func (c *Controller) BuildOptions() gateway.ExportOptions {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buildOptionsLocked()
}

func (c *Controller) buildOptionsLocked() gateway.ExportOptions {
	opts := gateway.ExportOptions{
		IncludeNFO:         c.includeNFO,
		UseSimpleFilenames: c.useSimpleFilenames,
		NamingConvention:   c.convention,
		CreateNewFolder:    c.createNewFolder,
	}
	if c.custom {
		opts.NamingConvention = naming.Custom
		if c.createNewFolder {
			opts.CustomFolderName = c.folderName
		}
	}
	return opts
}

// Submit sends the export request. A second call while one is in flight
// fails with errors.ErrBusy, and one after a success with
// errors.ErrAlreadyExported. On success the dialog closes itself after the
// configured delay; on failure ExportError explains why and the dialog
// stays open.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errors.New("dialog is closed")
	}
	if c.exporting {
		c.mu.Unlock()
		return errors.ErrBusy
	}
	if c.succeeded {
		c.mu.Unlock()
		return errors.ErrAlreadyExported
	}
	c.exporting = true
	c.exportErr = ""
	opts := c.buildOptionsLocked()
	c.mu.Unlock()

	path := c.nav.CurrentPath()
	logger := log.LogWithFields(log.F("uid", c.file.UID), log.F("path", path), log.F("convention", string(opts.NamingConvention)))
	logger.Debug("submitting export")

	_, err := c.gw.ExportFile(ctx, c.file.UID, path, opts)

	c.mu.Lock()
	c.exporting = false
	if c.closed {
		// dialog went away while the request was pending
		c.mu.Unlock()
		return err
	}
	if err != nil {
		c.exportErr = errors.UserMessage(err, FailedMessage)
		c.mu.Unlock()
		if errors.IsTransportFailure(err) {
			logger.WithError(err).Error("export request failed")
		}
		return err
	}
	c.succeeded = true
	c.timer = time.AfterFunc(c.delay, func() {
		c.finish(true)
	})
	c.mu.Unlock()

	c.notifier.Notify(SuccessMessage)
	logger.Info("file exported")
	return nil
}

// Exporting reports whether a request is in flight
func (c *Controller) Exporting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exporting
}

// Succeeded reports whether the last submission succeeded
func (c *Controller) Succeeded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.succeeded
}

// ExportError is the inline error of the last submission, or ""
func (c *Controller) ExportError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exportErr
}

// Done delivers the dialog's Result once, then is closed
func (c *Controller) Done() <-chan Result {
	return c.done
}

// Close dismisses the dialog. Pending requests keep running but their
// outcome no longer changes the dialog.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	exported := c.succeeded
	c.mu.Unlock()
	c.finish(exported)
}

// Closed reports whether the dialog has been dismissed
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) finish(exported bool) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		r := Result{Exported: exported}
		if exported {
			r.Path = c.FullExportPath()
		}
		c.done <- r
		close(c.done)
	})
}
