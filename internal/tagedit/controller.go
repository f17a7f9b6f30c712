// Package tagedit holds the state behind the tag editing dialog.
//
// The controller keeps the last saved tag and a working copy. Edits only
// touch the working copy; Save sends it to the backend and, once accepted,
// makes it the new saved state.
package tagedit

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"mlibctl/internal/errors"
	"mlibctl/internal/gateway"
	"mlibctl/internal/log"
)

// UpdateFailedMessage is shown when the backend rejects a save without
// saying why
const UpdateFailedMessage = "Failed to update tag"

var colorOptions = []string{
	"#2196F3", "#4CAF50", "#FF9800", "#F44336",
	"#9C27B0", "#00BCD4", "#795548", "#607D8B",
}

// ColorOptions returns the palette offered by the dialog
func ColorOptions() []string {
	out := make([]string, len(colorOptions))
	copy(out, colorOptions)
	return out
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Refresher reloads a shared tag collection after a change
type Refresher interface {
	LoadTags(ctx context.Context) error
}

// Controller is the tag dialog's state. All methods are safe for
// concurrent use.
type Controller struct {
	gw      gateway.Gateway
	library Refresher

	mu       sync.Mutex
	original gateway.Tag
	working  gateway.Tag
	updating bool
	errMsg   string
}

// New creates a controller editing tag. library may be nil.
func New(tag gateway.Tag, gw gateway.Gateway, library Refresher) *Controller {
	return &Controller{
		gw:       gw,
		library:  library,
		original: tag.Clone(),
		working:  tag.Clone(),
	}
}

// Original returns the last saved tag
func (c *Controller) Original() gateway.Tag {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.original.Clone()
}

// Working returns the edited tag
func (c *Controller) Working() gateway.Tag {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.working.Clone()
}

func (c *Controller) SetName(name string) {
	c.mu.Lock()
	c.working.Name = name
	c.mu.Unlock()
}

func (c *Controller) SetDescription(desc string) {
	c.mu.Lock()
	c.working.Description = desc
	c.mu.Unlock()
}

// SetColor sets a #RRGGBB color. The palette is a suggestion; any hex
// color is accepted. Colors compare without case, and picking the saved
// color again restores its saved spelling.
func (c *Controller) SetColor(color string) error {
	color = strings.TrimSpace(color)
	if color != "" && !hexColor.MatchString(color) {
		return errors.NewInvalidInputError("color", "must look like #RRGGBB")
	}
	c.mu.Lock()
	switch {
	case strings.EqualFold(color, c.original.Color):
		c.working.Color = c.original.Color
	case !strings.EqualFold(color, c.working.Color):
		c.working.Color = strings.ToUpper(color)
	}
	c.mu.Unlock()
	return nil
}

// Unchanged reports whether the working copy still equals the saved tag
func (c *Controller) Unchanged() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.working.Equal(c.original)
}

// Changed reports whether there is anything to save
func (c *Controller) Changed() bool {
	return !c.Unchanged()
}

// Reset discards edits
func (c *Controller) Reset() {
	c.mu.Lock()
	c.working = c.original.Clone()
	c.errMsg = ""
	c.mu.Unlock()
}

// Updating reports whether a save is in flight
func (c *Controller) Updating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updating
}

// ErrorMessage is the inline error of the last save, or ""
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Save sends the working copy. On success it becomes the saved tag and the
// shared tag list is refreshed. A second call while one is in flight fails
// with errors.ErrBusy.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.updating {
		c.mu.Unlock()
		return errors.ErrBusy
	}
	if strings.TrimSpace(c.working.Name) == "" {
		c.mu.Unlock()
		return errors.NewInvalidInputError("name", "tag name cannot be empty")
	}
	c.updating = true
	c.errMsg = ""
	sent := c.working.Clone()
	c.mu.Unlock()

	logger := log.LogWithFields(log.F("tag", sent.ID))
	_, err := c.gw.UpdateTag(ctx, sent)

	c.mu.Lock()
	c.updating = false
	if err != nil {
		c.errMsg = errors.UserMessage(err, UpdateFailedMessage)
		c.mu.Unlock()
		logger.WithError(err).Error("tag update failed")
		return err
	}
	c.original = sent
	c.mu.Unlock()

	logger.Debug("tag updated")
	if c.library != nil {
		if err := c.library.LoadTags(ctx); err != nil {
			// the save itself went through; a stale list is not fatal
			logger.WithError(err).Warn("refreshing tags failed")
		}
	}
	return nil
}
