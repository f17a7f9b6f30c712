package tui

import (
	"context"
	"testing"

	"mlibctl/internal/errors"
	"mlibctl/internal/gateway"
	"mlibctl/internal/gateway/gatewaytest"
	"mlibctl/internal/tagedit"
	"mlibctl/internal/tui/components"
	"mlibctl/internal/tui/styles"
	"mlibctl/pkg/testutils"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTagModel(fake *gatewaytest.Fake) (*TagModel, *tagedit.Controller) {
	tag := gateway.Tag{ID: "t1", Name: "Favourites", Color: "#2196F3"}
	fake.Tags = append(fake.Tags, tag)
	ctrl := tagedit.New(tag, fake, tagedit.NewLibrary(fake))
	return NewTagModel(context.Background(), ctrl, styles.FromColors(styles.DefaultColors)), ctrl
}

func TestTagModelSaveEnabledOnlyWhenChanged(t *testing.T) {
	m, ctrl := newTagModel(&gatewaytest.Fake{})

	assert.False(t, m.CanSave())
	_, cmd := m.Update(testutils.Key(tea.KeyCtrlS))
	assert.Nil(t, cmd)

	m.Update(testutils.Runes("!"))
	assert.Equal(t, "Favourites!", ctrl.Working().Name)
	assert.True(t, m.CanSave())

	m.Update(testutils.Key(tea.KeyBackspace))
	assert.False(t, m.CanSave())
}

func TestTagModelColorPicker(t *testing.T) {
	m, ctrl := newTagModel(&gatewaytest.Fake{})

	m.Update(testutils.Key(tea.KeyTab))
	m.Update(testutils.Key(tea.KeyTab))
	assert.Equal(t, components.FieldColor, m.form.Cursor())

	m.Update(testutils.Key(tea.KeyRight))
	assert.Equal(t, "#4CAF50", ctrl.Working().Color)
	assert.True(t, m.CanSave())
	assert.Contains(t, testutils.StripANSI(m.View()), "#4CAF50")

	m.Update(testutils.Key(tea.KeyLeft))
	assert.Equal(t, "#2196F3", ctrl.Working().Color)
	assert.False(t, m.CanSave())

	// wraps around the palette
	m.Update(testutils.Key(tea.KeyLeft))
	assert.Equal(t, "#607D8B", ctrl.Working().Color)
}

func TestTagModelColorlessTag(t *testing.T) {
	fake := &gatewaytest.Fake{}
	tag := gateway.Tag{ID: "t1", Name: "plain"}
	ctrl := tagedit.New(tag, fake, nil)
	m := NewTagModel(context.Background(), ctrl, styles.FromColors(styles.DefaultColors))

	assert.False(t, m.CanSave())
	m.Update(testutils.Key(tea.KeyTab))
	m.Update(testutils.Key(tea.KeyTab))
	assert.Equal(t, components.FieldColor, m.form.Cursor())
	assert.False(t, m.CanSave())
	assert.Empty(t, ctrl.Working().Color)
	assert.Contains(t, testutils.StripANSI(m.View()), "none")

	m.Update(testutils.Key(tea.KeyRight))
	assert.Equal(t, "#2196F3", ctrl.Working().Color)
	assert.True(t, m.CanSave())
}

func TestTagModelSave(t *testing.T) {
	fake := &gatewaytest.Fake{}
	m, ctrl := newTagModel(fake)

	m.Update(testutils.Key(tea.KeyTab))
	m.Update(testutils.Runes("my picks"))

	model, cmd := m.Update(testutils.Key(tea.KeyCtrlS))
	_, quit := testutils.Drain(t, model, cmd)
	assert.True(t, quit)
	assert.True(t, m.Saved())
	assert.True(t, m.Closed())
	assert.True(t, ctrl.Unchanged())

	require.Len(t, fake.Updates, 1)
	assert.Equal(t, "my picks", fake.Updates[0].Description)
	assert.Equal(t, 1, fake.TagLoads)
}

func TestTagModelSaveFailure(t *testing.T) {
	fake := &gatewaytest.Fake{}
	fake.UpdateFunc = func(ctx context.Context, tag gateway.Tag) (*gateway.Response, error) {
		return nil, errors.NewGatewayError(gateway.OpUpdateTag, "Tag name taken")
	}
	m, ctrl := newTagModel(fake)
	m.Update(testutils.Runes("2"))

	model, cmd := m.Update(testutils.Key(tea.KeyCtrlS))
	_, quit := testutils.Drain(t, model, cmd)
	assert.False(t, quit)
	assert.False(t, m.Saved())
	assert.Equal(t, "Tag name taken", m.ErrorMessage())
	assert.Equal(t, "Favourites", ctrl.Original().Name)
	assert.True(t, m.CanSave())
	assert.Contains(t, testutils.StripANSI(m.View()), "Tag name taken")
}

func TestTagModelEmptyName(t *testing.T) {
	fake := &gatewaytest.Fake{}
	m, _ := newTagModel(fake)
	m.form.SetValues("", "", "#2196F3")
	m.Update(testutils.Runes(" "))

	model, cmd := m.Update(testutils.Key(tea.KeyCtrlS))
	_, quit := testutils.Drain(t, model, cmd)
	assert.False(t, quit)
	assert.Contains(t, m.ErrorMessage(), "tag name cannot be empty")
	assert.Empty(t, fake.Updates)
}

func TestTagModelClose(t *testing.T) {
	m, _ := newTagModel(&gatewaytest.Fake{})
	m.Update(testutils.Runes("x"))

	_, cmd := m.Update(testutils.Key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Closed())
	assert.False(t, m.Saved())
}
