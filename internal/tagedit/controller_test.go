package tagedit

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"mlibctl/internal/errors"
	"mlibctl/internal/gateway"
	"mlibctl/internal/gateway/gatewaytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTag() gateway.Tag {
	return gateway.Tag{ID: "t1", Name: "Favourites", Color: "#2196F3"}
}

func TestWorkingCopyIsIndependent(t *testing.T) {
	c := New(sampleTag(), &gatewaytest.Fake{}, nil)

	assert.True(t, c.Unchanged())
	assert.False(t, c.Changed())

	c.SetName("Faves")
	assert.Equal(t, "Faves", c.Working().Name)
	assert.Equal(t, "Favourites", c.Original().Name)
	assert.False(t, c.Unchanged())
	assert.True(t, c.Changed())

	// editing back to the original value is not a change
	c.SetName("Favourites")
	assert.True(t, c.Unchanged())
}

func TestSetColor(t *testing.T) {
	c := New(sampleTag(), &gatewaytest.Fake{}, nil)

	require.NoError(t, c.SetColor("#4caf50"))
	assert.Equal(t, "#4CAF50", c.Working().Color)

	err := c.SetColor("green")
	assert.Equal(t, errors.InvalidInput, errors.KindOf(err))
	assert.Equal(t, "#4CAF50", c.Working().Color)

	require.NoError(t, c.SetColor(""))
	assert.Empty(t, c.Working().Color)

	assert.Len(t, ColorOptions(), 8)
	assert.Contains(t, ColorOptions(), "#607D8B")
}

func TestSetColorBackToSavedColor(t *testing.T) {
	c := New(gateway.Tag{ID: "t1", Name: "plain", Color: "#abcdef"}, &gatewaytest.Fake{}, nil)

	require.NoError(t, c.SetColor("#123456"))
	assert.True(t, c.Changed())

	require.NoError(t, c.SetColor("#ABCDEF"))
	assert.Equal(t, "#abcdef", c.Working().Color)
	assert.False(t, c.Changed())

	// a colorless tag stays unchanged until a color is picked
	c = New(gateway.Tag{ID: "t2", Name: "none"}, &gatewaytest.Fake{}, nil)
	require.NoError(t, c.SetColor(""))
	assert.False(t, c.Changed())
	require.NoError(t, c.SetColor("#2196f3"))
	assert.Equal(t, "#2196F3", c.Working().Color)
	assert.True(t, c.Changed())
}

func TestExtraFieldsSurviveSave(t *testing.T) {
	fake := &gatewaytest.Fake{}
	tag := gateway.Tag{ID: "t1", Name: "Favourites", Extra: map[string]json.RawMessage{"usageCount": json.RawMessage(`12`)}}
	c := New(tag, fake, nil)

	c.SetName("Faves")
	require.NoError(t, c.Save(context.Background()))
	require.Len(t, fake.Updates, 1)
	assert.JSONEq(t, "12", string(fake.Updates[0].Extra["usageCount"]))
	assert.True(t, c.Unchanged())
}

func TestReset(t *testing.T) {
	c := New(sampleTag(), &gatewaytest.Fake{}, nil)
	c.SetName("x")
	c.SetDescription("y")
	c.Reset()
	assert.Equal(t, sampleTag(), c.Working())
	assert.True(t, c.Unchanged())
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	fake := &gatewaytest.Fake{Tags: []gateway.Tag{sampleTag(), {ID: "t2", Name: "Archive"}}}
	lib := NewLibrary(fake)
	require.NoError(t, lib.LoadTags(ctx))

	c := New(sampleTag(), fake, lib)
	c.SetName("Best")
	c.SetDescription("hand picked")

	require.NoError(t, c.Save(ctx))
	assert.False(t, c.Updating())
	assert.Empty(t, c.ErrorMessage())
	assert.True(t, c.Unchanged())
	assert.Equal(t, "Best", c.Original().Name)

	require.Len(t, fake.Updates, 1)
	assert.Equal(t, gateway.Tag{ID: "t1", Name: "Best", Color: "#2196F3", Description: "hand picked"}, fake.Updates[0])

	// shared list was refreshed
	assert.Equal(t, 2, fake.TagLoads)
	found, err := lib.Find("t1")
	require.NoError(t, err)
	assert.Equal(t, "Best", found.Name)
}

func TestSaveFailureKeepsOriginal(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"backend", errors.NewGatewayError(gateway.OpUpdateTag, "Tag name taken"), "Tag name taken"},
		{"transport", errors.NewTransportError(gateway.OpUpdateTag, fmt.Errorf("EOF")), errors.ConnectionMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &gatewaytest.Fake{}
			fake.UpdateFunc = func(ctx context.Context, tag gateway.Tag) (*gateway.Response, error) {
				return nil, tt.err
			}
			c := New(sampleTag(), fake, NewLibrary(fake))
			c.SetName("Changed")

			err := c.Save(context.Background())
			require.Error(t, err)
			assert.False(t, c.Updating())
			assert.Equal(t, tt.expected, c.ErrorMessage())
			assert.Equal(t, "Favourites", c.Original().Name)
			assert.Equal(t, "Changed", c.Working().Name)
			assert.True(t, c.Changed())
			assert.Zero(t, fake.TagLoads)
		})
	}
}

func TestSaveRejectsEmptyName(t *testing.T) {
	fake := &gatewaytest.Fake{}
	c := New(sampleTag(), fake, nil)
	c.SetName("   ")

	err := c.Save(context.Background())
	assert.Equal(t, errors.InvalidInput, errors.KindOf(err))
	assert.Empty(t, fake.Updates)
}

func TestSaveInFlightGuard(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fake := &gatewaytest.Fake{}
	fake.UpdateFunc = func(ctx context.Context, tag gateway.Tag) (*gateway.Response, error) {
		close(started)
		<-release
		return &gateway.Response{Success: true}, nil
	}
	c := New(sampleTag(), fake, nil)
	c.SetName("Other")

	errCh := make(chan error, 1)
	go func() { errCh <- c.Save(context.Background()) }()
	<-started

	assert.True(t, c.Updating())
	assert.True(t, errors.IsBusy(c.Save(context.Background())))

	close(release)
	require.NoError(t, <-errCh)
	assert.False(t, c.Updating())
}

func TestLibraryFind(t *testing.T) {
	fake := &gatewaytest.Fake{Tags: []gateway.Tag{{ID: "b", Name: "beta"}, {ID: "a", Name: "Alpha"}}}
	lib := NewLibrary(fake)
	require.NoError(t, lib.LoadTags(context.Background()))

	assert.Equal(t, []string{"Alpha", "beta"}, []string{lib.Tags()[0].Name, lib.Tags()[1].Name})

	tag, err := lib.Find("ALPHA")
	require.NoError(t, err)
	assert.Equal(t, "a", tag.ID)

	_, err = lib.Find("gamma")
	assert.True(t, errors.IsNotFound(err))
}
