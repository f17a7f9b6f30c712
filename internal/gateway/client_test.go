package gateway_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mlibctl/internal/errors"
	"mlibctl/internal/gateway"
	"mlibctl/internal/gateway/gatewaytest"
	"mlibctl/internal/naming"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.Handler, opts ...gateway.ClientOption) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := gateway.NewClient(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	_, err := gateway.NewClient("")
	assert.True(t, errors.KindOf(err) == errors.InvalidInput)

	_, err = gateway.NewClient("ftp://example.com")
	assert.Error(t, err)

	c, err := gateway.NewClient("http://localhost:17442/")
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestClientAgainstFakeBackend(t *testing.T) {
	fake := &gatewaytest.Fake{
		Tree: gatewaytest.SampleTree(),
		Files: map[string]gateway.File{
			"uid-1": {UID: "uid-1", Title: "Big Buck Bunny", UploadDate: "2008-05-20"},
		},
		Tags: []gateway.Tag{{ID: "t1", Name: "favourites", Color: "#2196F3"}},
	}
	c := newClient(t, gatewaytest.Handler(fake))
	ctx := context.Background()

	t.Run("whole tree", func(t *testing.T) {
		resp, err := c.GetExportFolders(ctx, gateway.FolderQuery{Recursive: true})
		require.NoError(t, err)
		require.Len(t, resp.Folders, 3)
		assert.Equal(t, "Movies", resp.Folders[0].Name)
		assert.Len(t, resp.Folders[0].Children, 2)
	})

	t.Run("one level", func(t *testing.T) {
		resp, err := c.GetExportFolders(ctx, gateway.FolderQuery{Path: "Movies"})
		require.NoError(t, err)
		assert.Equal(t, "Movies", resp.CurrentPath)
		require.Len(t, resp.Folders, 2)
		assert.Equal(t, "Movies/Drama", resp.Folders[1].Path)
		assert.Nil(t, resp.Folders[1].Children)
	})

	t.Run("missing folder is a backend failure", func(t *testing.T) {
		_, err := c.GetExportFolders(ctx, gateway.FolderQuery{Path: "Nope"})
		require.Error(t, err)
		assert.True(t, errors.IsGatewayFailure(err))
		assert.Equal(t, "Folder not found", errors.UserMessage(err, ""))
	})

	t.Run("export", func(t *testing.T) {
		opts := gateway.ExportOptions{
			IncludeNFO:       true,
			NamingConvention: naming.KebabCase,
			CreateNewFolder:  true,
		}
		resp, err := c.ExportFile(ctx, "uid-1", "Movies", opts)
		require.NoError(t, err)
		assert.True(t, resp.Success)

		calls := fake.ExportCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, gatewaytest.ExportCall{UID: "uid-1", Path: "Movies", Options: opts}, calls[0])
	})

	t.Run("file", func(t *testing.T) {
		f, err := c.GetFile(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, "Big Buck Bunny", f.Title)

		_, err = c.GetFile(ctx, "missing")
		assert.True(t, errors.IsGatewayFailure(err))
	})

	t.Run("tags", func(t *testing.T) {
		_, err := c.UpdateTag(ctx, gateway.Tag{ID: "t1", Name: "faves", Color: "#4CAF50"})
		require.NoError(t, err)

		tags, err := c.GetAllTags(ctx)
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "faves", tags[0].Name)
	})
}

func TestClientWireFormat(t *testing.T) {
	var gotQuery, gotReqID, gotContentType string
	var gotBody map[string]interface{}

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/base/api/exportFile", r.URL.Path)
		gotQuery = r.URL.Query().Get("apiKey")
		gotReqID = r.Header.Get(gateway.RequestIDHeader)
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	srv := httptest.NewServer(h)
	defer srv.Close()

	c, err := gateway.NewClient(srv.URL+"/base/", gateway.WithAPIKey("secret"))
	require.NoError(t, err)

	_, err = c.ExportFile(context.Background(), "uid-9", "", gateway.ExportOptions{
		NamingConvention: naming.Custom,
		CustomFolderName: "My Folder",
		CreateNewFolder:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "secret", gotQuery)
	assert.NotEmpty(t, gotReqID)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "uid-9", gotBody["uid"])
	assert.Equal(t, "", gotBody["exportPath"])

	options, ok := gotBody["options"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "custom", options["namingConvention"])
	assert.Equal(t, "My Folder", options["customFolderName"])
	assert.Equal(t, true, options["createNewFolder"])
	assert.Equal(t, false, options["includeNfo"])
}

func TestClientErrorClassification(t *testing.T) {
	ctx := context.Background()

	t.Run("success false", func(t *testing.T) {
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"error":"Destination exists"}`))
		}))
		_, err := c.ExportFile(ctx, "u", "", gateway.ExportOptions{})
		require.Error(t, err)
		assert.True(t, errors.IsGatewayFailure(err))
		assert.Equal(t, "Destination exists", errors.UserMessage(err, "Export failed"))
	})

	t.Run("success false without message", func(t *testing.T) {
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false}`))
		}))
		_, err := c.ExportFile(ctx, "u", "", gateway.ExportOptions{})
		assert.Equal(t, "Export failed", errors.UserMessage(err, "Export failed"))
	})

	t.Run("server error", func(t *testing.T) {
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		_, err := c.UpdateTag(ctx, gateway.Tag{ID: "x"})
		assert.True(t, errors.IsTransportFailure(err))
		assert.Equal(t, errors.ConnectionMessage, errors.UserMessage(err, "Update failed"))
	})

	t.Run("error status with envelope", func(t *testing.T) {
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"error":"Invalid path"}`))
		}))
		_, err := c.GetExportFolders(ctx, gateway.FolderQuery{Path: "../etc"})
		assert.True(t, errors.IsTransportFailure(err))
		assert.Equal(t, errors.ConnectionMessage, errors.UserMessage(err, ""))
	})

	t.Run("malformed body", func(t *testing.T) {
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		_, err := c.GetAllTags(ctx)
		assert.True(t, errors.IsTransportFailure(err))
	})

	t.Run("timeout", func(t *testing.T) {
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(time.Second):
			case <-r.Context().Done():
			}
		}), gateway.WithTimeout(50*time.Millisecond))
		_, err := c.GetAllTags(ctx)
		assert.True(t, errors.IsTransportFailure(err))
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c, err := gateway.NewClient(url)
		require.NoError(t, err)
		_, err = c.GetAllTags(ctx)
		assert.True(t, errors.IsTransportFailure(err))
	})
}

func TestTagValueSemantics(t *testing.T) {
	a := gateway.Tag{ID: "1", Name: "x", Color: "#2196F3"}
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Name = "y"
	assert.False(t, a.Equal(b))
	assert.Equal(t, "x", a.Name)

	a.Extra = map[string]json.RawMessage{"count": json.RawMessage(`1`)}
	b = a.Clone()
	assert.True(t, a.Equal(b))
	b.Extra["count"] = json.RawMessage(`2`)
	assert.False(t, a.Equal(b))
	assert.Equal(t, "1", string(a.Extra["count"]))

	var plain gateway.Tag
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","name":"x"}`), &plain))
	assert.Nil(t, plain.Extra)
}

func TestTagKeepsUnknownFields(t *testing.T) {
	var sent map[string]interface{}
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/getAllTags":
			_, _ = w.Write([]byte(`{"success":true,"tags":[{"id":"t1","name":"Favorites","color":"#2196F3","usageCount":12,"createdAt":"2024-01-02"}]}`))
		case "/api/updateTag":
			var body struct {
				Tag map[string]interface{} `json:"tag"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			sent = body.Tag
			_, _ = w.Write([]byte(`{"success":true}`))
		}
	}))
	ctx := context.Background()

	tags, err := c.GetAllTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	tag := tags[0]
	assert.Equal(t, "Favorites", tag.Name)
	assert.Len(t, tag.Extra, 2)

	tag.Name = "Faves"
	_, err = c.UpdateTag(ctx, tag)
	require.NoError(t, err)
	assert.Equal(t, "Faves", sent["name"])
	assert.Equal(t, float64(12), sent["usageCount"])
	assert.Equal(t, "2024-01-02", sent["createdAt"])
	assert.NotContains(t, sent, "Extra")
}

func TestRecordingNotifier(t *testing.T) {
	var n gateway.RecordingNotifier
	n.Notify("one")
	n.Notify("two")
	assert.Equal(t, []string{"one", "two"}, n.Messages())

	var got string
	gateway.NotifierFunc(func(msg string) { got = msg }).Notify("three")
	assert.Equal(t, "three", got)
}
