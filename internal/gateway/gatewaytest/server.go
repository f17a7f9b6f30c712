package gatewaytest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"mlibctl/internal/errors"
	"mlibctl/internal/gateway"
)

// Handler serves the backend HTTP API from a Fake, so the real Client can be
// exercised end to end with httptest.
func Handler(f *Fake) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		op := strings.TrimPrefix(r.URL.Path, "/api/")
		ctx := r.Context()

		switch op {
		case gateway.OpGetExportFolders:
			var q gateway.FolderQuery
			if !decode(w, r, &q) {
				return
			}
			resp, err := f.GetExportFolders(ctx, q)
			reply(w, resp, err)
		case gateway.OpExportFile:
			var req struct {
				UID     string                `json:"uid"`
				Path    string                `json:"exportPath"`
				Options gateway.ExportOptions `json:"options"`
			}
			if !decode(w, r, &req) {
				return
			}
			resp, err := f.ExportFile(ctx, req.UID, req.Path, req.Options)
			reply(w, resp, err)
		case gateway.OpUpdateTag:
			var req struct {
				Tag gateway.Tag `json:"tag"`
			}
			if !decode(w, r, &req) {
				return
			}
			resp, err := f.UpdateTag(ctx, req.Tag)
			reply(w, resp, err)
		case gateway.OpGetAllTags:
			tags, err := f.GetAllTags(ctx)
			reply(w, map[string]interface{}{"success": true, "tags": tags}, err)
		case gateway.OpGetFile:
			var req struct {
				UID string `json:"uid"`
			}
			if !decode(w, r, &req) {
				return
			}
			file, err := f.GetFile(context.Background(), req.UID)
			reply(w, map[string]interface{}{"success": true, "file": file}, err)
		default:
			http.NotFound(w, r)
		}
	})
	return mux
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func reply(w http.ResponseWriter, v interface{}, err error) {
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		msg := err.Error()
		var gwErr *errors.GatewayError
		if errors.As(err, &gwErr) && gwErr.Message() != "" {
			msg = gwErr.Message()
		}
		_ = json.NewEncoder(w).Encode(gateway.Response{Success: false, Error: msg})
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}
