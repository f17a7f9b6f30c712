package tagedit

import (
	"context"
	"sort"
	"strings"
	"sync"

	"mlibctl/internal/errors"
	"mlibctl/internal/gateway"
)

// Library is the shared, refreshable list of tags
type Library struct {
	gw gateway.Gateway

	mu   sync.RWMutex
	tags []gateway.Tag
}

// NewLibrary creates an empty library backed by gw
func NewLibrary(gw gateway.Gateway) *Library {
	return &Library{gw: gw}
}

// LoadTags replaces the list with the backend's current tags
func (l *Library) LoadTags(ctx context.Context) error {
	tags, err := l.gw.GetAllTags(ctx)
	if err != nil {
		return errors.Wrap(err, "load tags")
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return strings.ToLower(tags[i].Name) < strings.ToLower(tags[j].Name)
	})
	l.mu.Lock()
	l.tags = tags
	l.mu.Unlock()
	return nil
}

// Tags returns a copy of the list
func (l *Library) Tags() []gateway.Tag {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]gateway.Tag, len(l.tags))
	copy(out, l.tags)
	return out
}

// Find looks a tag up by id, falling back to a case-insensitive name match
func (l *Library) Find(key string) (gateway.Tag, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, t := range l.tags {
		if t.ID == key {
			return t, nil
		}
	}
	for _, t := range l.tags {
		if strings.EqualFold(t.Name, key) {
			return t, nil
		}
	}
	return gateway.Tag{}, errors.NotFoundf("tag %q not found", key)
}
