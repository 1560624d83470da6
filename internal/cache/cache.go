// Package cache keeps the last successfully fetched collection per
// (project, kind) on disk, so a relaunch can paint the previous state
// immediately while the first network load is in flight.
package cache

import (
	"encoding/json"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/Yugz29/DevNote/internal/model"
)

type Store struct {
	d *diskv.Diskv
}

func Open(dir string) *Store {
	transform := func(key string) *diskv.PathKey {
		parts := strings.Split(key, "/")
		return &diskv.PathKey{
			Path:     parts[:len(parts)-1],
			FileName: parts[len(parts)-1] + ".json",
		}
	}
	inverse := func(pk *diskv.PathKey) string {
		name := strings.TrimSuffix(pk.FileName, ".json")
		return strings.Join(append(append([]string{}, pk.Path...), name), "/")
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:          dir,
			AdvancedTransform: transform,
			InverseTransform:  inverse,
			CacheSizeMax:      1 << 20,
		}),
	}
}

func key(kind model.Kind, projectID string) string {
	return string(kind) + "/" + projectID
}

// Put stores a collection snapshot. Best effort; write failures are dropped.
func Put[T any](s *Store, kind model.Kind, projectID string, items []T) {
	if s == nil || projectID == "" {
		return
	}
	b, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = s.d.Write(key(kind, projectID), b)
}

// Get returns the cached collection and whether one exists.
func Get[T any](s *Store, kind model.Kind, projectID string) ([]T, bool) {
	if s == nil || projectID == "" {
		return nil, false
	}
	b, err := s.d.Read(key(kind, projectID))
	if err != nil {
		return nil, false
	}
	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, false
	}
	return items, true
}

// Drop removes a cached collection (used after a project is deleted).
func (s *Store) Drop(kind model.Kind, projectID string) {
	if s == nil || projectID == "" {
		return
	}
	_ = s.d.Erase(key(kind, projectID))
}
