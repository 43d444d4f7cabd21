// Package localstore persists the small pieces of client state that should
// survive a reload: unsaved task drafts, the all-tasks search string, and the
// all-tasks filter selection. Values live in a pluggable key/value backend;
// corrupt or missing entries degrade to zero values so a broken store never
// blocks the UI path.
package localstore

import (
	"context"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"boardsync/domain"
)

const (
	draftsKey = "taskDialogDrafts"
	searchKey = "allTasksSearch"
	filterKey = "allTasksFilter"
)

// Backend is a durable key/value store.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// TaskDraft is a partially filled task captured when a dialog is dismissed
// before saving.
type TaskDraft struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Priority    domain.Priority `json:"priority,omitempty"`
	Status      domain.Status   `json:"status,omitempty"`
	AssigneeID  int             `json:"assigneeId,omitempty"`
	BoardID     int             `json:"boardId,omitempty"`
	BoardName   string          `json:"boardName,omitempty"`
}

// DraftStore keeps the ordered list of task drafts.
type DraftStore struct {
	b   Backend
	log *log.Logger
}

// NewDraftStore creates a DraftStore over the given backend.
func NewDraftStore(b Backend, logger *log.Logger) *DraftStore {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &DraftStore{b: b, log: logger}
}

// Drafts returns the stored drafts, oldest first. Missing or unreadable data
// yields an empty list.
func (d *DraftStore) Drafts(ctx context.Context) []TaskDraft {
	data, ok, err := d.b.Load(ctx, draftsKey)
	if err != nil || !ok {
		if err != nil {
			d.log.WithError(err).Warn("failed to load task drafts")
		}
		return nil
	}
	var drafts []TaskDraft
	if err := sonic.ConfigStd.Unmarshal(data, &drafts); err != nil {
		d.log.WithError(err).Warn("discarding corrupt task drafts")
		return nil
	}
	return drafts
}

// Save replaces the stored draft list.
func (d *DraftStore) Save(ctx context.Context, drafts []TaskDraft) error {
	data, err := sonic.ConfigStd.Marshal(drafts)
	if err != nil {
		return err
	}
	return d.b.Save(ctx, draftsKey, data)
}

// Add appends one draft to the stored list.
func (d *DraftStore) Add(ctx context.Context, draft TaskDraft) error {
	return d.Save(ctx, append(d.Drafts(ctx), draft))
}

// Remove deletes the draft at the given index. Out-of-range indexes are a
// no-op.
func (d *DraftStore) Remove(ctx context.Context, idx int) error {
	drafts := d.Drafts(ctx)
	if idx < 0 || idx >= len(drafts) {
		return nil
	}
	return d.Save(ctx, append(drafts[:idx], drafts[idx+1:]...))
}

// Filter is the all-tasks filter selection. Empty lists mean no constraint
// on that dimension.
type Filter struct {
	Priorities []string `json:"priorities"`
	Statuses   []string `json:"statuses"`
	Boards     []string `json:"boards"`
}

// Match reports whether t passes the selection. Priorities and statuses are
// matched by wire code, boards by name.
func (f Filter) Match(t domain.Task) bool {
	if len(f.Priorities) > 0 && !contains(f.Priorities, string(t.Priority)) {
		return false
	}
	if len(f.Statuses) > 0 && !contains(f.Statuses, string(t.Status)) {
		return false
	}
	if len(f.Boards) > 0 && !contains(f.Boards, t.BoardName) {
		return false
	}
	return true
}

// MatchSearch reports whether t's title contains query case-insensitively,
// or query is exactly the task's id. An empty query matches everything.
func MatchSearch(t domain.Task, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), strings.ToLower(query)) {
		return true
	}
	return query == strconv.Itoa(t.ID)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// FilterStore keeps the all-tasks search string and filter selection.
type FilterStore struct {
	b   Backend
	log *log.Logger
}

// NewFilterStore creates a FilterStore over the given backend.
func NewFilterStore(b Backend, logger *log.Logger) *FilterStore {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &FilterStore{b: b, log: logger}
}

// Search returns the stored search string, or "" when absent.
func (f *FilterStore) Search(ctx context.Context) string {
	data, ok, err := f.b.Load(ctx, searchKey)
	if err != nil || !ok {
		if err != nil {
			f.log.WithError(err).Warn("failed to load search string")
		}
		return ""
	}
	var s string
	if err := sonic.ConfigStd.Unmarshal(data, &s); err != nil {
		f.log.WithError(err).Warn("discarding corrupt search string")
		return ""
	}
	return s
}

// SaveSearch stores the search string.
func (f *FilterStore) SaveSearch(ctx context.Context, s string) error {
	data, err := sonic.ConfigStd.Marshal(s)
	if err != nil {
		return err
	}
	return f.b.Save(ctx, searchKey, data)
}

// Filter returns the stored selection, or the zero selection when absent.
func (f *FilterStore) Filter(ctx context.Context) Filter {
	data, ok, err := f.b.Load(ctx, filterKey)
	if err != nil || !ok {
		if err != nil {
			f.log.WithError(err).Warn("failed to load filter selection")
		}
		return Filter{}
	}
	var sel Filter
	if err := sonic.ConfigStd.Unmarshal(data, &sel); err != nil {
		f.log.WithError(err).Warn("discarding corrupt filter selection")
		return Filter{}
	}
	return sel
}

// SaveFilter stores the selection.
func (f *FilterStore) SaveFilter(ctx context.Context, sel Filter) error {
	data, err := sonic.ConfigStd.Marshal(sel)
	if err != nil {
		return err
	}
	return f.b.Save(ctx, filterKey, data)
}
