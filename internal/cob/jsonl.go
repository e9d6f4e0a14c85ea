package cob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"pkt.systems/pslog"
)

// FileName is the object log inside the cob directory.
const FileName = "cobs.jsonl"

type recordType string

const (
	recordIssue        recordType = "issue"
	recordPatch        recordType = "patch"
	recordNotification recordType = "notification"
)

// record is one line of the object log. A later record for the same object
// replaces the earlier one.
type record struct {
	Type         recordType    `json:"type"`
	Issue        *Issue        `json:"issue,omitempty"`
	Patch        *Patch        `json:"patch,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}

func (r record) objectID() string {
	switch {
	case r.Type == recordIssue && r.Issue != nil:
		return r.Issue.ID
	case r.Type == recordPatch && r.Patch != nil:
		return r.Patch.ID
	case r.Type == recordNotification && r.Notification != nil:
		return r.Notification.ID
	}
	return ""
}

// JSONL is a Repository and Writer backed by an append-only JSONL file.
// Appends take an advisory file lock so several flux processes can share a
// repository; records written by another process are picked up on the next
// read.
type JSONL struct {
	file    *os.File
	lock    *flock.Flock
	mu      sync.Mutex
	idx     *fileIndex
	pos     int64 // end of the last complete, indexed line
	project string
	log     pslog.Logger
	closed  bool

	now   func() time.Time
	newID func() string
}

// OpenJSONL opens (or creates) the object log in dir and indexes the
// records already in it. Malformed lines are logged and skipped.
func OpenJSONL(ctx context.Context, dir, project string) (*JSONL, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cob: mkdir %q: %w", dir, err)
	}
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("cob: open %q: %w", path, err)
	}
	j := &JSONL{
		file:    f,
		lock:    flock.New(path + ".lock"),
		idx:     newFileIndex(),
		project: project,
		log:     pslog.Ctx(ctx).With("cob_log", path),
		now:     time.Now,
		newID:   func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
	}
	if err := j.catchUp(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return j, nil
}

// Project implements Repository.
func (j *JSONL) Project() string { return j.project }

// Close closes the underlying file.
func (j *JSONL) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.file.Close()
}

// catchUp indexes complete lines between pos and the end of the file.
// Callers hold mu.
func (j *JSONL) catchUp() error {
	info, err := j.file.Stat()
	if err != nil {
		return fmt.Errorf("cob: stat: %w", err)
	}
	size := info.Size()
	if size <= j.pos {
		return nil
	}
	buf := make([]byte, size-j.pos)
	if _, err := j.file.ReadAt(buf, j.pos); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("cob: read: %w", err)
	}

	for {
		nl := bytes.IndexByte(buf, '\n')
		if nl < 0 {
			// Incomplete trailing line; another writer is mid-append.
			return nil
		}
		line := buf[:nl]
		length := int64(nl + 1)
		if len(bytes.TrimSpace(line)) > 0 {
			var rec record
			if err := json.Unmarshal(line, &rec); err != nil {
				j.log.Warn("cob: skipping malformed line", "offset", j.pos, "err", err)
			} else {
				j.idx.onAppend(rec, j.pos, length)
			}
		}
		j.pos += length
		buf = buf[nl+1:]
	}
}

// append writes recs as JSON lines under the file lock and syncs.
func (j *JSONL) append(recs ...record) error {
	var data []byte
	lengths := make([]int64, len(recs))
	for i, rec := range recs {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("cob: marshal: %w", err)
		}
		line = append(line, '\n')
		lengths[i] = int64(len(line))
		data = append(data, line...)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return fmt.Errorf("cob: write: %w", os.ErrClosed)
	}

	if err := j.lock.Lock(); err != nil {
		return fmt.Errorf("cob: lock: %w", err)
	}
	defer func() { _ = j.lock.Unlock() }()

	if err := j.catchUp(); err != nil {
		return err
	}
	if _, err := j.file.Write(data); err != nil {
		return fmt.Errorf("cob: write: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("cob: sync: %w", err)
	}
	for i, rec := range recs {
		j.idx.onAppend(rec, j.pos, lengths[i])
		j.pos += lengths[i]
	}
	return nil
}

// read returns the latest record of (typ, id). Callers hold mu.
func (j *JSONL) read(typ recordType, id string) (record, error) {
	r, ok := j.idx.lookup(typ, id)
	if !ok {
		return record{}, fmt.Errorf("cob: %s %s: %w", typ, id, ErrNotFound)
	}
	buf := make([]byte, r.end-r.start)
	if _, err := j.file.ReadAt(buf, r.start); err != nil {
		return record{}, fmt.Errorf("cob: read %s %s: %w", typ, id, err)
	}
	var rec record
	if err := json.Unmarshal(bytes.TrimSpace(buf), &rec); err != nil {
		return record{}, fmt.Errorf("cob: parse %s %s: %w", typ, id, err)
	}
	return rec, nil
}

// readAll returns the latest record of every object of typ.
func (j *JSONL) readAll(typ recordType) ([]record, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, fmt.Errorf("cob: read: %w", os.ErrClosed)
	}
	if err := j.catchUp(); err != nil {
		return nil, err
	}
	ids := j.idx.ids(typ)
	out := make([]record, 0, len(ids))
	for _, id := range ids {
		rec, err := j.read(typ, id)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (j *JSONL) readOne(typ recordType, id string) (record, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return record{}, fmt.Errorf("cob: read: %w", os.ErrClosed)
	}
	if err := j.catchUp(); err != nil {
		return record{}, err
	}
	return j.read(typ, id)
}

// Issues implements Repository. Results are newest first.
func (j *JSONL) Issues(filter IssueFilter) ([]Issue, error) {
	recs, err := j.readAll(recordIssue)
	if err != nil {
		return nil, err
	}
	var out []Issue
	for _, rec := range recs {
		if rec.Issue != nil && filter.Matches(*rec.Issue) {
			out = append(out, *rec.Issue)
		}
	}
	SortIssues(out)
	return out, nil
}

// Patches implements Repository. Results are newest first.
func (j *JSONL) Patches(filter PatchFilter) ([]Patch, error) {
	recs, err := j.readAll(recordPatch)
	if err != nil {
		return nil, err
	}
	var out []Patch
	for _, rec := range recs {
		if rec.Patch != nil && filter.Matches(*rec.Patch) {
			out = append(out, *rec.Patch)
		}
	}
	SortPatches(out)
	return out, nil
}

// Notifications implements Repository, in the order they were raised.
func (j *JSONL) Notifications() ([]Notification, error) {
	recs, err := j.readAll(recordNotification)
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0, len(recs))
	for _, rec := range recs {
		if rec.Notification != nil {
			out = append(out, *rec.Notification)
		}
	}
	return out, nil
}

// Issue implements Repository.
func (j *JSONL) Issue(id string) (Issue, error) {
	rec, err := j.readOne(recordIssue, id)
	if err != nil {
		return Issue{}, err
	}
	return *rec.Issue, nil
}

// Patch implements Repository.
func (j *JSONL) Patch(id string) (Patch, error) {
	rec, err := j.readOne(recordPatch, id)
	if err != nil {
		return Patch{}, err
	}
	return *rec.Patch, nil
}

// CreateIssue implements Writer.
func (j *JSONL) CreateIssue(n NewIssue) (Issue, error) {
	if strings.TrimSpace(n.Title) == "" {
		return Issue{}, errors.New("cob: issue title is empty")
	}
	is := Issue{
		ID:        j.newID(),
		Title:     n.Title,
		Author:    n.Author,
		State:     IssueOpen,
		Labels:    n.Labels,
		Body:      n.Body,
		Timestamp: j.now().UTC(),
	}
	note := j.notification(KindIssue, is.ID, is.Title, is.Author, "opened", is.Timestamp)
	if err := j.append(record{Type: recordIssue, Issue: &is}, note); err != nil {
		return Issue{}, err
	}
	return is, nil
}

// CreatePatch implements Writer.
func (j *JSONL) CreatePatch(n NewPatch) (Patch, error) {
	if strings.TrimSpace(n.Title) == "" {
		return Patch{}, errors.New("cob: patch title is empty")
	}
	if n.Head == "" {
		return Patch{}, errors.New("cob: patch head is empty")
	}
	p := Patch{
		ID:        j.newID(),
		Title:     n.Title,
		Author:    n.Author,
		State:     PatchOpen,
		Base:      n.Base,
		Head:      n.Head,
		Labels:    n.Labels,
		Revisions: 1,
		Timestamp: j.now().UTC(),
	}
	note := j.notification(KindPatch, p.ID, p.Title, p.Author, "opened", p.Timestamp)
	if err := j.append(record{Type: recordPatch, Patch: &p}, note); err != nil {
		return Patch{}, err
	}
	return p, nil
}

// SetIssueState implements Writer.
func (j *JSONL) SetIssueState(id string, state IssueState) (Issue, error) {
	is, err := j.Issue(id)
	if err != nil {
		return Issue{}, err
	}
	is.State = state
	is.Timestamp = j.now().UTC()
	note := j.notification(KindIssue, is.ID, is.Title, is.Author, "state changed to "+state.String(), is.Timestamp)
	if err := j.append(record{Type: recordIssue, Issue: &is}, note); err != nil {
		return Issue{}, err
	}
	return is, nil
}

// SetPatchState implements Writer.
func (j *JSONL) SetPatchState(id string, state PatchState) (Patch, error) {
	p, err := j.Patch(id)
	if err != nil {
		return Patch{}, err
	}
	p.State = state
	p.Timestamp = j.now().UTC()
	note := j.notification(KindPatch, p.ID, p.Title, p.Author, "state changed to "+state.String(), p.Timestamp)
	if err := j.append(record{Type: recordPatch, Patch: &p}, note); err != nil {
		return Patch{}, err
	}
	return p, nil
}

func (j *JSONL) notification(kind Kind, objectID, title, author, summary string, at time.Time) record {
	return record{Type: recordNotification, Notification: &Notification{
		ID:        j.newID(),
		Kind:      kind,
		ObjectID:  objectID,
		Title:     title,
		Summary:   summary,
		Project:   j.project,
		Author:    author,
		Timestamp: at,
	}}
}

// Compile-time checks.
var (
	_ Repository = (*JSONL)(nil)
	_ Writer     = (*JSONL)(nil)
)
