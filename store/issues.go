package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"civicreport-be/models"
	"civicreport-be/storage"
)

var (
	// ErrNotFound is returned when no issue matches the given id
	ErrNotFound = errors.New("store: issue not found")
	// ErrCorruptData is returned when a stored blob exists but cannot be
	// decoded. Distinct from the empty-store case, which seeds demo data.
	ErrCorruptData = errors.New("store: corrupt issues blob")
)

// DefaultNoteAuthor is recorded on notes added without an acting identity
const DefaultNoteAuthor = "Admin"

// IssueStore owns the canonical issue collection. Every mutation rewrites
// the whole collection: decode, transform, persist, then swap the in-memory
// slice. Safe for concurrent use by HTTP handlers.
type IssueStore struct {
	mu       sync.RWMutex
	blobs    storage.BlobStore
	issues   []models.Issue
	onChange func()
}

func NewIssueStore(blobs storage.BlobStore) *IssueStore {
	return &IssueStore{blobs: blobs}
}

// OnChange registers a single observer invoked after every successful
// mutation. Must be set before the store is shared across goroutines.
func (s *IssueStore) OnChange(fn func()) {
	s.onChange = fn
}

// Load initializes the store from the issues blob. A missing blob seeds
// the demo dataset and persists it; a blob that will not decode fails
// with ErrCorruptData rather than being treated as empty.
func (s *IssueStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.blobs.Get(ctx, storage.IssuesKey)
	if errors.Is(err, storage.ErrNoBlob) {
		seeded := SeedIssues()
		if err := s.persistLocked(ctx, seeded); err != nil {
			return err
		}
		return nil
	}
	if err != nil {
		return err
	}

	var issues []models.Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	s.issues = issues
	return nil
}

// List returns a snapshot copy of the full collection in insertion order
func (s *IssueStore) List() []models.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Issue, len(s.issues))
	for i, issue := range s.issues {
		out[i] = cloneIssue(issue)
	}
	return out
}

// Get returns the issue with the given id
func (s *IssueStore) Get(id string) (models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, issue := range s.issues {
		if issue.ID == id {
			return cloneIssue(issue), nil
		}
	}
	return models.Issue{}, ErrNotFound
}

// Create appends a new issue to the collection. A fresh id and the
// reported date are assigned here; status defaults to pending and the
// assignment to Unassigned.
func (s *IssueStore) Create(ctx context.Context, issue models.Issue) (models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue.ID = newID()
	issue.ReportedDate = time.Now().Format("2006-01-02")
	if issue.Status == "" {
		issue.Status = models.Pending
	}
	if issue.AssignedTo == "" {
		issue.AssignedTo = models.Unassigned
	}
	if issue.Notes == nil {
		issue.Notes = []models.IssueNote{}
	}

	updated := append(append([]models.Issue{}, s.issues...), issue)
	if err := s.persistLocked(ctx, updated); err != nil {
		return models.Issue{}, err
	}
	return cloneIssue(issue), nil
}

// IssueUpdate names the fields a triage update may replace. Nil fields are
// left untouched; id, reporter, reported date and notes are immutable here.
type IssueUpdate struct {
	Title       *string
	Description *string
	Category    *models.IssueCategory
	Status      *models.IssueStatus
	Location    *string
	AssignedTo  *models.Department
	ImageURL    *string
}

// Update applies a partial update to the issue with the given id
func (s *IssueStore) Update(ctx context.Context, id string, fields IssueUpdate) (models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, issue := range s.issues {
		if issue.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Issue{}, ErrNotFound
	}

	updated := make([]models.Issue, len(s.issues))
	copy(updated, s.issues)

	issue := cloneIssue(updated[idx])
	if fields.Title != nil {
		issue.Title = *fields.Title
	}
	if fields.Description != nil {
		issue.Description = *fields.Description
	}
	if fields.Category != nil {
		issue.Category = *fields.Category
	}
	if fields.Status != nil {
		issue.Status = *fields.Status
	}
	if fields.Location != nil {
		issue.Location = *fields.Location
	}
	if fields.AssignedTo != nil {
		issue.AssignedTo = *fields.AssignedTo
	}
	if fields.ImageURL != nil {
		issue.ImageURL = fields.ImageURL
	}
	updated[idx] = issue

	if err := s.persistLocked(ctx, updated); err != nil {
		return models.Issue{}, err
	}
	return cloneIssue(issue), nil
}

// Delete removes the issue with the given id. Deleting an absent id
// reports ErrNotFound but leaves the collection untouched, so repeating
// a delete is safe.
func (s *IssueStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]models.Issue, 0, len(s.issues))
	found := false
	for _, issue := range s.issues {
		if issue.ID == id {
			found = true
			continue
		}
		updated = append(updated, issue)
	}
	if !found {
		return ErrNotFound
	}
	return s.persistLocked(ctx, updated)
}

// AddNote appends an internal note to the issue with the given id. Prior
// notes are never touched. An empty author falls back to DefaultNoteAuthor.
func (s *IssueStore) AddNote(ctx context.Context, id, content, author string) (models.IssueNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if author == "" {
		author = DefaultNoteAuthor
	}

	idx := -1
	for i, issue := range s.issues {
		if issue.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.IssueNote{}, ErrNotFound
	}

	note := models.IssueNote{
		ID:        "note_" + newID(),
		Content:   content,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		CreatedBy: author,
	}

	updated := make([]models.Issue, len(s.issues))
	copy(updated, s.issues)
	issue := cloneIssue(updated[idx])
	issue.Notes = append(issue.Notes, note)
	updated[idx] = issue

	if err := s.persistLocked(ctx, updated); err != nil {
		return models.IssueNote{}, err
	}
	return note, nil
}

// persistLocked writes the collection blob and, only on success, swaps the
// in-memory slice and notifies the observer. Callers hold the write lock.
func (s *IssueStore) persistLocked(ctx context.Context, issues []models.Issue) error {
	data, err := json.Marshal(issues)
	if err != nil {
		return fmt.Errorf("encode issues: %w", err)
	}
	if err := s.blobs.Put(ctx, storage.IssuesKey, data); err != nil {
		return err
	}
	s.issues = issues
	if s.onChange != nil {
		s.onChange()
	}
	return nil
}

func cloneIssue(issue models.Issue) models.Issue {
	notes := make([]models.IssueNote, len(issue.Notes))
	copy(notes, issue.Notes)
	issue.Notes = notes
	return issue
}

var idCounter struct {
	sync.Mutex
	last int64
}

// newID derives ids from the clock the way the portal always has, with a
// bump to keep them unique when two mutations land in the same nanosecond.
func newID() string {
	idCounter.Lock()
	defer idCounter.Unlock()

	id := time.Now().UnixNano()
	if id <= idCounter.last {
		id = idCounter.last + 1
	}
	idCounter.last = id
	return strconv.FormatInt(id, 10)
}
