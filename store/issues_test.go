package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"civicreport-be/models"
	"civicreport-be/storage"
)

func newTestStore(t *testing.T) (*IssueStore, string) {
	t.Helper()
	dir := t.TempDir()
	blobs, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	s := NewIssueStore(blobs)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s, dir
}

func TestLoadSeedsEmptyStore(t *testing.T) {
	s, dir := newTestStore(t)

	issues := s.List()
	if len(issues) != 4 {
		t.Fatalf("seeded store has %d issues, want 4", len(issues))
	}
	if issues[0].ID != "1" || issues[0].Title != "Pothole on Moi Avenue" {
		t.Errorf("unexpected first seeded issue: %+v", issues[0])
	}

	// the seed must have been persisted, not just held in memory
	data, err := os.ReadFile(filepath.Join(dir, "issues.json"))
	if err != nil {
		t.Fatalf("reading persisted blob: %v", err)
	}
	var persisted []models.Issue
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("decoding persisted blob: %v", err)
	}
	if !reflect.DeepEqual(persisted, issues) {
		t.Error("persisted blob differs from List()")
	}
}

func TestLoadRestoresPersistedState(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStore(t)

	if err := s.Delete(ctx, "1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// a second store over the same directory sees the mutation, not a reseed
	blobs, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	reopened := NewIssueStore(blobs)
	if err := reopened.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := len(reopened.List()); got != 3 {
		t.Fatalf("reopened store has %d issues, want 3", got)
	}
}

func TestLoadCorruptBlob(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "issues.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	blobs, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	s := NewIssueStore(blobs)

	err = s.Load(context.Background())
	if !errors.Is(err, ErrCorruptData) {
		t.Fatalf("Load on corrupt blob = %v, want ErrCorruptData", err)
	}
}

func TestCreateRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.Create(context.Background(), models.Issue{
		Title:       "Broken footbridge",
		Description: "Handrail collapsed on the river crossing",
		Category:    models.Roads,
		Location:    "Ngong Road",
		ReportedBy:  "Peter Omondi",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" || created.ReportedDate == "" {
		t.Fatalf("Create did not assign id/date: %+v", created)
	}
	if created.Status != models.Pending || created.AssignedTo != models.Unassigned {
		t.Fatalf("Create defaults wrong: %+v", created)
	}

	found := false
	for _, issue := range s.List() {
		if issue.ID == created.ID {
			found = true
			if !reflect.DeepEqual(issue, created) {
				t.Errorf("listed issue %+v differs from created %+v", issue, created)
			}
		}
	}
	if !found {
		t.Fatal("created issue missing from List()")
	}
}

func TestUpdateChangesOnlyNamedFields(t *testing.T) {
	s, _ := newTestStore(t)

	before, err := s.Get("1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	status := models.Resolved
	after, err := s.Update(context.Background(), "1", IssueUpdate{Status: &status})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if after.Status != models.Resolved {
		t.Fatalf("status = %q, want resolved", after.Status)
	}
	before.Status = models.Resolved
	if !reflect.DeepEqual(after, before) {
		t.Errorf("Update touched fields beyond status:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestUpdateMissingID(t *testing.T) {
	s, _ := newTestStore(t)

	status := models.Resolved
	_, err := s.Update(context.Background(), "no-such-id", IssueUpdate{Status: &status})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update on missing id = %v, want ErrNotFound", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	if err := s.Delete(ctx, "2"); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	for _, issue := range s.List() {
		if issue.ID == "2" {
			t.Fatal("issue 2 still listed after Delete")
		}
	}

	// repeating the delete reports not found but changes nothing
	if err := s.Delete(ctx, "2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete = %v, want ErrNotFound", err)
	}
	if got := len(s.List()); got != 3 {
		t.Fatalf("second Delete changed the collection: %d issues", got)
	}
}

func TestAddNoteAppends(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	// issue 2 is seeded with one note
	before, err := s.Get("2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	note, err := s.AddNote(ctx, "2", "Pipe replacement scheduled", "")
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if note.CreatedBy != DefaultNoteAuthor {
		t.Errorf("default author = %q, want %q", note.CreatedBy, DefaultNoteAuthor)
	}

	after, err := s.Get("2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(after.Notes) != len(before.Notes)+1 {
		t.Fatalf("notes length = %d, want %d", len(after.Notes), len(before.Notes)+1)
	}
	if !reflect.DeepEqual(after.Notes[:len(before.Notes)], before.Notes) {
		t.Error("prior notes were modified by AddNote")
	}
	if last := after.Notes[len(after.Notes)-1]; last != note {
		t.Errorf("last note = %+v, want %+v", last, note)
	}

	if _, err := s.AddNote(ctx, "no-such-id", "x", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("AddNote on missing id = %v, want ErrNotFound", err)
	}
}

func TestListSnapshotIsolation(t *testing.T) {
	s, _ := newTestStore(t)

	snapshot := s.List()
	snapshot[0].Title = "tampered"
	snapshot[1].Notes = append(snapshot[1].Notes, models.IssueNote{ID: "rogue"})

	fresh, err := s.Get("1")
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Title == "tampered" {
		t.Error("mutating a List() snapshot leaked into the store")
	}
	second, err := s.Get("2")
	if err != nil {
		t.Fatal(err)
	}
	if len(second.Notes) != 1 {
		t.Error("appending to a snapshot's notes leaked into the store")
	}
}

func TestOnChangeObserver(t *testing.T) {
	s, _ := newTestStore(t)

	fired := 0
	s.OnChange(func() { fired++ })

	status := models.InProgress
	if _, err := s.Update(context.Background(), "1", IssueUpdate{Status: &status}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(context.Background(), "4"); err != nil {
		t.Fatal(err)
	}

	if fired != 2 {
		t.Fatalf("observer fired %d times, want 2", fired)
	}
}

func TestTriageScenario(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	status := models.InProgress
	if _, err := s.Update(ctx, "3", IssueUpdate{Status: &status}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	issue, err := s.Get("3")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if issue.Status != models.InProgress {
		t.Fatalf("status = %q, want in-progress", issue.Status)
	}
	if issue.Title != "Street lights not working" || issue.ReportedBy != "Ahmed Hassan" {
		t.Errorf("other fields changed by status update: %+v", issue)
	}

	if _, err := s.AddNote(ctx, "3", "Crew dispatched", ""); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}

	issue, err = s.Get("3")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(issue.Notes) != 1 {
		t.Fatalf("notes length = %d, want 1", len(issue.Notes))
	}
	if issue.Notes[0].Content != "Crew dispatched" || issue.Notes[0].CreatedBy != DefaultNoteAuthor {
		t.Errorf("unexpected note: %+v", issue.Notes[0])
	}
}
