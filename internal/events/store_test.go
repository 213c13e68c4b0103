package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/deskcal/internal/models"
	"github.com/julianstephens/deskcal/internal/storage"
)

func setupStore(t *testing.T) (*Store, storage.Provider) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deskcal.json")
	p := storage.NewJSONStore(path)
	if err := p.Init(); err != nil {
		t.Fatalf("failed to initialize storage: %v", err)
	}
	t.Cleanup(func() { p.Close() })

	return NewStore(p, nil), p
}

func TestAddAssignsIdentity(t *testing.T) {
	store, _ := setupStore(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ev := store.Add(models.Event{Title: fmt.Sprintf("event %d", i), Date: "2024-03-01"})

		if ev.ID == "" {
			t.Fatal("Add returned an event without an id")
		}
		if seen[ev.ID] {
			t.Fatalf("duplicate id %q", ev.ID)
		}
		seen[ev.ID] = true

		if !ev.CreatedAt.Equal(ev.UpdatedAt) {
			t.Errorf("CreatedAt %v != UpdatedAt %v on freshly added event", ev.CreatedAt, ev.UpdatedAt)
		}
	}

	if store.Len() != 50 {
		t.Errorf("store has %d events, want 50", store.Len())
	}
}

func TestAddDefaults(t *testing.T) {
	store, _ := setupStore(t)

	ev := store.Add(models.Event{Date: "2024-03-01"})
	if ev.Type != models.TypeTodo {
		t.Errorf("Type = %q, want todo default", ev.Type)
	}
	if ev.Completed {
		t.Error("new event should not be completed")
	}
	if !ev.AllDay() {
		t.Error("event without a time should be all-day")
	}
}

func TestUpdatePreservesIdentity(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	clock := func() time.Time { return now }

	path := filepath.Join(t.TempDir(), "deskcal.json")
	p := storage.NewJSONStore(path)
	if err := p.Init(); err != nil {
		t.Fatalf("failed to initialize storage: %v", err)
	}
	store := NewStore(p, clock)

	ev := store.Add(models.Event{Title: "before", Date: "2024-03-01"})

	now = now.Add(time.Hour)
	title := "after"
	completed := true
	updated, err := store.Update(ev.ID, models.EventPatch{Title: &title, Completed: &completed})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.ID != ev.ID {
		t.Error("Update changed the event id")
	}
	if !updated.CreatedAt.Equal(ev.CreatedAt) {
		t.Error("Update changed CreatedAt")
	}
	if !updated.UpdatedAt.After(ev.UpdatedAt) {
		t.Errorf("UpdatedAt not bumped: %v -> %v", ev.UpdatedAt, updated.UpdatedAt)
	}
	if updated.Title != "after" || !updated.Completed {
		t.Errorf("patch not applied: %+v", updated)
	}
	// Unpatched fields survive.
	if updated.Date != "2024-03-01" {
		t.Errorf("Date changed to %q", updated.Date)
	}
}

func TestUpdateNotFound(t *testing.T) {
	store, _ := setupStore(t)

	title := "x"
	if _, err := store.Update("missing", models.EventPatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update on absent id = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	store, _ := setupStore(t)

	ev := store.Add(models.Event{Title: "gone", Date: "2024-03-01"})

	if !store.Delete(ev.ID) {
		t.Fatal("Delete returned false for existing event")
	}
	if store.Delete(ev.ID) {
		t.Error("Delete returned true for already-removed event")
	}
	if _, ok := store.Get(ev.ID); ok {
		t.Error("deleted event still retrievable")
	}
}

func TestToggleComplete(t *testing.T) {
	store, _ := setupStore(t)

	ev := store.Add(models.Event{Title: "toggle me", Date: "2024-03-01"})

	toggled, err := store.ToggleComplete(ev.ID)
	if err != nil {
		t.Fatalf("ToggleComplete failed: %v", err)
	}
	if !toggled.Completed {
		t.Error("first toggle should complete the event")
	}

	toggled, err = store.ToggleComplete(ev.ID)
	if err != nil {
		t.Fatalf("ToggleComplete failed: %v", err)
	}
	if toggled.Completed {
		t.Error("second toggle should un-complete the event")
	}

	if _, err := store.ToggleComplete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ToggleComplete on absent id = %v, want ErrNotFound", err)
	}
}

func TestClearAll(t *testing.T) {
	store, _ := setupStore(t)

	store.Add(models.Event{Title: "a", Date: "2024-03-01"})
	store.Add(models.Event{Title: "b", Date: "2024-03-02"})

	store.ClearAll()
	if store.Len() != 0 {
		t.Errorf("store has %d events after ClearAll", store.Len())
	}
}

func TestImportRejectsNilPayload(t *testing.T) {
	store, _ := setupStore(t)

	if _, err := store.Import(nil); !errors.Is(err, ErrInvalidImport) {
		t.Errorf("Import(nil) = %v, want ErrInvalidImport", err)
	}

	// An empty (non-nil) batch is a valid no-op.
	batch, err := store.Import([]models.Event{})
	if err != nil {
		t.Errorf("Import(empty) failed: %v", err)
	}
	if len(batch) != 0 {
		t.Errorf("Import(empty) returned %d events", len(batch))
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	store, _ := setupStore(t)

	a := store.Add(models.Event{Title: "a", Date: "2024-03-01", Time: "09:00"})
	b := store.Add(models.Event{Title: "b", Date: "2024-03-02"})

	snapshot := store.Export()
	if snapshot.Version != ExportVersion {
		t.Errorf("export version = %q, want %q", snapshot.Version, ExportVersion)
	}
	if len(snapshot.Events) != 2 {
		t.Fatalf("export has %d events, want 2", len(snapshot.Events))
	}

	fresh, _ := setupStore(t)
	imported, err := fresh.Import(snapshot.Events)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if len(imported) != 2 {
		t.Fatalf("imported %d events, want 2", len(imported))
	}
	for i, ev := range imported {
		if ev.ID == a.ID || ev.ID == b.ID {
			t.Errorf("imported event %d kept its original id", i)
		}
	}
	if imported[0].ID == imported[1].ID {
		t.Error("imported events share an id")
	}
	if imported[0].Title != "a" || imported[0].Time != "09:00" {
		t.Errorf("imported event lost content: %+v", imported[0])
	}
}

func TestLoadOnConstruction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deskcal.json")
	p := storage.NewJSONStore(path)
	if err := p.Init(); err != nil {
		t.Fatalf("failed to initialize storage: %v", err)
	}

	store := NewStore(p, nil)
	store.Add(models.Event{Title: "persisted", Date: "2024-03-01"})

	// A second store over the same provider sees the saved collection.
	reloaded := NewStore(p, nil)
	if reloaded.Len() != 1 {
		t.Fatalf("reloaded store has %d events, want 1", reloaded.Len())
	}
	if reloaded.All()[0].Title != "persisted" {
		t.Errorf("reloaded event = %+v", reloaded.All()[0])
	}
}

func TestCorruptEventsYieldEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deskcal.json")
	p := storage.NewJSONStore(path)
	if err := p.Init(); err != nil {
		t.Fatalf("failed to initialize storage: %v", err)
	}
	// Store something that is not an event list under the events key.
	if err := p.Save(storage.KeyEvents, "not an array"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	store := NewStore(p, nil)
	if store.Len() != 0 {
		t.Errorf("store built from corrupt data has %d events, want 0", store.Len())
	}
}

func TestSubscribeNotifications(t *testing.T) {
	store, _ := setupStore(t)

	var changes []Change
	token := store.Subscribe(func(c Change) {
		changes = append(changes, c)
	})

	ev := store.Add(models.Event{Title: "watched", Date: "2024-03-01"})
	store.Delete(ev.ID)

	if len(changes) != 2 {
		t.Fatalf("received %d notifications, want 2", len(changes))
	}
	if changes[0].Action != ActionAdd || changes[0].Event.ID != ev.ID {
		t.Errorf("first change = %+v", changes[0])
	}
	if len(changes[0].Events) != 1 {
		t.Errorf("add snapshot has %d events, want 1", len(changes[0].Events))
	}
	if changes[1].Action != ActionDelete {
		t.Errorf("second change action = %q", changes[1].Action)
	}
	if len(changes[1].Events) != 0 {
		t.Errorf("delete snapshot has %d events, want 0", len(changes[1].Events))
	}

	store.Unsubscribe(token)
	store.Add(models.Event{Title: "unwatched", Date: "2024-03-02"})
	if len(changes) != 2 {
		t.Error("listener still notified after Unsubscribe")
	}
}

func TestPanickingListenerIsIsolated(t *testing.T) {
	store, _ := setupStore(t)

	var delivered int
	store.Subscribe(func(Change) { panic("listener bug") })
	store.Subscribe(func(Change) { delivered++ })

	ev := store.Add(models.Event{Title: "still works", Date: "2024-03-01"})

	if delivered != 1 {
		t.Errorf("second listener received %d notifications, want 1", delivered)
	}
	if _, ok := store.Get(ev.ID); !ok {
		t.Error("mutation lost after listener panic")
	}
}

// failingProvider satisfies storage.Provider but refuses every write, for
// exercising the fire-and-forget persistence path.
type failingProvider struct{}

func (failingProvider) Init() error                   { return nil }
func (failingProvider) Load() error                   { return nil }
func (failingProvider) Close() error                  { return nil }
func (failingProvider) Save(string, any) error        { return errors.New("disk full") }
func (failingProvider) Get(string, any) error         { return storage.ErrNotFound }
func (failingProvider) Remove(string) error           { return errors.New("disk full") }
func (failingProvider) Clear() error                  { return errors.New("disk full") }
func (failingProvider) Usage() (storage.UsageInfo, error) {
	return storage.UsageInfo{}, nil
}
func (failingProvider) ListAll() (map[string]json.RawMessage, error) {
	return nil, nil
}
func (failingProvider) Path() string { return "" }

func TestPersistenceFailureKeepsMemoryState(t *testing.T) {
	store := NewStore(failingProvider{}, nil)

	ev := store.Add(models.Event{Title: "unsaved", Date: "2024-03-01"})
	if _, ok := store.Get(ev.ID); !ok {
		t.Error("event missing from memory after failed persist")
	}

	if !store.Delete(ev.ID) {
		t.Error("Delete failed in memory after failed persist")
	}
	if store.Len() != 0 {
		t.Errorf("store has %d events, want 0", store.Len())
	}
}
