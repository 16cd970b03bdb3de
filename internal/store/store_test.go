package store

import (
	"context"
	"testing"

	"github.com/formdeck/formdeck/internal/form"
	"github.com/formdeck/formdeck/internal/nats"
)

// newTestStore spins up an embedded NATS server in a temp dir and returns a
// ready Store. Everything is torn down when the test finishes.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	ns, err := nats.StartEmbedded(t.TempDir())
	if err != nil {
		t.Fatalf("starting embedded NATS: %v", err)
	}

	nc, err := nats.ConnectInProcess(ns)
	if err != nil {
		ns.Shutdown()
		t.Fatalf("connecting in-process: %v", err)
	}

	t.Cleanup(func() {
		_ = nats.Shutdown(nc, ns)
	})

	js, err := nats.CreateJetStream(nc)
	if err != nil {
		t.Fatalf("creating JetStream context: %v", err)
	}

	st, err := Open(context.Background(), js)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	return st
}

func TestCreateForm(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	rec := form.Record{
		ProjectID: "proj-1",
		Name:      "Contact Form",
		Slug:      "contact-form",
		FormType:  "contact",
		Version:   1,
	}

	created, err := st.CreateForm(ctx, rec)
	if err != nil {
		t.Fatalf("creating form: %v", err)
	}

	if created.ID == "" {
		t.Error("created form must have an identifier")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("created form must have timestamps")
	}
	if created.IsActive {
		t.Error("created form must be inactive")
	}

	loaded, err := st.GetForm(ctx, "proj-1", created.ID)
	if err != nil {
		t.Fatalf("loading form: %v", err)
	}
	if loaded.Name != "Contact Form" {
		t.Errorf("expected name Contact Form, got %q", loaded.Name)
	}
	if loaded.FormType != "contact" {
		t.Errorf("expected form type contact, got %q", loaded.FormType)
	}
}

func TestCreateForm_NoProject(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateForm(context.Background(), form.Record{Name: "Form"})
	if err == nil {
		t.Fatal("expected error creating form without a project")
	}
}

func TestListForms_ScopedToProject(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, rec := range []form.Record{
		{ProjectID: "proj-a", Name: "First", Slug: "first", FormType: "custom", Version: 1},
		{ProjectID: "proj-a", Name: "Second", Slug: "second", FormType: "lead", Version: 1},
		{ProjectID: "proj-b", Name: "Other", Slug: "other", FormType: "custom", Version: 1},
	} {
		if _, err := st.CreateForm(ctx, rec); err != nil {
			t.Fatalf("creating form %s: %v", rec.Name, err)
		}
	}

	records, err := st.ListForms(ctx, "proj-a")
	if err != nil {
		t.Fatalf("listing forms: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 forms in proj-a, got %d", len(records))
	}
	for _, rec := range records {
		if rec.ProjectID != "proj-a" {
			t.Errorf("list leaked form from project %q", rec.ProjectID)
		}
	}
	if records[0].Name != "First" || records[1].Name != "Second" {
		t.Errorf("expected oldest-first order, got %q then %q", records[0].Name, records[1].Name)
	}
}

func TestListForms_Empty(t *testing.T) {
	st := newTestStore(t)

	records, err := st.ListForms(context.Background(), "proj-empty")
	if err != nil {
		t.Fatalf("listing forms: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no forms, got %d", len(records))
	}
}

func TestUpdateForm_BumpsVersion(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateForm(ctx, form.Record{
		ProjectID: "proj-1",
		Name:      "Form",
		Slug:      "form",
		FormType:  "custom",
		Version:   1,
	})
	if err != nil {
		t.Fatalf("creating form: %v", err)
	}

	created.Name = "Renamed Form"
	created.IsActive = true

	updated, err := st.UpdateForm(ctx, *created)
	if err != nil {
		t.Fatalf("updating form: %v", err)
	}

	if updated.Version != 2 {
		t.Errorf("expected version 2 after update, got %d", updated.Version)
	}
	if !updated.IsActive {
		t.Error("expected activation to persist")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("update must not change CreatedAt")
	}

	loaded, err := st.GetForm(ctx, "proj-1", created.ID)
	if err != nil {
		t.Fatalf("loading form: %v", err)
	}
	if loaded.Name != "Renamed Form" {
		t.Errorf("expected renamed form, got %q", loaded.Name)
	}
}

func TestDeleteForm(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateForm(ctx, form.Record{
		ProjectID: "proj-1",
		Name:      "Form",
		Slug:      "form",
		FormType:  "custom",
		Version:   1,
	})
	if err != nil {
		t.Fatalf("creating form: %v", err)
	}

	if err := st.DeleteForm(ctx, "proj-1", created.ID); err != nil {
		t.Fatalf("deleting form: %v", err)
	}

	if _, err := st.GetForm(ctx, "proj-1", created.ID); err == nil {
		t.Error("expected error loading deleted form")
	}
}

func TestActivity(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateForm(ctx, form.Record{
		ProjectID: "proj-1",
		Name:      "Form",
		Slug:      "form",
		FormType:  "custom",
		Version:   1,
	})
	if err != nil {
		t.Fatalf("creating form: %v", err)
	}

	created.Name = "Renamed"
	if _, err := st.UpdateForm(ctx, *created); err != nil {
		t.Fatalf("updating form: %v", err)
	}
	if err := st.DeleteForm(ctx, "proj-1", created.ID); err != nil {
		t.Fatalf("deleting form: %v", err)
	}

	events, err := st.Activity(ctx, "proj-1")
	if err != nil {
		t.Fatalf("replaying activity: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("expected 3 activity events, got %d", len(events))
	}
	actions := []string{events[0].Action, events[1].Action, events[2].Action}
	expected := []string{"created", "updated", "deleted"}
	for i := range expected {
		if actions[i] != expected[i] {
			t.Errorf("event %d: expected action %q, got %q", i, expected[i], actions[i])
		}
	}
	for _, ev := range events {
		if ev.FormID != created.ID {
			t.Errorf("expected event for form %s, got %s", created.ID, ev.FormID)
		}
		if ev.Project != "proj-1" {
			t.Errorf("expected event project proj-1, got %s", ev.Project)
		}
	}

	other, err := st.Activity(ctx, "proj-other")
	if err != nil {
		t.Fatalf("replaying activity for other project: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no events for other project, got %d", len(other))
	}
}
