// Package store persists managed-form records in JetStream.
//
// Records live in a KV bucket keyed "{project}.{form id}"; every write also
// publishes a best-effort activity event to the formdeck activity stream.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/formdeck/formdeck/internal/form"
	"github.com/formdeck/formdeck/internal/logger"
	"github.com/formdeck/formdeck/internal/nats"
)

// Event is one entry in the project activity log.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Project   string    `json:"project"`
	Action    string    `json:"action"` // created, updated, deleted
	FormID    string    `json:"form_id"`
	FormName  string    `json:"form_name"`
}

// Store provides access to the forms table and the activity log.
type Store struct {
	js     jetstream.JetStream
	kv     jetstream.KeyValue
	stream jetstream.Stream
}

// Open sets up the forms bucket and activity stream on the given JetStream
// context and returns a ready Store.
func Open(ctx context.Context, js jetstream.JetStream) (*Store, error) {
	kv, err := nats.SetupFormsBucket(ctx, js)
	if err != nil {
		return nil, fmt.Errorf("setting up forms bucket: %w", err)
	}

	stream, err := nats.SetupActivityStream(ctx, js)
	if err != nil {
		return nil, fmt.Errorf("setting up activity stream: %w", err)
	}

	return &Store{js: js, kv: kv, stream: stream}, nil
}

func formKey(project, id string) string {
	return project + "." + id
}

// CreateForm inserts one new form record and returns the created record with
// its identifier and timestamps assigned. The insert is a single atomic KV
// create; either the whole record exists afterwards or nothing does.
func (s *Store) CreateForm(ctx context.Context, rec form.Record) (*form.Record, error) {
	if rec.ProjectID == "" {
		return nil, form.ErrNoProject
	}

	rec.ID = uuid.NewString()
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshaling form record: %w", err)
	}

	logger.Debug("Creating form: project=%s id=%s slug=%s type=%s", rec.ProjectID, rec.ID, rec.Slug, rec.FormType)

	if _, err := s.kv.Create(ctx, formKey(rec.ProjectID, rec.ID), data); err != nil {
		logger.Error("Failed to create form %s: %v", rec.ID, err)
		return nil, fmt.Errorf("creating form record: %w", err)
	}

	s.publishActivity(ctx, rec, nats.ActionCreated)
	return &rec, nil
}

// GetForm loads a single form record.
func (s *Store) GetForm(ctx context.Context, project, id string) (*form.Record, error) {
	entry, err := s.kv.Get(ctx, formKey(project, id))
	if err != nil {
		return nil, fmt.Errorf("loading form %s: %w", id, err)
	}

	var rec form.Record
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("decoding form %s: %w", id, err)
	}
	return &rec, nil
}

// ListForms returns every form record in a project, oldest first.
func (s *Store) ListForms(ctx context.Context, project string) ([]*form.Record, error) {
	lister, err := s.kv.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing form keys: %w", err)
	}

	prefix := project + "."
	var records []*form.Record
	for key := range lister.Keys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}

		entry, err := s.kv.Get(ctx, key)
		if err != nil {
			logger.Warn("Skipping unreadable form key %s: %v", key, err)
			continue
		}

		var rec form.Record
		if err := json.Unmarshal(entry.Value(), &rec); err != nil {
			logger.Warn("Skipping malformed form record %s: %v", key, err)
			continue
		}
		records = append(records, &rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// UpdateForm replaces a form record, bumping its version counter. The write
// is revision-checked against the current KV entry, so a concurrent editor
// session fails cleanly instead of silently overwriting.
func (s *Store) UpdateForm(ctx context.Context, rec form.Record) (*form.Record, error) {
	key := formKey(rec.ProjectID, rec.ID)

	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading form %s for update: %w", rec.ID, err)
	}

	var current form.Record
	if err := json.Unmarshal(entry.Value(), &current); err != nil {
		return nil, fmt.Errorf("decoding form %s: %w", rec.ID, err)
	}

	rec.Version = current.Version + 1
	rec.CreatedAt = current.CreatedAt
	rec.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshaling form record: %w", err)
	}

	if _, err := s.kv.Update(ctx, key, data, entry.Revision()); err != nil {
		logger.Error("Failed to update form %s: %v", rec.ID, err)
		return nil, fmt.Errorf("updating form record: %w", err)
	}

	s.publishActivity(ctx, rec, nats.ActionUpdated)
	return &rec, nil
}

// DeleteForm removes a form record.
func (s *Store) DeleteForm(ctx context.Context, project, id string) error {
	rec, err := s.GetForm(ctx, project, id)
	if err != nil {
		return err
	}

	if err := s.kv.Delete(ctx, formKey(project, id)); err != nil {
		return fmt.Errorf("deleting form %s: %w", id, err)
	}

	s.publishActivity(ctx, *rec, nats.ActionDeleted)
	return nil
}

// publishActivity records a lifecycle event on the activity stream. Failures
// are logged and swallowed; the table write already succeeded and the log is
// advisory.
func (s *Store) publishActivity(ctx context.Context, rec form.Record, action string) {
	event := Event{
		Timestamp: time.Now().UTC(),
		Project:   rec.ProjectID,
		Action:    action,
		FormID:    rec.ID,
		FormName:  rec.Name,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Warn("Failed to marshal activity event: %v", err)
		return
	}

	subject := nats.SubjectForAction(rec.ProjectID, action)
	if _, err := s.js.Publish(ctx, subject, data); err != nil {
		logger.Warn("Failed to publish activity event to %s: %v", subject, err)
	}
}

// Activity replays the activity log for a project, oldest first.
func (s *Store) Activity(ctx context.Context, project string) ([]Event, error) {
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: nats.SubjectForProject(project),
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("creating activity consumer: %w", err)
	}

	const batchSize = 1000
	var events []Event
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		msgCount := 0
		for msg := range msgs.Messages() {
			msgCount++

			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				meta, _ := msg.Metadata()
				logger.Warn("Skipping malformed activity event (seq=%d): %v", meta.Sequence.Stream, err)
				msg.Ack()
				continue
			}

			if event.ID == "" {
				meta, _ := msg.Metadata()
				event.ID = fmt.Sprintf("%d", meta.Sequence.Stream)
			}

			events = append(events, event)
			msg.Ack()
		}

		if msgCount < batchSize {
			break
		}
	}

	return events, nil
}
