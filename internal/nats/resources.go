package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	// FormsBucket is the KV bucket holding managed-form records.
	FormsBucket = "formdeck_forms"

	// activityStream captures form lifecycle events for all projects.
	activityStream = "formdeck_activity"
)

// Activity actions recorded on the event stream.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// SubjectForProject returns the wildcard subject pattern for all activity in
// a project. Example: "formdeck.acme.>"
func SubjectForProject(project string) string {
	return fmt.Sprintf("formdeck.%s.>", project)
}

// SubjectForAction returns the specific subject for an action in a project.
// Example: "formdeck.acme.created"
func SubjectForAction(project, action string) string {
	return fmt.Sprintf("formdeck.%s.%s", project, action)
}

// SetupFormsBucket creates or opens the KV bucket that stores form records.
// Records are JSON values keyed "{project}.{form id}".
func SetupFormsBucket(ctx context.Context, js jetstream.JetStream) (jetstream.KeyValue, error) {
	return js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  FormsBucket,
		Storage: jetstream.FileStorage,
		History: 5,
	})
}

// SetupActivityStream creates or updates the JetStream stream for form
// lifecycle events with 30-day retention.
func SetupActivityStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     activityStream,
		Subjects: []string{"formdeck.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   30 * 24 * time.Hour,
	})
}
