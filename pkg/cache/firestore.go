package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/levenlabs/go-lflag"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore is a Store backed by Google Cloud Firestore, adapted from the
// teacher's storage.FirestoreProvider connection/init lifecycle: flags are
// registered eagerly and read inside lflag.Do, the client is created once
// by Init, and the caller is responsible for calling Close when done.
type Firestore struct {
	client     *firestore.Client
	projectID  string
	database   string
	collection string
}

// Configured sets up the Firestore cache based on flags, matching the
// teacher's storage.Configured fail-fast-on-bad-config posture.
func Configured() *Firestore {
	projectID := lflag.String("firestore-project-id", "", "Google Cloud Project ID for Firestore")
	database := lflag.String("firestore-database", "", "Google Cloud Firestore Database")
	emulator := lflag.String("firestore-emulator", "", "Use Firestore emulator")
	collection := lflag.String("firestore-cache-collection", "plansize_cache", "Firestore collection for cached external service responses")

	f := &Firestore{}
	lflag.Do(func() {
		f.projectID = *projectID
		f.database = *database
		f.collection = *collection
		if *emulator != "" {
			os.Setenv("FIRESTORE_EMULATOR_HOST", *emulator)
		}
	})
	return f
}

// Init creates the underlying Firestore client. It must be called before
// Get/Put.
func (f *Firestore) Init(ctx context.Context) error {
	projectID := f.projectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	database := f.database
	if database == "" {
		database = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, database)
	if err != nil {
		return fmt.Errorf("cache: failed to create firestore client (project=%s, database=%s): %w", projectID, database, err)
	}
	f.client = client
	return nil
}

// Close closes the underlying Firestore client.
func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// Get implements Store.
func (f *Firestore) Get(ctx context.Context, key string, out any) (bool, error) {
	doc, err := f.client.Collection(f.collection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("cache: fetch %s: %w", key, err)
	}
	val, err := doc.DataAt("json")
	if err != nil {
		return false, fmt.Errorf("cache: doc %s missing json field: %w", key, err)
	}
	jsonStr, ok := val.(string)
	if !ok {
		return false, fmt.Errorf("cache: doc %s json field is not a string", key)
	}
	if err := json.Unmarshal([]byte(jsonStr), out); err != nil {
		return false, fmt.Errorf("cache: unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Put implements Store.
func (f *Firestore) Put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}
	_, err = f.client.Collection(f.collection).Doc(key).Set(ctx, map[string]any{
		"json": string(raw),
	})
	if err != nil {
		return fmt.Errorf("cache: store %s: %w", key, err)
	}
	return nil
}
