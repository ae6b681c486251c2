package credstore

import "context"

// Store is the durable slot holding the bearer credential.
type Store interface {
	// Load returns the stored credential, or an empty string when the slot
	// is empty.
	Load(ctx context.Context) (string, error)

	// Save replaces the slot contents with the given credential.
	Save(ctx context.Context, token string) error

	// Clear empties the slot. Clearing an empty slot is not an error.
	Clear(ctx context.Context) error
}
