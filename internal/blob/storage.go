// Package blob abstracts binary file storage: store bytes, get back a URL.
package blob

import "context"

// Storage stores a blob under folder/name and returns a publicly reachable
// URL for it.
type Storage interface {
	Store(ctx context.Context, data []byte, folder, name string) (string, error)
}
