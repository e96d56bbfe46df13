package ports

// BlobStore persists named JSON-serializable blobs on a local medium.
//
// Write must be all-or-nothing: either the new value is visible or the old one remains.
// Read reports found=false for a key that was never written; malformed content is
// reported as an error of kind corrupt and must be treated as absent by callers.
type BlobStore interface {
	Write(key string, value any) error
	Read(key string, dst any) (found bool, err error)
	Delete(key string) error
}
