package types

// ImageRecord is a stored image payload keyed by a surrogate id. Data is
// the base64-encoded (or otherwise opaque) payload handed over by the
// image-processing collaborator. On a batch read, a missing key comes
// back with an empty Data rather than an error; a read miss is expected.
type ImageRecord struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}
