package uploads

// FileMetadata describes a stored document. Key is the external identifier
// callers keep to fetch or delete the file later.
type FileMetadata struct {
	Key      string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"webViewLink"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// File is a fetched document.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}
