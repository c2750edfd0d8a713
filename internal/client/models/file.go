package models

// LocalFile is a video picked from the local filesystem, read fully into memory.
type LocalFile struct {
	Path     string
	Name     string
	MIMEType string
	Data     []byte
}

// Size returns the length of the file contents in bytes.
func (f LocalFile) Size() int { return len(f.Data) }
