package ports

import "context"

// Clipboard receives copied text
type Clipboard interface {
	WriteAll(text string) error
}

// FileSink stores downloaded artifacts
type FileSink interface {
	// Save writes data under name and returns the final path.
	Save(ctx context.Context, name string, data []byte) (string, error)
}
