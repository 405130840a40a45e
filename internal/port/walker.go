package port

import "io"

type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

type FileInfo struct {
	Path    string
	ModTime int64
	Size    int64
}

// DocumentSource opens a document by path. Implementations read the
// whole document before returning so a failure surfaces before parsing.
type DocumentSource interface {
	Open(path string) (io.Reader, error)
}
