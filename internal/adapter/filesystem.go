package adapter

import (
	"io/fs"
	"os"
)

// Filesystem defines an interface for filesystem checks to enable mocking
//
//go:generate mockgen -source=filesystem.go -destination=../mocks/filesystem.go -package=mocks -mock_names=Filesystem=MockFilesystem
type Filesystem interface {
	Stat(name string) (fs.FileInfo, error)
}

// RealFilesystem implements Filesystem using the standard os package
type RealFilesystem struct{}

// NewFilesystem creates a new real filesystem implementation
func NewFilesystem() Filesystem {
	return &RealFilesystem{}
}

func (f *RealFilesystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}
