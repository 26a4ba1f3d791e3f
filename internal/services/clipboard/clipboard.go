// Package clipboard places the assembled document on the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier copies a generated document to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs the Copier used by the copy flag.
func NewService() *Service {
	return &Service{}
}

// Copy writes the document text to the system clipboard.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

var _ Copier = (*Service)(nil)
