// Package storage is a persistence interface for page documents.
package storage

import (
	"context"
	"errors"
)

// NotFound is returned when a site or document doesn't exist.
var NotFound = errors.New("not found")

// Block is one component instance in a document.
//
// Props values are either bare literals or WrappedValues in their map
// form.  Storage doesn't care which; it just round-trips JSON.
type Block struct {
	// Bid is the id for the block.
	Bid string `json:"id,omitempty"`

	Type  string                 `json:"type"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Document is an ordered sequence of blocks.
type Document struct {
	// Did is the id for the document.
	Did string `json:"id,omitempty"`

	Blocks []*Block `json:"blocks"`

	// Deleted indicates that this document has been deleted.
	//
	// Yes, this flag is a hack.
	Deleted bool `json:"-" yaml:"-"`
}

// Copy makes a deep-enough copy of the Document (fresh Blocks slice,
// shared Props).
func (d *Document) Copy() *Document {
	if d == nil {
		return nil
	}
	acc := *d
	if d.Blocks != nil {
		acc.Blocks = make([]*Block, len(d.Blocks))
		copy(acc.Blocks, d.Blocks)
	}
	return &acc
}

// Storage is a persistence interface that's suitable for sites of
// documents.
type Storage interface {
	MakeSite(ctx context.Context, sid string) error

	RemSite(ctx context.Context, sid string) error

	GetSite(ctx context.Context, sid string) ([]*Document, error)

	GetDoc(ctx context.Context, sid string, did string) (*Document, error)

	// WriteDocs writes (or, when Deleted is set, removes) the
	// given documents.
	WriteDocs(ctx context.Context, sid string, ds []*Document) error
}
