// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/aem/schema"
)

// RecordLoader defines the operations needed to read financial records.
// This allows the scoring commands to be tested without touching the filesystem.
type RecordLoader interface {
	// Load reads and decodes a single record from the given source.
	Load(ctx context.Context, source string) (*schema.FinancialRecord, error)

	// Expand resolves a source into the record sources it contains. A directory
	// yields every record file inside it; a file yields itself.
	Expand(ctx context.Context, source string) ([]string, error)
}
