package recordio

import (
	"context"

	"github.com/huangsam/aem/internal/contract"
	"github.com/huangsam/aem/schema"
	"github.com/stretchr/testify/mock"
)

// MockRecordLoader is a mock implementation of RecordLoader for testing.
type MockRecordLoader struct {
	mock.Mock
}

var _ contract.RecordLoader = &MockRecordLoader{} // Compile-time check

// Load implements the RecordLoader interface.
func (m *MockRecordLoader) Load(ctx context.Context, source string) (*schema.FinancialRecord, error) {
	args := m.Called(ctx, source)
	record, _ := args.Get(0).(*schema.FinancialRecord)
	return record, args.Error(1)
}

// Expand implements the RecordLoader interface.
func (m *MockRecordLoader) Expand(ctx context.Context, source string) ([]string, error) {
	args := m.Called(ctx, source)
	paths, _ := args.Get(0).([]string)
	return paths, args.Error(1)
}
