package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/huangsam/aem/internal/recordio"
	"github.com/huangsam/aem/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScoreBatch(t *testing.T) {
	t.Run("results keep input order", func(t *testing.T) {
		loader := &recordio.MockRecordLoader{}
		var sources []string
		for i := range 20 {
			source := fmt.Sprintf("records/%02d.json", i)
			sources = append(sources, source)
			r := harborViewSchool()
			r.OrganizationName = fmt.Sprintf("School %02d", i)
			r.TotalRevenue = schema.Float(50000000 + float64(i)*1000000)
			loader.On("Load", mock.Anything, source).Return(r, nil)
		}

		batch, err := ScoreBatch(context.Background(), DefaultEngine(), loader, sources, 4)
		require.NoError(t, err)
		require.Len(t, batch.Results, 20)
		assert.Empty(t, batch.Failures)
		assert.NotEmpty(t, batch.RunID)
		for i, r := range batch.Results {
			assert.Equal(t, sources[i], r.Source)
			assert.Equal(t, fmt.Sprintf("School %02d", i), r.Organization)
		}
		loader.AssertExpectations(t)
	})

	t.Run("matches sequential scoring", func(t *testing.T) {
		loader := &recordio.MockRecordLoader{}
		loader.On("Load", mock.Anything, "a.json").Return(shadySideAcademy(), nil)
		loader.On("Load", mock.Anything, "b.json").Return(harborViewSchool(), nil)

		batch, err := ScoreBatch(context.Background(), DefaultEngine(), loader, []string{"a.json", "b.json"}, 2)
		require.NoError(t, err)

		for i, r := range []*schema.FinancialRecord{shadySideAcademy(), harborViewSchool()} {
			expected, err := DefaultEngine().Score(r)
			require.NoError(t, err)
			assert.Equal(t, expected, batch.Results[i].AEMResult)
		}
	})

	t.Run("failures are collected", func(t *testing.T) {
		broken := harborViewSchool()
		broken.TotalExpenses = nil

		loader := &recordio.MockRecordLoader{}
		loader.On("Load", mock.Anything, "good.json").Return(shadySideAcademy(), nil)
		loader.On("Load", mock.Anything, "missing.json").Return(nil, errors.New("failed to load record missing.json: no such file"))
		loader.On("Load", mock.Anything, "broken.json").Return(broken, nil)

		batch, err := ScoreBatch(context.Background(), DefaultEngine(), loader, []string{"good.json", "missing.json", "broken.json"}, 0)
		require.NoError(t, err)
		require.Len(t, batch.Results, 1)
		assert.Equal(t, "Shady Side Academy", batch.Results[0].Organization)
		require.Len(t, batch.Failures, 2)
		assert.Equal(t, "missing.json", batch.Failures[0].Source)
		assert.Equal(t, "broken.json", batch.Failures[1].Source)
		assert.Contains(t, batch.Failures[1].Error, "total_expenses")
	})

	t.Run("run id comes from context", func(t *testing.T) {
		loader := &recordio.MockRecordLoader{}
		loader.On("Load", mock.Anything, "a.json").Return(shadySideAcademy(), nil)

		ctx := withRunID(context.Background(), "run-42")
		batch, err := ScoreBatch(ctx, DefaultEngine(), loader, []string{"a.json"}, 1)
		require.NoError(t, err)
		assert.Equal(t, "run-42", batch.RunID)
	})

	t.Run("empty input", func(t *testing.T) {
		batch, err := ScoreBatch(context.Background(), DefaultEngine(), &recordio.MockRecordLoader{}, nil, 4)
		require.NoError(t, err)
		assert.Empty(t, batch.Results)
		assert.Empty(t, batch.Failures)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ScoreBatch(ctx, DefaultEngine(), &recordio.MockRecordLoader{}, []string{"a.json", "b.json"}, 2)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func BenchmarkScoreBatch(b *testing.B) {
	loader := &recordio.MockRecordLoader{}
	sources := make([]string, 100)
	for i := range sources {
		sources[i] = fmt.Sprintf("records/%03d.json", i)
		loader.On("Load", mock.Anything, sources[i]).Return(shadySideAcademy(), nil)
	}
	engine := DefaultEngine()
	ctx := context.Background()

	for b.Loop() {
		_, _ = ScoreBatch(ctx, engine, loader, sources, 4)
	}
}
