package census

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/digital-twin-agent/internal/geo"
	"github.com/BerylCAtieno/digital-twin-agent/internal/metrics"
	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

type fakeFetcher struct {
	rows    [][]string
	err     error
	queries []Query
}

func (f *fakeFetcher) Fetch(_ context.Context, q Query) ([][]string, error) {
	f.queries = append(f.queries, q)
	return f.rows, f.err
}

func TestServiceBaseline(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves state and normalizes", func(t *testing.T) {
		fetcher := &fakeFetcher{rows: californiaRows()}
		svc := NewService(fetcher, zap.NewNop(), nil)

		lookup, err := svc.Lookup(ctx, models.Location{State: "ca", City: "Fresno"})
		require.NoError(t, err)

		assert.False(t, lookup.Fallback)
		assert.Equal(t, "06", lookup.StateCode)
		assert.Equal(t, Normalize(californiaRows()), lookup.Baseline)
		require.Len(t, fetcher.queries, 1)
		assert.Equal(t, Query{StateCode: "06", City: "Fresno"}, fetcher.queries[0])
	})

	t.Run("upstream failure yields fallback", func(t *testing.T) {
		m := metrics.New(prometheus.NewRegistry())
		svc := NewService(&fakeFetcher{err: &UpstreamError{Status: 503, Message: "down"}}, zap.NewNop(), m)

		baseline, err := svc.Baseline(ctx, models.Location{State: "Texas"})
		require.NoError(t, err)

		assert.Equal(t, models.FallbackBaseline(), baseline)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CensusFallbacks))
	})

	t.Run("missing location yields fallback", func(t *testing.T) {
		svc := NewService(&fakeFetcher{err: ErrNoLocation}, zap.NewNop(), nil)

		lookup, err := svc.Lookup(ctx, models.Location{})
		require.NoError(t, err)
		assert.True(t, lookup.Fallback)
		assert.Equal(t, models.FallbackBaseline(), lookup.Baseline)
	})

	t.Run("invalid state is returned", func(t *testing.T) {
		fetcher := &fakeFetcher{rows: californiaRows()}
		svc := NewService(fetcher, zap.NewNop(), nil)

		_, err := svc.Baseline(ctx, models.Location{State: "Zanzibar"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, geo.ErrInvalidLocation))
		assert.Empty(t, fetcher.queries)
	})
}

func TestServiceRaw(t *testing.T) {
	fetcher := &fakeFetcher{rows: californiaRows()}
	svc := NewService(fetcher, nil, nil)

	rows, err := svc.Raw(context.Background(), models.Location{State: "California", ZipCode: "93701"})
	require.NoError(t, err)
	assert.Equal(t, californiaRows(), rows)
	assert.Equal(t, Query{StateCode: "06", ZipCode: "93701"}, fetcher.queries[0])

	fetcher.err = ErrStateRequired
	_, err = svc.Raw(context.Background(), models.Location{ZipCode: "93701"})
	assert.ErrorIs(t, err, ErrStateRequired)
}
