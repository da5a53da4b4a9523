package sdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-ledger/halcyon-go/pkg/model"
)

func TestLazyFetchesOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	l := newLazy(func(ctx context.Context) (int, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	})

	const workers = 16
	var wg sync.WaitGroup
	results := make([]int, workers)
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := l.get(context.Background())
			assert.NoError(t, err)
			results[i] = v
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestLazyCachesFailure(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	fetchErr := errors.New("boom")
	l := newLazy(func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", fetchErr
	})

	_, err := l.get(context.Background())
	require.ErrorIs(t, err, fetchErr)

	// A later demand must replay the cached failure, not retry.
	_, err = l.get(context.Background())
	require.ErrorIs(t, err, fetchErr)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLazyCallerCancellationDoesNotCancelFetch(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	l := newLazy(func(ctx context.Context) (int, error) {
		<-release
		require.NoError(t, ctx.Err())
		return 7, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.get(ctx)
	require.ErrorIs(t, err, context.Canceled)

	// The fetch started by the cancelled caller still completes and serves
	// everyone else.
	close(release)
	v, err := l.get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestLazyResolvedNeverFetches(t *testing.T) {
	t.Parallel()

	l := newResolvedLazy("preset")
	v, err := l.get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "preset", v)
}

func TestFactoryResolvesNetworkTypeOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/network", r.URL.Path)
		calls.Add(1)
		fmt.Fprint(w, `{"type": 152, "name": "testnet"}`)
	}))
	defer srv.Close()

	factory, err := NewRepositoryFactory(srv.URL)
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := factory.NetworkType(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, model.NetworkTestnet, n)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestFactoryResolutionFailureIsPermanent(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"code": "Internal", "message": "node out of sync"}`)
	}))
	defer srv.Close()

	factory, err := NewRepositoryFactory(srv.URL)
	require.NoError(t, err)

	_, err = factory.NetworkType(context.Background())
	require.ErrorIs(t, err, ErrResolution)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)

	// The node has recovered, but the factory keeps replaying the first
	// outcome; recovery requires a new factory.
	_, err2 := factory.NetworkType(context.Background())
	require.ErrorIs(t, err2, ErrResolution)
	assert.Equal(t, err.Error(), err2.Error())
	assert.Equal(t, int32(1), calls.Load())
}

func TestFactoryExplicitIdentitySkipsResolution(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected call to %s", r.URL.Path)
	}))
	defer srv.Close()

	factory, err := NewRepositoryFactory(srv.URL,
		WithNetworkType(model.NetworkMainnet),
		WithGenerationHash("57F7DA205008026C776CB6AED843393F04CD458E0AA2D9F1D5F31A402072B2D6"),
	)
	require.NoError(t, err)

	n, err := factory.NetworkType(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.NetworkMainnet, n)

	hash, err := factory.GenerationHash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "57F7DA205008026C776CB6AED843393F04CD458E0AA2D9F1D5F31A402072B2D6", hash)
}
