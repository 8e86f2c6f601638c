package idempotency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutIfAbsent(t *testing.T) {
	store := NewMemoryStore(DefaultTokenTTL)
	defer store.Close()

	require.NoError(t, store.PutIfAbsent(context.Background(), "abc-123"))
	require.ErrorIs(t, store.PutIfAbsent(context.Background(), "abc-123"), ErrDuplicateKey)
	require.NoError(t, store.PutIfAbsent(context.Background(), "def-456"))
	require.Equal(t, 2, store.Len())
}

func TestMemoryStore_ExpiredTokenReclaimed(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	defer store.Close()

	require.NoError(t, store.PutIfAbsent(context.Background(), "abc-123"))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, store.PutIfAbsent(context.Background(), "abc-123"))
}

func TestMemoryStore_ConcurrentClaimsSingleWinner(t *testing.T) {
	store := NewMemoryStore(DefaultTokenTTL)
	defer store.Close()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.PutIfAbsent(context.Background(), "contended") == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), wins.Load())
}

func newGuardedRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/orders", Middleware(store, nil), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"key": KeyFromContext(c)})
	})
	return router
}

func TestMiddleware_MissingHeader(t *testing.T) {
	store := NewMemoryStore(DefaultTokenTTL)
	defer store.Close()
	router := newGuardedRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Idempotency-Key")
}

func TestMiddleware_FirstAcceptedSecondConflicts(t *testing.T) {
	store := NewMemoryStore(DefaultTokenTTL)
	defer store.Close()
	router := newGuardedRouter(store)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set(HeaderName, "token-1")
	router.ServeHTTP(first, req)
	require.Equal(t, http.StatusCreated, first.Code)
	require.Contains(t, first.Body.String(), "token-1")

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set(HeaderName, "token-1")
	router.ServeHTTP(second, req)
	require.Equal(t, http.StatusConflict, second.Code)
	require.Contains(t, second.Body.String(), "token-1")
}

func TestMiddleware_DistinctTokensBothPass(t *testing.T) {
	store := NewMemoryStore(DefaultTokenTTL)
	defer store.Close()
	router := newGuardedRouter(store)

	for _, token := range []string{"token-a", "token-b"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set(HeaderName, token)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}
}
