package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/redis"
)

// Idempotency deduplicates submissions carrying a client-generated
// Idempotency-Key header. A double-click or a network-layer retry would
// otherwise trigger duplicate provider sends; within the retention window the
// stored response is replayed instead.
//
// Only successful (2xx) responses are stored: a failed attempt must stay
// retryable under the same key. Requests without the header pass through
// untouched.

const (
	idempotencyHeader = "Idempotency-Key"
	replayHeader      = "X-Idempotent-Replay"
	idempotencyPrefix = "idem:"
)

// storedResponse is the cached outcome of a completed request.
type storedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

type idemEntry struct {
	resp      storedResponse
	expiresAt time.Time
}

const maxIdempotencyKeyLen = 128

var (
	idemStore       = sync.Map{} // in-memory fallback
	idemCleanupOnce sync.Once
)

func startIdemCleanup() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		for range ticker.C {
			now := time.Now()
			idemStore.Range(func(key, value interface{}) bool {
				if now.After(value.(*idemEntry).expiresAt) {
					idemStore.Delete(key)
				}
				return true
			})
		}
	}()
}

// bodyCaptureWriter tees the response body so it can be stored for replay.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// IdempotencyMiddleware returns the deduplication middleware with the given
// retention window.
func IdempotencyMiddleware(retention time.Duration) gin.HandlerFunc {
	idemCleanupOnce.Do(startIdemCleanup)

	return func(c *gin.Context) {
		key := c.GetHeader(idempotencyHeader)
		if key == "" || len(key) > maxIdempotencyKeyLen {
			c.Next()
			return
		}
		fullKey := idempotencyPrefix + key

		if resp, ok := lookupIdempotent(c, fullKey); ok {
			c.Header(replayHeader, "true")
			c.Data(resp.Status, "application/json; charset=utf-8", []byte(resp.Body))
			c.Abort()
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		// Error responses are written later by the error middleware, so an
		// unwritten response here must not be mistaken for the default 200.
		status := writer.Status()
		if writer.Written() && status >= http.StatusOK && status < http.StatusMultipleChoices {
			storeIdempotent(c, fullKey, storedResponse{Status: status, Body: writer.body.String()}, retention)
		}
	}
}

func lookupIdempotent(c *gin.Context, key string) (storedResponse, bool) {
	if client := redis.Client(); client != nil {
		raw, err := client.Get(c.Request.Context(), key).Result()
		if err == nil {
			var resp storedResponse
			if json.Unmarshal([]byte(raw), &resp) == nil {
				return resp, true
			}
		}
		return storedResponse{}, false
	}

	value, ok := idemStore.Load(key)
	if !ok {
		return storedResponse{}, false
	}
	entry := value.(*idemEntry)
	if time.Now().After(entry.expiresAt) {
		idemStore.Delete(key)
		return storedResponse{}, false
	}
	return entry.resp, true
}

func storeIdempotent(c *gin.Context, key string, resp storedResponse, retention time.Duration) {
	if client := redis.Client(); client != nil {
		raw, err := json.Marshal(resp)
		if err == nil {
			err = client.Set(c.Request.Context(), key, raw, retention).Err()
		}
		if err != nil {
			logger.Log.Warn("idempotency store failed", "error", err)
		}
		return
	}

	idemStore.Store(key, &idemEntry{resp: resp, expiresAt: time.Now().Add(retention)})
}
