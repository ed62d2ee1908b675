package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/argenis972/portfolio-backend/internal/logging"
	"github.com/argenis972/portfolio-backend/internal/requestctx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderRequestID    = "X-Request-ID"
	HeaderResponseTime = "X-Response-Time"

	// ContextKeyRequestID is the gin context key holding the correlation id.
	ContextKeyRequestID = "request_id"
)

// timingWriter stamps X-Response-Time right before the headers go out.
type timingWriter struct {
	gin.ResponseWriter
	start   time.Time
	stamped bool
}

func (w *timingWriter) stamp() {
	if w.stamped || w.ResponseWriter.Written() {
		return
	}
	w.stamped = true
	w.Header().Set(HeaderResponseTime, formatMillis(time.Since(w.start)))
}

func (w *timingWriter) WriteHeaderNow() {
	w.stamp()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *timingWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(b)
}

func (w *timingWriter) WriteString(s string) (int, error) {
	w.stamp()
	return w.ResponseWriter.WriteString(s)
}

func (w *timingWriter) Flush() {
	w.stamp()
	w.ResponseWriter.Flush()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%.2fms", millis(d))
}

// RequestContext runs every request through Start, Dispatch and Finalize.
// Start assigns a fresh correlation id and puts a request-scoped logger and
// requestctx.Info into the request context. Finalize logs the response and
// restores the caller's context.
func RequestContext(base *zap.Logger) gin.HandlerFunc {
	if base == nil {
		base = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		info := requestctx.Info{
			ID:        uuid.NewString(),
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			StartedAt: start,
		}
		log := base.With(
			zap.String("request_id", info.ID),
			zap.String("metodo", info.Method),
			zap.String("path", info.Path),
		)

		original := c.Request
		ctx := logging.WithLogger(requestctx.WithInfo(original.Context(), info), log)
		c.Request = original.WithContext(ctx)
		c.Set(ContextKeyRequestID, info.ID)
		c.Header(HeaderRequestID, info.ID)

		tw := &timingWriter{ResponseWriter: c.Writer, start: start}
		c.Writer = tw

		fields := []zap.Field{zap.String("client_ip", c.ClientIP())}
		if q := original.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		log.Info("requisicao_recebida", fields...)

		defer func() {
			elapsed := info.Elapsed()
			tw.stamp()
			log.Info("resposta_enviada",
				zap.Int("status_code", tw.Status()),
				zap.Float64("duracao_ms", roundMillis(elapsed)),
			)
			c.Request = original
		}()

		c.Next()

		if last := c.Errors.Last(); last != nil {
			level := zap.ErrorLevel
			if statusFor(last) < http.StatusInternalServerError {
				level = zap.WarnLevel
			}
			log.Log(level, "erro_processamento_requisicao",
				zap.String("tipo_erro", fmt.Sprintf("%T", last.Err)),
				zap.String("erro", last.Err.Error()),
			)
		}
	}
}

func roundMillis(d time.Duration) float64 {
	return float64(int64(millis(d)*100+0.5)) / 100
}
