package httpadapter

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

type requestRecorder interface {
	RecordRequest(status int)
}

// AccessLog logs one line per request and counts responses by status code.
// Either argument may be nil.
func AccessLog(logger *zap.Logger, recorder requestRecorder) app.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		requestID := string(ctx.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Response.Header.Set(requestIDHeader, requestID)

		ctx.Next(c)

		status := ctx.Response.StatusCode()
		if recorder != nil {
			recorder.RecordRequest(status)
		}
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", string(ctx.Method())),
			zap.String("path", string(ctx.Path())),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		switch {
		case status >= 500:
			logger.Error("request", fields...)
		case status >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
