package llm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoggingProvider is a decorator that records every generation request
// in the diagnostic log. Quiz content is session-scoped and never
// persisted; the log carries metadata plus the raw bodies needed to
// debug malformed responses.
type LoggingProvider struct {
	inner  Provider
	logger *zap.Logger
}

// WithLogging wraps a Provider with request/response logging.
func WithLogging(p Provider, logger *zap.Logger) Provider {
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	requestID := uuid.NewString()

	resp, err := l.inner.Generate(ctx, req)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("purpose", PurposeFrom(ctx)),
		zap.String("model", l.inner.ModelID()),
		zap.Int64("latency_ms", time.Since(start).Milliseconds()),
		zap.Int("images", len(req.Images)),
		zap.Int("max_tokens", req.MaxTokens),
	}

	if resp != nil {
		fields = append(fields,
			zap.String("served_by", resp.Model),
			zap.String("stop_reason", resp.StopReason),
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
		)
		if cost := LookupCost(resp.Model); cost != nil {
			fields = append(fields,
				zap.Float64("est_cost_usd", cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)))
		}
	}

	if err != nil {
		fields = append(fields, zap.Error(err))
		l.logger.Warn("generation request failed", fields...)
		return resp, err
	}

	l.logger.Info("generation request", fields...)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
