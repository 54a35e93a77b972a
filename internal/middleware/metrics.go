package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/rai-ahmadfraz/split-it-api/internal/metrics"
)

// MetricsInterceptor counts and times every RPC. Install it outermost so
// rejected calls are counted too.
func MetricsInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.ObserveRPC(req.Spec().Procedure, code, time.Since(start).Seconds())
			return resp, err
		}
	}
}
