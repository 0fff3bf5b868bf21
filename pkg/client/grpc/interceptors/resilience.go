// Package interceptors holds the unary client interceptors used by outgoing gRPC connections.
package interceptors

import (
	"context"
	"time"

	"github.com/abgdnv/gocatalog/pkg/config"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/retry"
	"github.com/sony/gobreaker/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// transientCodes are retried and count as failures for the circuit breaker.
var transientCodes = []codes.Code{codes.Unavailable, codes.ResourceExhausted, codes.Aborted}

// NewRetryInterceptor creates a gRPC unary client interceptor with retry logic.
func NewRetryInterceptor(cfg config.RetryConfig) grpc.UnaryClientInterceptor {
	return retry.UnaryClientInterceptor(
		retry.WithCodes(transientCodes...),
		retry.WithMax(cfg.MaxAttempts),
		retry.WithBackoff(retry.BackoffExponential(cfg.InitialBackoff)),
	)
}

// UnaryCircuitBreakerInterceptor returns a gRPC unary client interceptor that wraps calls in cb.
// Only the error is passed to the breaker; the reply is filled by the invoker.
func UnaryCircuitBreakerInterceptor[T any](cb *gobreaker.CircuitBreaker[T]) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		var zero T
		_, err := cb.Execute(func() (T, error) {
			return zero, invoker(ctx, method, req, reply, cc, opts...)
		})
		return err
	}
}

// NewCircuitBreaker creates a breaker interceptor named name. NotFound, InvalidArgument and other
// non-transient codes are answers, not failures.
func NewCircuitBreaker(name string, cfg config.CircuitBreakerConfig) grpc.UnaryClientInterceptor {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			total := counts.TotalSuccesses + counts.TotalFailures
			return counts.ConsecutiveFailures > cfg.ConsecutiveFailures ||
				(total > cfg.ConsecutiveFailures &&
					float64(counts.TotalFailures)/float64(total)*100 > float64(cfg.ErrorRatePercent))
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			st, ok := status.FromError(err)
			if !ok {
				return false
			}
			for _, code := range transientCodes {
				if st.Code() == code {
					return false
				}
			}
			return true
		},
	}
	return UnaryCircuitBreakerInterceptor(gobreaker.NewCircuitBreaker[any](st))
}

// UnaryClientTimeoutInterceptor cuts a single attempt after timeout. The caller's deadline still
// applies when it is shorter.
func UnaryClientTimeoutInterceptor(timeout time.Duration) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return invoker(attemptCtx, method, req, reply, cc, opts...)
	}
}

// Chain returns the interceptors for cfg in call order: retry around the breaker,
// the breaker around a single attempt bounded by cfg.Timeout.
func Chain(name string, cfg config.ResilienceConfig) []grpc.UnaryClientInterceptor {
	return []grpc.UnaryClientInterceptor{
		NewRetryInterceptor(cfg.Retry),
		NewCircuitBreaker(name, cfg.CircuitBreaker),
		UnaryClientTimeoutInterceptor(cfg.Timeout),
	}
}
