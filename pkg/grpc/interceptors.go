package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

// Metadata keys mirror the HTTP headers so a call can be followed across
// both transports.
const (
	TraceIDMetadataKey   = "x-trace-id"
	SessionIDMetadataKey = "x-session-id"
)

// UnaryServerInterceptor tags the context with the caller's trace and
// session, bounds the call by timeout and maps AppErrors to status codes.
// A panicking handler becomes codes.Internal.
func UnaryServerInterceptor(log *logger.Logger, timeout time.Duration) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		start := time.Now()
		ctx = tagContext(ctx)

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		defer func() {
			if r := recover(); r != nil {
				err = errors.NewInternal("internal server error", fmt.Errorf("panic: %v", r))
			}

			fields := []zap.Field{
				zap.String("method", info.FullMethod),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				err = errors.GRPCStatus(err)
				fields = append(fields, zap.String("grpc_code", status.Code(err).String()), zap.Error(err))
				log.WithContext(ctx).Error("grpc request failed", fields...)
				resp = nil
				return
			}
			log.WithContext(ctx).Info("grpc request completed", fields...)
		}()

		return handler(ctx, req)
	}
}

// StreamServerInterceptor tags stream contexts the same way and logs
// when the stream ends
func StreamServerInterceptor(log *logger.Logger) grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		start := time.Now()
		tagged := &taggedStream{ServerStream: ss, ctx: tagContext(ss.Context())}

		err := handler(srv, tagged)

		log.WithContext(tagged.ctx).Info("grpc stream completed",
			zap.String("method", info.FullMethod),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return err
	}
}

type taggedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *taggedStream) Context() context.Context {
	return s.ctx
}

// tagContext copies trace and session metadata into the logger context.
// Calls without a trace get a fresh one.
func tagContext(ctx context.Context) context.Context {
	traceID := incoming(ctx, TraceIDMetadataKey)
	if traceID == "" {
		traceID = uuid.New().String()
	}
	ctx = logger.WithTraceIDContext(ctx, traceID)

	if sessionID := incoming(ctx, SessionIDMetadataKey); sessionID != "" {
		if _, err := uuid.Parse(sessionID); err == nil {
			ctx = logger.WithSessionIDContext(ctx, sessionID)
		}
	}
	return ctx
}

func incoming(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}
