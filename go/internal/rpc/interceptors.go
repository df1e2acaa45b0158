package rpc

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"connectrpc.com/connect"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/confirm"
	"github.com/rs/zerolog/log"
)

// ConfirmHeader carries the caller's answer to a confirmation question
const ConfirmHeader = "Confirm"

// ConfirmInterceptor copies the Confirm header onto the context for confirm.FromContext
func ConfirmInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if v := req.Header().Get(ConfirmHeader); v != "" {
				ctx = confirm.WithAnswer(ctx, parseYes(v))
			}
			return next(ctx, req)
		}
	}
}

func parseYes(v string) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "yes" || v == "y" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// SerializeInterceptor runs each call while holding l, so handlers and
// clock ticks sharing l never interleave
func SerializeInterceptor(l sync.Locker) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			l.Lock()
			defer l.Unlock()
			return next(ctx, req)
		}
	}
}

// LoggingInterceptor logs each procedure call with its outcome
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			res, err := next(ctx, req)
			ev := log.Debug()
			if err != nil {
				ev = log.Warn().Err(err).Str("code", connect.CodeOf(err).String())
			}
			ev.Str("procedure", req.Spec().Procedure).
				Dur("took", time.Since(start)).
				Msg("rpc call")
			return res, err
		}
	}
}

// DefaultInterceptors is the chain every service is mounted with
func DefaultInterceptors(l sync.Locker) connect.HandlerOption {
	return connect.WithInterceptors(
		LoggingInterceptor(),
		ConfirmInterceptor(),
		SerializeInterceptor(l),
	)
}
