package rpc

import (
	"errors"

	"connectrpc.com/connect"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/confirm"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
)

// Codes maps package sentinel errors to Connect codes
type Codes map[error]connect.Code

// Error wraps err with the code of the first sentinel it matches.
// Declined confirmations become Aborted, a missing identity Unauthenticated,
// anything unknown Internal.
func Error(err error, codes Codes) error {
	if err == nil {
		return nil
	}
	for sentinel, code := range codes {
		if errors.Is(err, sentinel) {
			return connect.NewError(code, err)
		}
	}
	switch {
	case errors.Is(err, confirm.ErrDeclined):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, store.ErrNoIdentity):
		return connect.NewError(connect.CodeUnauthenticated, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
