// Package rpc holds the Connect plumbing shared by every service: a JSON codec
// for plain Go request/response types, interceptors, and error mapping.
package rpc

import (
	"context"
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec marshals plain Go structs as JSON. It registers under the "json"
// name so clients posting application/json reach the handlers.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// NewUnaryHandler builds a Connect unary handler that speaks JSON
func NewUnaryHandler[Req, Res any](
	procedure string,
	unary func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts ...connect.HandlerOption,
) *connect.Handler {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	return connect.NewUnaryHandler(procedure, unary, opts...)
}

// NewClient builds a Connect client for one procedure, used by tests and tools
func NewClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts ...connect.ClientOption) *connect.Client[Req, Res] {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return connect.NewClient[Req, Res](httpClient, baseURL+procedure, opts...)
}
