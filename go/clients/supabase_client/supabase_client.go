package supabase_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/iamdexbot/Scoreboard-Pro/go/clients"
)

// SupabaseClient talks to a Supabase project's PostgREST and auth APIs with the anon key.
// Row level security applies per user, so table calls carry the user's access token.
type SupabaseClient struct {
	*clients.BaseClient
	anonKey string
}

func NewSupabaseClient(projectURL, anonKey string) *SupabaseClient {
	client := &SupabaseClient{
		BaseClient: clients.NewBaseClient(strings.TrimRight(projectURL, "/")),
		anonKey:    anonKey,
	}

	client.SetHeader(APIKeyHeader, anonKey)
	client.SetHeader("Content-Type", "application/json")

	return client
}

// From starts a query against table
func (c *SupabaseClient) From(table string) *QueryBuilder {
	return &QueryBuilder{
		client:  c,
		table:   table,
		method:  http.MethodGet,
		columns: "*",
		headers: make(map[string]string),
	}
}

// SignInWithPassword exchanges email and password for a session
func (c *SupabaseClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var session Session
	if err := c.call(ctx, http.MethodPost, PasswordGrantEndpoint, body, "", &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetUser returns the user an access token belongs to
func (c *SupabaseClient) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var user User
	if err := c.call(ctx, http.MethodGet, UserEndpoint, nil, accessToken, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignOut revokes the session behind accessToken
func (c *SupabaseClient) SignOut(ctx context.Context, accessToken string) error {
	return c.call(ctx, http.MethodPost, LogoutEndpoint, nil, accessToken, nil)
}

func (c *SupabaseClient) call(ctx context.Context, method, endpoint string, body []byte, accessToken string, dest interface{}) error {
	headers := map[string]string{}
	if accessToken != "" {
		headers[AuthorizationHeader] = "Bearer " + accessToken
	}

	respBody, status, err := c.Do(ctx, method, endpoint, bytes.NewReader(body), headers)
	if err != nil {
		return err
	}
	if status >= 400 {
		return parseError(respBody, status)
	}
	if dest == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, dest); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func parseError(body []byte, statusCode int) error {
	var errResp struct {
		Code             string `json:"code"`
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return &Error{StatusCode: statusCode, Code: "unknown", Message: string(body)}
	}

	msg := errResp.Message
	for _, alt := range []string{errResp.ErrorDescription, errResp.Error, errResp.Msg} {
		if msg == "" {
			msg = alt
		}
	}
	return &Error{StatusCode: statusCode, Code: errResp.Code, Message: msg}
}
