package supabase_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// QueryBuilder builds one PostgREST request
type QueryBuilder struct {
	client      *SupabaseClient
	table       string
	method      string
	columns     string
	filters     []string
	limitVal    *int
	body        []byte
	headers     map[string]string
	accessToken string
	err         error
}

func (q *QueryBuilder) Select(columns string) *QueryBuilder {
	q.method = http.MethodGet
	q.columns = columns
	return q
}

// Upsert inserts data, merging rows that collide on the onConflict columns
func (q *QueryBuilder) Upsert(data interface{}, onConflict string) *QueryBuilder {
	q.method = http.MethodPost
	q.body, q.err = json.Marshal(data)
	q.headers[PreferHeader] = "return=minimal,resolution=merge-duplicates"
	if onConflict != "" {
		q.filters = append(q.filters, "on_conflict="+url.QueryEscape(onConflict))
	}
	return q
}

func (q *QueryBuilder) Delete() *QueryBuilder {
	q.method = http.MethodDelete
	q.headers[PreferHeader] = "return=minimal"
	return q
}

// Eq adds an equality filter
func (q *QueryBuilder) Eq(column string, value interface{}) *QueryBuilder {
	q.filters = append(q.filters, fmt.Sprintf("%s=eq.%s", column, url.QueryEscape(fmt.Sprint(value))))
	return q
}

func (q *QueryBuilder) Limit(n int) *QueryBuilder {
	q.limitVal = &n
	return q
}

// Single expects exactly one row back as an object
func (q *QueryBuilder) Single() *QueryBuilder {
	q.headers[AcceptHeader] = singleObjectMediaType
	return q
}

// WithToken runs the query as the user owning accessToken
func (q *QueryBuilder) WithToken(accessToken string) *QueryBuilder {
	q.accessToken = accessToken
	return q
}

func (q *QueryBuilder) buildURL() string {
	var sb strings.Builder
	sb.WriteString(RestPath + "/" + q.table)

	params := make([]string, 0, len(q.filters)+2)
	if q.method == http.MethodGet {
		params = append(params, "select="+url.QueryEscape(q.columns))
	}
	params = append(params, q.filters...)
	if q.limitVal != nil {
		params = append(params, fmt.Sprintf("limit=%d", *q.limitVal))
	}
	if len(params) > 0 {
		sb.WriteString("?")
		sb.WriteString(strings.Join(params, "&"))
	}
	return sb.String()
}

// Execute runs the query and returns the raw response body
func (q *QueryBuilder) Execute(ctx context.Context) ([]byte, error) {
	if q.err != nil {
		return nil, fmt.Errorf("marshal body: %w", q.err)
	}

	headers := make(map[string]string, len(q.headers)+1)
	for k, v := range q.headers {
		headers[k] = v
	}
	if q.accessToken != "" {
		headers[AuthorizationHeader] = "Bearer " + q.accessToken
	}

	respBody, status, err := q.client.Do(ctx, q.method, q.buildURL(), bytes.NewReader(q.body), headers)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, parseError(respBody, status)
	}
	return respBody, nil
}

// ExecuteInto runs the query and decodes the response into dest
func (q *QueryBuilder) ExecuteInto(ctx context.Context, dest interface{}) error {
	data, err := q.Execute(ctx)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
