package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/halcyon-ledger/halcyon-go/pkg/log"
)

// executor issues one outbound HTTP request per invocation and normalizes the
// result: a non-2xx response becomes a *StatusError built from the node's
// error body, while decode failures propagate untouched so callers can keep
// transport failures and interpretation failures apart. No retries happen at
// this layer.
type executor struct {
	base    *url.URL
	client  *http.Client
	lg      log.Logger
	metrics *Metrics
}

func (e *executor) get(ctx context.Context, op, path string, query url.Values, out any) error {
	return e.do(ctx, op, http.MethodGet, path, query, nil, out)
}

func (e *executor) post(ctx context.Context, op, path string, body, out any) error {
	return e.do(ctx, op, http.MethodPost, path, nil, body, out)
}

func (e *executor) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := *e.base
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := e.client.Do(req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		e.metrics.observe(op, "error", elapsed)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	e.metrics.observe(op, outcomeLabel(res.StatusCode), elapsed)
	e.lg.Debug("node call completed",
		"operation", op, "method", method, "path", path,
		"status", res.StatusCode, "elapsed", elapsed)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return e.statusError(res, path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

// errorBodyDTO is the node's error envelope: {"code": "...", "message": "..."}.
type errorBodyDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *executor) statusError(res *http.Response, path string) *StatusError {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))

	se := &StatusError{StatusCode: res.StatusCode, Path: path}
	var body errorBodyDTO
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		se.Code = body.Code
		se.Message = body.Message
	} else {
		se.Message = string(bytes.TrimSpace(raw))
	}
	return se
}

func outcomeLabel(status int) string {
	return strconv.Itoa(status/100) + "xx"
}
