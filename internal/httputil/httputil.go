// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across providers.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 4096

// Redacted replaces credential values in URLs that appear in errors.
const Redacted = "REDACTED"

// credentialParams are query parameters whose values never leave DoJSON.
var credentialParams = []string{"api_key", "key", "access_token", "token"}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// DoJSON executes req once and decodes a 2xx JSON response body into out.
// A non-2xx response yields a *StatusError carrying the start of the body.
// There is no retry; callers see the first failure.
func DoJSON(ctx context.Context, client *http.Client, req *http.Request, out any) error {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return redactURLError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// redactURLError masks credential query parameters in the URL carried by a
// *url.Error, which client.Do includes verbatim in its message.
func redactURLError(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	ue.URL = RedactURL(ue.URL)
	return err
}

// RedactURL returns raw with the values of credential query parameters
// replaced by Redacted. Unparseable input is dropped entirely.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return Redacted
	}
	q := u.Query()
	changed := false
	for _, name := range credentialParams {
		if q.Has(name) {
			q.Set(name, Redacted)
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}
