package allocator

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	xhttp "SmartAllocator/pkg/http"
)

// errorBody is the error envelope the allocator service produces on failure.
// detail is usually an object but FastAPI-style services may emit a bare
// string; both shapes are accepted.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// postJSON posts payload to path under the client base URL and decodes the
// 2xx JSON body into dest. Non-2xx responses become *ServiceError with the
// remote structured message when one is present; connection failures become
// *TransportError. There is exactly one round trip, never a retry.
func (c *Client) postJSON(ctx context.Context, path string, payload, dest interface{}) error {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     c.baseURL + path,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    payload,
	})
	if err != nil {
		return &TransportError{Op: "post " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeServiceError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &ServiceError{
			StatusCode: resp.StatusCode,
			Message:    "allocator service returned a malformed body",
		}
	}
	return nil
}

func decodeServiceError(resp *http.Response) *ServiceError {
	svcErr := &ServiceError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil || len(body) == 0 {
		return svcErr
	}

	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return svcErr
	}

	var detail errorDetail
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil && detail.Message != "" {
		svcErr.Code = detail.Code
		svcErr.Message = detail.Message
		return svcErr
	}

	var plain string
	if err := json.Unmarshal(envelope.Detail, &plain); err == nil {
		svcErr.Message = plain
	}
	return svcErr
}
