package placeholder

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/samvad-hq/placeholder-client/pkg/httpclient"
)

// TransportFailureStatus is reported when no server response was received.
const TransportFailureStatus = http.StatusInternalServerError

const unknownTransportError = "transport failure"

// Outcome is the uniform result of every client call.
//
// Exactly one of two shapes applies:
//   - a server response was received: StatusCode, Data, Headers and URL reflect
//     it, OK is true for 2xx, Error is empty;
//   - the request never reached a response: StatusCode is 500, Data is nil,
//     Headers is empty, URL is "", OK is false and Error describes the failure.
type Outcome struct {
	StatusCode int         `json:"status_code"`
	Data       any         `json:"data"`
	Headers    http.Header `json:"headers"`
	URL        string      `json:"url"`
	OK         bool        `json:"ok"`
	Error      string      `json:"error,omitempty"`

	// Body is the raw response body.
	Body []byte `json:"-"`
}

// Failed reports whether the outcome is a transport failure.
func (o Outcome) Failed() bool { return o.Error != "" }

// Decode unmarshals the raw response body into v.
func (o Outcome) Decode(v any) error {
	if o.Failed() {
		return errors.New(o.Error)
	}
	if len(bytes.TrimSpace(o.Body)) == 0 {
		return errors.New("empty response body")
	}
	return json.Unmarshal(o.Body, v)
}

// Object returns Data as a JSON object, or nil.
func (o Outcome) Object() map[string]any {
	m, _ := o.Data.(map[string]any)
	return m
}

// List returns Data as a JSON array, or nil.
func (o Outcome) List() []any {
	l, _ := o.Data.([]any)
	return l
}

// transportResult is what the transport boundary hands to the normalizer:
// either a responseResult or a failureResult.
type transportResult interface {
	isTransportResult()
}

type responseResult struct {
	resp httpclient.Response
}

type failureResult struct {
	err error
}

func (responseResult) isTransportResult() {}
func (failureResult) isTransportResult()  {}

// resultOf converts a transport call's return values into a transportResult.
func resultOf(resp httpclient.Response, err error) transportResult {
	if err != nil || resp == nil {
		return failureResult{err: err}
	}
	return responseResult{resp: resp}
}

// normalize maps a transport result onto an Outcome. It never panics.
func normalize(res transportResult) Outcome {
	switch r := res.(type) {
	case responseResult:
		return fromResponse(r.resp)
	case failureResult:
		return fromError(r.err)
	default:
		return fromError(nil)
	}
}

// FromResponse builds the outcome for a received response.
func FromResponse(resp httpclient.Response) Outcome {
	return normalize(resultOf(resp, nil))
}

// FromError builds the outcome for a transport failure.
func FromError(err error) Outcome {
	return normalize(failureResult{err: err})
}

func fromResponse(resp httpclient.Response) Outcome {
	body := resp.Body()
	headers := http.Header{}
	if h := resp.Header(); h != nil {
		headers = h.Clone()
	}
	return Outcome{
		StatusCode: resp.StatusCode(),
		Data:       decodeBody(body),
		Headers:    headers,
		URL:        resp.URL(),
		OK:         resp.IsSuccess(),
		Body:       body,
	}
}

func fromError(err error) Outcome {
	msg := unknownTransportError
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Outcome{
		StatusCode: TransportFailureStatus,
		Headers:    http.Header{},
		Error:      msg,
	}
}

// decodeBody parses a JSON body, yielding nil for empty or invalid input.
func decodeBody(body []byte) any {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil
	}
	return data
}
