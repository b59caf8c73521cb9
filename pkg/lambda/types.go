package lambda

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	RequestID   string            `json:"request_id"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// HandlerFunc is a framework-agnostic handler. It always produces a
// response; failures are expressed as status codes.
type HandlerFunc func(ctx context.Context, req *Request) *Response

// FromAPIGateway converts an API Gateway REST proxy event. The request id
// comes from the request context and falls back to the X-Request-ID header.
// Bodies flagged as base64 are decoded; one that fails to decode is passed
// through unchanged and rejected by the handler as malformed.
func FromAPIGateway(event events.APIGatewayProxyRequest) *Request {
	requestID := event.RequestContext.RequestID
	if requestID == "" {
		requestID = Header(event.Headers, "X-Request-ID")
	}

	body := []byte(event.Body)
	if event.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(event.Body); err == nil {
			body = decoded
		}
	}

	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
		RequestID:   requestID,
	}
}

// ToAPIGateway converts the response into an API Gateway proxy response
func (r *Response) ToAPIGateway() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       string(r.Body),
	}
}

// Header looks up a header case-insensitively
func Header(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
