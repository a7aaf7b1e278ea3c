package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethicomply/lms-contract-tests/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestRequestWithoutTokenHasNoAuthorizationHeader(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithJSONResponse(
		map[string]interface{}{"ok": true}, nil))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := NewAPIClient(server.URL, time.Second)
		resp, err := c.Get(context.Background(), "/courses")
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		r := <-requestsCh
		assert.Equal(t, "GET", r.Request.Method)
		assert.Equal(t, "/courses", r.Request.URL.Path)
		assert.Empty(t, r.Request.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
	})
}

func TestTokenIsSentAsBearerAndSharedWithLoggerCopies(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := NewAPIClient(server.URL+"/", time.Second)
		scoped := c.WithLogger(framework.NullLogger())
		scoped.SetToken("abc123")
		assert.Equal(t, "abc123", c.Token())

		_, err := c.Get(context.Background(), "/auth/me")
		require.NoError(t, err)
		r := <-requestsCh
		assert.Equal(t, "Bearer abc123", r.Request.Header.Get("Authorization"))
		assert.Equal(t, "/auth/me", r.Request.URL.Path)

		_, err = c.WithoutToken().Get(context.Background(), "/auth/me")
		require.NoError(t, err)
		r = <-requestsCh
		assert.Empty(t, r.Request.Header.Get("Authorization"))
		assert.Equal(t, "abc123", c.Token())
	})
}

func TestPostSendsJSONBodyQueryAndExtraHeaders(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := NewAPIClient(server.URL, time.Second)
		c.SetToken("t")
		_, err := c.Do(context.Background(), Request{
			Method:  "POST",
			Path:    "/statements",
			Query:   map[string][]string{"limit": {"5"}},
			Body:    map[string]string{"hello": "world"},
			Headers: map[string]string{"Authorization": "Basic xyz", "X-Experience-API-Version": "1.0.3"},
		})
		require.NoError(t, err)

		r := <-requestsCh
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "5", r.Request.URL.Query().Get("limit"))
		assert.JSONEq(t, `{"hello":"world"}`, string(r.Body))
		assert.Equal(t, "Basic xyz", r.Request.Header.Get("Authorization"))
		assert.Equal(t, "1.0.3", r.Request.Header.Get("X-Experience-API-Version"))
	})
}

func TestErrorStatusIsReturnedAsResponse(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(400, http.Header{"Content-Type": {"application/json"}},
		[]byte(`{"error":"User already exists"}`))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		resp, err := NewAPIClient(server.URL, time.Second).Post(context.Background(), "/auth/register", nil)
		require.NoError(t, err)
		assert.False(t, resp.IsSuccess())
		assert.Equal(t, "User already exists", resp.ErrorMessage())

		_, err = resp.Decode("Registration")
		var pe *ProtocolError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 400, pe.StatusCode)
		assert.Equal(t, "Registration failed: User already exists", err.Error())
		assert.Equal(t, "protocol", Kind(err))
	})
}

func TestBrokenConnectionIsTransportError(t *testing.T) {
	httphelpers.WithServer(httphelpers.BrokenConnectionHandler(), func(server *httptest.Server) {
		resp, err := NewAPIClient(server.URL, time.Second).Get(context.Background(), "/courses")
		assert.Nil(t, resp)
		var te *TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "GET", te.Method)
		assert.Contains(t, err.Error(), "Request failed - no response")
		assert.Equal(t, "transport", Kind(err))
	})
}

func TestTimeoutIsTransportError(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})
	httphelpers.WithServer(slow, func(server *httptest.Server) {
		_, err := NewAPIClient(server.URL, time.Millisecond*50).Get(context.Background(), "/analytics")
		var te *TransportError
		assert.True(t, errors.As(err, &te))
	})
}

func TestCancelledContextIsTransportError(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(200), func(server *httptest.Server) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewAPIClient(server.URL, time.Second).Get(ctx, "/progress")
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, "transport", Kind(err))
	})
}

func TestDecode(t *testing.T) {
	ok := &Response{StatusCode: 200, Body: []byte(`{"success":true,"id":"s1"}`)}
	v, err := ok.Decode("Statement")
	require.NoError(t, err)
	assert.Equal(t, "s1", v.GetByKey("id").StringValue())

	malformed := &Response{StatusCode: 200, Body: []byte(`<html>`)}
	_, err = malformed.Decode("Statement")
	var pe *ProtocolError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, err.Error(), "Invalid JSON response")

	noBody := &Response{StatusCode: 503, Body: []byte(`Service Unavailable`)}
	_, err = noBody.Decode("Statement")
	assert.Equal(t, "Statement failed with status 503", err.Error())
}

func TestErrorMessageFallsBackToMessageProperty(t *testing.T) {
	r := &Response{StatusCode: 404, Body: []byte(`{"message":"not here"}`)}
	assert.Equal(t, "not here", r.ErrorMessage())

	r = &Response{StatusCode: 404, Body: []byte(`["error"]`)}
	assert.Equal(t, "", r.ErrorMessage())
}

func TestContractErrorKind(t *testing.T) {
	err := &ContractError{Message: "Invalid course format", Body: ldvalue.ObjectBuild().Build()}
	assert.Equal(t, "contract", Kind(err))
	assert.Equal(t, "", Kind(errors.New("other")))
}

func TestRequestsAreLoggedAsCurlCommands(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithJSONResponse([]string{"a"}, nil), func(server *httptest.Server) {
		var logger framework.CapturingLogger
		c := NewAPIClient(server.URL, time.Second).WithLogger(&logger)
		c.SetToken("0123456789abcdef")
		_, err := c.Post(context.Background(), "/quiz/submit", map[string]string{"q1": "it's"})
		require.NoError(t, err)

		output := logger.Output()
		require.Len(t, output, 2)
		assert.Contains(t, output[0].Message, "curl -sS -X POST")
		assert.Contains(t, output[0].Message, "'Authorization: Bearer 012345...'")
		assert.NotContains(t, output[0].Message, "0123456789abcdef")
		assert.Contains(t, output[0].Message, `'{"q1":"it'"'"'s"}'`)
		assert.Contains(t, output[1].Message, "Response: HTTP 200")
	})
}
