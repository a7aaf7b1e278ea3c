package client

import (
	"net/http"
	"sort"
	"strings"

	"github.com/alessio/shellescape"
)

const redactedTokenPrefixLength = 6

// curlCommand renders req as a shell command that sends the same request, for debug output.
// The bearer token is shortened so that it does not end up in logs.
func curlCommand(req *http.Request, body []byte) string {
	var b commandBuilder
	b.add("curl", "-sS", "-X", req.Method)

	names := make([]string, 0, len(req.Header))
	for name := range req.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, value := range req.Header[name] {
			if name == "Authorization" {
				value = redactAuthorization(value)
			}
			b.add("-H", name+": "+value)
		}
	}
	if len(body) > 0 {
		b.add("--data", string(body))
	}
	b.add(req.URL.String())
	return b.String()
}

func redactAuthorization(value string) string {
	token := strings.TrimPrefix(value, "Bearer ")
	if len(token) <= redactedTokenPrefixLength {
		return "Bearer ..."
	}
	return "Bearer " + token[:redactedTokenPrefixLength] + "..."
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
