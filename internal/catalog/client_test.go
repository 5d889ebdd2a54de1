package catalog

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewClientTimeoutOptionOrder(t *testing.T) {
	tests := []struct {
		name string
		opts func(hc *http.Client) []Option
	}{
		{"timeout first", func(hc *http.Client) []Option {
			return []Option{WithTimeout(5 * time.Second), WithHTTPClient(hc)}
		}},
		{"timeout last", func(hc *http.Client) []Option {
			return []Option{WithHTTPClient(hc), WithTimeout(5 * time.Second)}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := &http.Client{}
			client := NewClient("", nil, tt.opts(hc)...)

			assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
			assert.Zero(t, hc.Timeout, "caller's client must not be mutated")
		})
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("", nil)

	assert.Equal(t, DefaultBaseURL, client.BaseURL)
	assert.Equal(t, DefaultUserAgent, client.UserAgent)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)

	custom := &http.Client{Timeout: time.Minute}
	client = NewClient("https://example.org/", nil, WithHTTPClient(custom))
	assert.Equal(t, "https://example.org", client.BaseURL)
	assert.Same(t, custom, client.httpClient, "a client without WithTimeout is used as given")
}
