// internal/common/httpclient/client.go
package httpclient

import (
	"net/http"
	"time"
)

// New builds the shared HTTP client used for outbound calls. The per-request
// context still governs cancellation; the client timeout is a backstop.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}
