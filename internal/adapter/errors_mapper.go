package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/second-brain-sync/internal/retry"
	"github.com/go-resty/resty/v2"
)

// mapHTTPError converts a non-2xx response into a package sentinel error.
// Statuses a retry can fix (429 and 5xx) come back wrapped with
// [retry.Transient]; everything else is flagged permanent so the
// cycle fails without retrying.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return retry.Permanent(fmt.Errorf("%w: %s", ErrBadRequest, body))
	case http.StatusUnauthorized:
		return retry.Permanent(fmt.Errorf("%w: %s", ErrUnauthorized, body))
	case http.StatusForbidden:
		return retry.Permanent(fmt.Errorf("%w: %s", ErrForbidden, body))
	case http.StatusNotFound:
		return retry.Permanent(fmt.Errorf("%w: %s", ErrNotFound, body))
	case http.StatusConflict:
		return retry.Permanent(fmt.Errorf("%w: %s", ErrConflict, body))
	case http.StatusTooManyRequests:
		return retry.Transient(fmt.Errorf("%w: %s", ErrTooManyRequests, body))
	case http.StatusInternalServerError:
		return retry.Transient(fmt.Errorf("%w: %s", ErrInternalServerError, body))
	case http.StatusBadGateway:
		return retry.Transient(fmt.Errorf("%w: %s", ErrBadGateway, body))
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return retry.Transient(fmt.Errorf("%w: %s", ErrServerUnavailable, body))
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		err := fmt.Errorf("http %d: %s", resp.StatusCode(), body)
		if resp.StatusCode() >= http.StatusInternalServerError {
			return retry.Transient(err)
		}
		return retry.Permanent(err)
	}
}
