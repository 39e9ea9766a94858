// SPDX-License-Identifier: GPL-3.0-or-later

package sfsconn

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/bassosimone/errclass"
)

// genericTransportMessage is used when a transfer fails without
// leaving any message in the diagnostic buffer.
const genericTransportMessage = "HTTP transport error"

// transportErrorToResult maps a failed transfer to an [*Error].
//
// Timeouts map to [HttpTimeout], everything else to [ConnectionUnexpectedError].
// The message is the diagnostic text, when available.
func transportErrorToResult(err error, diag string, classifier ErrClassifier) *Error {
	code := ConnectionUnexpectedError
	if isTimeout(err, classifier) {
		code = HttpTimeout
	}
	msg := diag
	if msg == "" {
		msg = genericTransportMessage
	}
	return E(code, msg, WithCauseOption(err))
}

// isTimeout returns whether err was caused by an expired deadline.
func isTimeout(err error, classifier ErrClassifier) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return classifier.Classify(err) == errclass.ETIMEDOUT
}

// httpStatusToResult maps an HTTP status code to an [*Error].
//
// It returns nil for 200. Note that 405 is reported as [HttpBadRequest].
func httpStatusToResult(status int) *Error {
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		return E(HttpBadRequest, "400 Bad Request")
	case http.StatusNotFound:
		return E(HttpNotFound, "404 Not Found")
	case http.StatusMethodNotAllowed:
		return E(HttpBadRequest, "405 Method Not Allowed")
	case http.StatusServiceUnavailable:
		return E(HttpServiceNotAvailable, "503 Service Unavailable")
	default:
		return E(HttpUnexpected, fmt.Sprintf("Unexpected HTTP code %d", status))
	}
}
