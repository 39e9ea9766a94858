// SPDX-License-Identifier: GPL-3.0-or-later

package sfsconn

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// headerContentType is the Content-Type header name.
const headerContentType = "Content-Type"

// headerList is the ordered list of headers of a single request attempt.
//
// Each entry has the "Name: value" form. The zero value is an empty list
// ready to use. A list belongs to the attempt that built it and must not
// be reused across attempts.
type headerList struct {
	entries []string
}

// add appends a header, returning a ConnectionSetupFailed [*Error] when
// the name or the value would not be valid on the wire.
func (hl *headerList) add(name, value string) *Error {
	if !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
		return E(ConnectionSetupFailed, fmt.Sprintf("failed to add header %q to the header list", name))
	}
	hl.entries = append(hl.entries, name+": "+value)
	return nil
}

// apply adds all the entries to the request headers, in order.
func (hl *headerList) apply(header http.Header) {
	for _, entry := range hl.entries {
		name, value, _ := strings.Cut(entry, ": ")
		header.Add(name, value)
	}
}
