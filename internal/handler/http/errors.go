// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrDocumentIDMismatch is reported when a PUT body carries a document_id
// different from the one in the request path.
var ErrDocumentIDMismatch = errors.New("document id mismatch")
