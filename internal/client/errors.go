package client

import "errors"

var errNoSyncEngine = errors.New("sync engine is required")
