package domain

import "errors"

// ErrBadToken reports message content that carried a token line whose
// token could not be decoded. Callers must treat the message as
// foreign: log and walk away without writing anything.
var ErrBadToken = errors.New("malformed swap token")
