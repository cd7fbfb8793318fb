package application

import "errors"

// ERROR TAXONOMY
//
// Failures reaching the engine fall into three buckets:
//
//   - adapter errors: the platform call itself failed. Propagated to
//     the caller untouched; the engine never retries them.
//   - domain.ErrBadToken: the message looked like ours but its token
//     would not decode. The message is left untouched.
//   - not-an-error outcomes: events filtered out or requests already
//     resolved. Reported through ResolveOutcome, not error.

// ErrMessageNotFound reports a point lookup or delete that found no
// message at the given ref. MessageStore implementations map their
// platform's "gone" responses to this sentinel.
var ErrMessageNotFound = errors.New("message not found")
