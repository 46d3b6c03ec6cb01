package sync

import "errors"

// ErrNoFollowedCreators is returned by the follow-list fetch when the remote
// list is empty. Zero is never a valid outcome there, unlike gallery scrapes
// where an empty result is fine.
var ErrNoFollowedCreators = errors.New("no followed creators found")
