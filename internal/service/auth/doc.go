// Package auth issues and validates the bearer tokens used between the
// smarttask client and server, and hashes account passwords with bcrypt.
//
// TokenExpiry is the only client-side piece: it peeks at a stored token's
// exp claim so an expired session is reported before a request is sent.
package auth
