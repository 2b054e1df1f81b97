// Package auth issues and validates bearer tokens and hashes user passwords.
package auth
