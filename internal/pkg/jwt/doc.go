// Package jwt issues and verifies the access tokens handed out after a
// voter completes the login verification step.
package jwt
