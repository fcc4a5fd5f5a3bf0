// Package mail abstracts outbound email delivery. Verification codes and
// vote receipts are sent through it.
package mail
