// Package messaging provides a broker-agnostic API for publishing and
// consuming messages.
//
// Vote and verification events flow through it so business code stays
// independent from the underlying system (Kafka, NATS, NSQ). Implementations
// can be swapped without changing use-case code.
package messaging
