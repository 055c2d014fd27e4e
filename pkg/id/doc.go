// Package id generates delivery identifiers for relayed payloads.
//
// IDs are 16 bytes, big-endian: 8 bytes of Unix-millisecond timestamp
// followed by an 8-byte per-process sequence. They sort
// lexicographically in generation order, which lets subscribers order
// and de-duplicate deliveries without any coordination.
package id
