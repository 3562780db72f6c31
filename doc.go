// Package sframe implements the core of SFrame, an end-to-end media-frame
// encryption scheme for real-time media exchanged across untrusted
// selective-forwarding relays. It provides two entry points: Context, which
// manages explicitly registered (KeyID, base key) pairs, and MLSContext,
// which derives per-sender keys from a sequence of MLS group epoch secrets.
//
// The package frames, derives keys for, and authenticates individual media
// frames; it does not implement transport, frame boundary detection, codec
// integration, or the MLS group protocol itself.
package sframe
