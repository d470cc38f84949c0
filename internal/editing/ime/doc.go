// Package ime adapts composition events onto an editing state. It tracks
// the in-progress composition text, routes each update through the
// canonical replace so watchers see classified deltas, and keeps the
// composing region aligned with the NFC-normalized composing bytes.
package ime
