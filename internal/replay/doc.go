// Package replay runs recorded editing scenarios against a fresh editing
// state. Scenarios are YAML documents listing an initial state and a
// sequence of replace and span operations, each replace optionally
// asserting the delta kind it classifies as. The demo binary uses it for
// headless inspection; tests use it as a fixture harness.
package replay
