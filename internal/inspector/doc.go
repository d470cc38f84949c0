// Package inspector implements the interactive terminal viewer: a
// single-line editing buffer driven by keystrokes, with a simulated
// composition toggle and the wire payload of each classified delta
// rendered below the buffer.
package inspector
