// Package audio plays a short chime when a toast appears. Each toast type has
// a generated sine tone; a sound file may replace the tone per type.
package audio
