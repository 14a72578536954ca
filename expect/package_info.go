// Package expect describes what a response should contain, and checks all of it at once so that
// a failure lists every difference instead of only the first.
package expect
