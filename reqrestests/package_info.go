// Package reqrestests contains the contract tests for the reqres API and the small test API
// they are written against.
//
// The tests run on top of the framework package, which knows nothing about HTTP; requests go
// through the client package and responses are checked with the expect package.
package reqrestests
