// Package framework contains the test harness infrastructure that is not specific to the API
// being tested.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T, allowing pieces
// of test logic to be associated with a test identifier and to accumulate success/failure
// results. Tests are arranged in named groups, and a test's identifier is its path, such as
// "users/create".
//
// 2. Tests can be selected or excluded with regular expressions on their identifiers.
//
// 3. Progress is reported through a TestLogger as tests start, fail, finish or are skipped, and
// each test has its own captured debug output which the TestLogger may choose to show.
//
// The domain-specific code that knows what is being tested is responsible for providing a
// test API on top of the test context, and for the tests themselves.
package framework
