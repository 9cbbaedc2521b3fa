// Package testsupport provides shared fakes and fixtures for unit tests.
//
// The fakes are stateful in-memory implementations of the provider
// interfaces: resources created through them can be read back, deleted,
// and inspected, which lets phase tests assert on end state instead of
// call sequences.
package testsupport
