/*
Package treasurytest provides mocks and helpers for testing handlers and
decorators without running the whole application.
*/
package treasurytest
