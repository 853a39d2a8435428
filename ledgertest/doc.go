/*
Package ledgertest provides mocks and helpers for testing handlers,
decorators and applications.
*/
package ledgertest
