/*
Package assert provides runtime assertions for the fatal, unchecked preconditions of this module.

Contract violations in asyncx — writing a cell twice, blocking with no execution context, using an unbound handle — are programming defects, not recoverable errors, so they panic with the offending call site rather than returning error values.
Build with the 'noassert' flag to compile assertions out entirely.
For temporary changes, the Disable and Enable functions are also provided, but these should likely not be used in production code.
*/
package assert
