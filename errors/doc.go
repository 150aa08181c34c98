/*
Package errors implements coded errors shared by all extensions.

Reuse the root errors declared in this package whenever possible and only
register a custom one (with Register) when an extension has a failure kind
that no root error describes. Each root error carries an ABCI code that lets
the client tell failure kinds apart.

Create errors at the point of failure with ErrXyz.New, ErrXyz.Newf or
errors.Wrap so that a stack trace is attached. Only the innermost wrap
records the stack trace. Do not declare wrapped errors as package level
variables, the stack trace would point to the package initialization.

Once you have an error, use fmt to get more context
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [dir/file:line] where the error was created

Use ErrXyz.Is(err) to test if an error (possibly wrapped) is of a given
kind.
*/
package errors
