/*
Package x contains some standard extensions

Extensions implement common functionality (Handler, Decorator,
etc.) and can be combined together to construct an application

All sub-packages are various extensions. The splitter extension is the
core of the application, the others provide the supporting pieces:
signature verification, balances and common decorators.
*/
package x
