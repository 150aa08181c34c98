/*
Package sigs provides basic authentication middleware to verify the
signatures on the transaction, and maintain nonces for replay protection.

A transaction carrying a single valid signature is executed with the signed
origin of the key owner. When the signer is the root account named in the
"sigs" configuration, the call is executed with root privilege instead.
*/
package sigs
