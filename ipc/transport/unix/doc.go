// Package unix provides the Unix domain socket transport, the native
// transport of the nipart daemon. It contributes only endpoint handling
// and socket tuning; framing and the exchange loop live in the base
// package.
package unix
