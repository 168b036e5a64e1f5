/*

Package swaplock defines the interfaces used throughout the application:
storage, transactions, handlers, conditions and abci results. It also
contains helpers to work with errors, context and addresses. Look into this
package to get a brief overview of the design decisions made around
interfaces and extension building blocks.

*/

package swaplock
