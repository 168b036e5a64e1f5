/*
Package funds maintains the native unit balances that pay for storage
rent and anti-spam fees.

There is no logic in the units themselves, except that a balance may
never go below zero and never overflow. Every change to a balance goes
through the Controller, which is also what other extensions program
against when they need to charge for something.
*/
package funds
