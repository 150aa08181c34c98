/*
Package cash implements a single asset ledger of account balances.

Each account owns a wallet holding a balance of the one token the chain
knows about. The Controller moves value between wallets and is used by other
extensions as the transfer primitive. Wallets are created on the first
deposit and can be funded from the genesis file.
*/
package cash
