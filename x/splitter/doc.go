/*
Package splitter implements a weighted fund splitter.

Root maintains a registry of recipients, each with a weight. Any signed
account can deposit an amount that is split between all registered
recipients proportionally to their weights. Every recipient receives
floor(amount * weight / total weight). Recipients are always paid in the
ascending order of their addresses, so the outcome of a distribution is
deterministic.

Floor division can leave a remainder that is smaller than the number of
recipients. Depending on the configuration it either stays with the sender
(the default) or is added to the first recipient with a non zero weight.

A distribution is all or nothing. If any transfer fails, none of the
transfers of that deposit remain applied and no events are emitted.

Root can additionally store a weight for a pair of recipients. The pair
shares are not used by the distribution.
*/
package splitter
