/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket contains only one type of model, stored under the bucket name
followed by a colon and the primary key. Keys are compared bytewise, so
iterating over a bucket returns models in ascending primary key order.
*/
package orm
