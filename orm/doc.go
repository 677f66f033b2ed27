/*
Package orm stores protobuf models in a KVStore.

A ModelBucket keeps all its models under a common key prefix and maintains
secondary indexes next to them. Indexes use the database native key order,
so that listing all models referenced by an index value is a single range
iteration and never requires loading the whole collection.
*/
package orm
