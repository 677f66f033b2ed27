/*
Package x contains helpers shared by the treasury extensions.

Sub-packages implement the extensions themselves. Each one registers its
handlers on a router and keeps its models in its own buckets. Note that
protobuf types in exported code are prefixed by the package, so avoid
stutter: use vault.CreateMsg in place of vault.CreateVaultMsg.
*/
package x
