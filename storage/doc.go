// Package storage stores and recalls named items on either a local directory
// or a remote object-store bucket through one contract.
//
// A FOB ("file or object") owns exactly one Backend chosen by Config.Mode.
// Backends only put, get, delete, and list pages of names; suffix filtering,
// cursor resumption, and bounded pagination are done once, by List.
//
// # Backends
//
//   - storage/local: a directory on a local or shared filesystem
//   - storage/s3: IBM Cloud Object Storage or any S3-compatible service
//   - storage/minio: S3-compatible service through the MinIO client
//
// # Configuration
//
//	storage:
//	  mode: "OBJECT"
//	  provider: "s3"
//	cos:
//	  endpoint_url: "https://s3.us.cloud-object-storage.appdomain.cloud"
//	  bucket: "legi-info"
//
// FOB methods never return errors. Failures are logged and surface as empty
// data, false, or an explicit Result whose Status tells an absent item from
// a failed call.
package storage
