/*
Package ports defines the driven ports (interfaces) of cellfill.

These interfaces decouple the generator from external implementations, allowing
it to run against different random sources, storage backends and lock services.

# Key Interfaces

  - DrawSource: supplies one uniform boolean per create action.
  - SequenceStore: persists and loads session snapshots.
  - DistributedLocker: provides distributed locking for concurrent session access.
*/
package ports
