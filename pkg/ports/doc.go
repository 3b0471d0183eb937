/*
Package ports defines the interfaces (Ports) that decouple the Stepwise core from
the outside world (Adapters).

It includes interfaces for:
  - FormLoader: Retrieving the wizard definition.
  - StateStore: Persisting session state.
  - DistributedLocker: Coordinating session access across replicas.
  - SubmissionSink: Receiving submitted snapshots.
*/
package ports
