/*
Package domain contains the core model and the reduction rule of cellfill.

It is kept pure and free of I/O: no persistence, no randomness and no
presentation. Hosts supply the random draw and render the returned sequence.

# Key Entities

  - Tag: the state of one cell (Alive, Dead or Life) with a fixed Metadata table.
  - Sequence: the ordered cells of a session.
  - Reduce / AppendAndReduce: append one drawn cell and apply the window rules.
  - Snapshot: the persisted form of a session, used only by store adapters.
  - SequenceDiff: the minimal truncate-then-append update between two sequences.
*/
package domain
