/*
Package domain contains the core domain models of the Deduce inference engine.

It defines facts, provenance categories, rules and the immutable rule catalog,
the derivation log and run results. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Fact: a normalized (trimmed, lowercased) ground proposition.
  - Provenance: the classified reason a fact holds (user, inferred, ...).
  - Rule: an ordered conjunction of antecedents and a single consequent.
  - Catalog: the immutable, normalized, ordered list of rules of a run.
  - LogEntry: one successful derivation, with a snapshot of the fact set.
  - Result: the final facts, the derivation log and why the run stopped.
*/
package domain
