/*
Package ports defines the driven ports (interfaces) for the Deduce engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various rule sources and report storage backends.

# Key Interfaces

  - RuleLoader: Responsible for loading rule specs (e.g., from YAML, Loam or Memory).
  - ReportStore: Responsible for persisting and loading finished inference reports.
  - Inferrer: The engine surface consumed by transports (HTTP, MCP).
*/
package ports
