/*
Package ports defines the driven ports (interfaces) around the inkling core.

These interfaces decouple story execution from external implementations,
allowing the runtime to work with various story sources and counter backends.

# Key Interfaces

  - StoryLoader: Responsible for loading raw story documents (e.g., from a directory or memory).
  - StoryWriter: Optional companion of StoryLoader for sources that accept new documents.
  - CounterStore: Responsible for persisting visit counts and turn indices.
*/
package ports
