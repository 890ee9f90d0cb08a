// Package plan turns an unstructured product-requirements document (PRD)
// into a schedulable work breakdown.
//
// The pipeline is purely lexical and heuristic — no language model is
// involved. A single Decompose call segments the PRD into typed sections,
// extracts and classifies requirements from list items, detects the project
// type from keyword signals, instantiates a task template set enriched with
// the extracted requirements, materializes the task dependency DAG, and
// estimates overall duration from the critical path. Milestones and
// qualitative risk factors are derived alongside.
//
// A Result can be incrementally edited through Refine, which applies a batch
// of task/dependency add and remove operations and recomputes the graph and
// duration. Requirements, milestones, and risk factors are deliberately left
// untouched by refinement; see Refine for details.
//
// Each call operates on freshly allocated state, so callers may decompose
// many PRDs from independent goroutines with no coordination.
package plan
