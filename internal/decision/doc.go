// Package decision implements the global decision engine: a pure rules
// engine that converts raw research-workflow records (trade ideas, rating
// changes, theses, project deliverables, assets) into prioritized work items.
//
// The engine is side-effect free. Every run takes an explicit data snapshot
// and an explicit clock value and recomputes the full result from scratch;
// there is no incremental state. Evaluators never return errors; a record
// that is missing the fields a rule needs simply does not fire that rule.
//
// Pipeline:
//
//	Snapshot -> evaluators -> []Item -> postprocess -> Result
//
// Postprocessing suppresses conflicting items, deduplicates, groups large
// homogeneous sets into rollups, scores, sorts, and splits the result into
// the action and intel surfaces. Multiple UI surfaces consume one Result;
// all filtering helpers copy rather than mutate.
package decision
