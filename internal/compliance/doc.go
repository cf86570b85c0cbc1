// Package compliance decides whether each dependency declaration follows the
// default-features convention and assembles the resulting Verdict.
//
// A declaration is compliant when it literally sets default-features = false,
// or when its declared name is in the caller's ExceptionSet. Evaluation is a
// single pass in discovery order with no reordering and no deduplication, so a
// dependency declared in several tables or packages yields one Violation per
// occurrence.
package compliance
