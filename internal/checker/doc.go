// Package checker runs the fixed battery of generative-engine readiness
// checks against a parsed page.
//
// # Architecture
//
// Every page goes through the same 19 checks, in the same order, every
// time. Checks are pure functions of the page content: no network, no
// shared state, no conditional skipping. A page with no images still
// produces an Image Alt Text result (a pass: nothing is missing alt
// text), a page with no structured data still produces all three schema
// results, and so on. This keeps aggregation trivially commutative and
// the report shape fixed regardless of what was crawled.
//
// The checks are deliberately heuristic. "Conversational Tone" counts
// question headings and second-person pronouns; it does not understand
// language. The goal is a cheap, reproducible approximation of the
// signals generative engines reward (E-E-A-T: experience, expertise,
// authoritativeness, trust), not semantic analysis.
//
// Design decision: Checks live in a fixed-order registry rather than
// being registered dynamically because:
//  1. The battery is a product contract: exactly 19 results, fixed order
//  2. A registry literal makes the order reviewable in one place
//  3. Tests can assert the registry against the model's canonical list
package checker
