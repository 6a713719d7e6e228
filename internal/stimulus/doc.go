// Package stimulus implements dual n-back sequence generation.
//
// Generation is a two-stage pipeline:
//   - Compose decides WHERE matches occur on each channel, producing a
//     MatchPlan of booleans over the eligible region of the sequence.
//   - Materialize decides WHICH concrete values realize that plan,
//     copying the n-back value on planned matches and drawing a
//     different value everywhere else.
//
// The plan is the contract: once materialized, the match structure of a
// sequence is exactly its plan, and re-materializing the same plan with
// a different seed yields different values with identical match
// outcomes. All functions draw randomness from a caller-owned
// *rand.Rand, so generation is deterministic per seed and safe for
// concurrent sessions that each own their source.
package stimulus
