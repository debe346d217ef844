// Package compat scores how well a listed item and its provider suit a seeker.
//
// Scoring is pure: no I/O, no clock, same inputs give the same Score.
// Two sub-scores are computed on a 0-100 scale and blended by Weights:
//
//   - item compatibility: budget (hard), price position, city, and the Jaccard
//     similarity between vibes inferred from the seeker's traits and the
//     item's style/mood tags;
//   - provider compatibility: shared traits plus directional lifestyle
//     penalties.
//
// Jaccard similarity of two empty sets is 0.5 so untagged users and items are
// neither rewarded nor punished.
package compat
