// Package tree parses bracketed syntax trees and records node relations.
//
// # Input
//
// One tree per call, in Penn-Treebank notation:
//
//	(S (NP (N dog)) (VP (V barks)))
//
// Both ( ) and [ ] open and close constituents and may be mixed freely. The
// first token after an opener is the constituent's label; every other token
// is a leaf.
//
// # Single pass
//
// Parsing is a character-driven state machine:
//
//	┌──────┐ open ┌─────────┐ text ┌─────┐ space ┌─────────┐ text ┌─────┐
//	│ None │─────▶│ WaitLHS │─────▶│ LHS │──────▶│ WaitRHS │─────▶│ RHS │
//	└──────┘      └─────────┘      └─────┘       └─────────┘◀─────└─────┘
//	    ▲                                                      space  │
//	    └─────────────────────────── close ───────────────────────────┘
//
// Node IDs are handed out when a token is complete, so they follow token
// order. Each label opens a sibling-group at its nesting level; each new
// node is attached to the active group of its parent, which records the
// relations below.
//
// # Relations
//
// The relations are local to one sibling-group and are not closed over the
// tree:
//
//   - dominates: parent label to direct child only
//   - c-commands: between siblings of one parent, in both directions
//   - precedes: from an earlier sibling to a later one
//
// # Malformed input
//
// By default nothing is rejected: unbalanced or mismatched brackets and
// stray text produce a partial tree and a nil error. WithStrict reports the
// first problem as a *SyntaxError while still returning the partial tree.
package tree
