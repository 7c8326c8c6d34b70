// Package evaluator decides which actors the medical alerts list.
//
// One Evaluate call walks the roster once. Every actor is first checked for
// exemption (deathrest, deathless), then classified into at most one of the
// categories in priority order:
//
//  1. Bleeding: a blood loss condition and fewer ticks to death than the threshold.
//  2. Infection: a wound infection projected to reach full severity before
//     immunity completes.
//  3. LifeThreatening: any other condition whose active stage is life-threatening.
//
// The generic rule excludes blood loss and wound infections by construction,
// so the three member sets are disjoint without a subtraction step. Results
// are built fresh on every call; the Evaluator keeps no state between calls
// and is safe for concurrent use.
package evaluator
