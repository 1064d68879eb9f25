// Package temporal converts API timestamps to local wall-clock form and
// classifies tasks as due today or overdue.
//
// Two different timezones are in play and must not be conflated:
//
//   - The display zone (a task's own TimeZone field) is used only to
//     render UTC timestamps as local wall-clock text.
//   - The reference zone (caller-supplied, typically the account's
//     configured zone) decides which calendar day "today" is for
//     due/overdue classification.
//
// Every function in this package is total: parse failures surface as a
// false return from NormalizeTimestamp and degrade to safe defaults
// everywhere else (unchanged strings for display, false for
// classification, UTC for unresolvable zones).
package temporal
