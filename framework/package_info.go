// Package framework contains the parts of the verifier that do not know anything about the
// LMS API: running named checks, recording their results, and reporting them.
//
// The general model is:
//
// 1. A run is a flat, ordered sequence of checks. Each check gets its own Context, which is
// similar to Go's *testing.T: assertions from the assert and require packages can be made
// against it, and a failure is recorded rather than propagated.
//
// 2. Each check accumulates debug output in memory; the TestLogger decides whether to show it.
//
// 3. A check that others cannot do without is run with RunRequired, and its failure can Abort
// the remaining run.
//
// The domain-specific code decides which requests to send, what a valid response looks like,
// and in what order checks run.
package framework
