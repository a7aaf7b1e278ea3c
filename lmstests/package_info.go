// Package lmstests contains the checks that verify the training platform's API, and the
// orchestration that runs them in dependency order.
//
// Infrastructure that is not specific to the LMS domain, such as recording results and
// reporting them, is in the lower-level framework package. Making HTTP requests is in the
// client package.
package lmstests
