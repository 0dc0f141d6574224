// Package testutil provides helpers shared by the yaml2config test suites.
//
// Key components:
//   - file helpers: create template trees and assert on rendered output
//   - git helpers: build throwaway repositories for template sync tests
//
// Tests touching git call RequireGit first and are skipped when the git
// executable is not installed.
package testutil
