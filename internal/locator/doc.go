// Package locator decides where fetched materials live for one invocation.
//
// A materials root is either project-scoped (<boundary>/.claude/temp-materials,
// where the boundary is the nearest ancestor holding a .git or .claude
// directory) or global (~/skill-materials). Listing only ever reports roots
// that already exist; DefaultWriteTarget picks where new material should go.
// The upward search itself is a pure function over an existence check so it
// can be exercised with synthetic paths.
package locator
