// Package settings persists profiles and skill bindings as JSON.
//
// The on-disk document uses snake_case keys but loads legacy PascalCase
// documents written by older releases. Document-level problems (missing
// file, unparseable JSON) fall back to defaults so the application always
// starts; item-level problems (missing skill key, unresolvable code,
// negative duration) are rejected with an error because a silently
// repaired binding would track the wrong key.
package settings
