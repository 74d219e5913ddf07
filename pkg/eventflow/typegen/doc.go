// Package typegen derives the closed set of event identifiers from a
// Documentation and renders it as source code for static checking.
//
// The identifier set always starts with "**". Each recorded event then
// contributes its literal name followed by its wildcard prefixes, so
// "a.b.c" adds "a.b.c", "a.*" and "a.b.*" (never "a.b.c.*"). Entries keep
// their first-insertion position, which makes the output reproducible.
//
// Two renderings are available:
//
//   - Go (default): a ListenType string type, one constant per identifier,
//     and an Emitter interface whose methods only accept ListenType.
//   - TypeScript: a listenTypes union plus an EventEmitter2 module
//     augmentation, selected for .ts and .d.ts files.
package typegen
