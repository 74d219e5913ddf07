// Package pattern implements listener pattern matching and wildcard expansion
// for hierarchical event names.
//
// # Patterns
//
// Event names are segments joined by a delimiter (default "."):
//
//	user.created
//	email.sent
//	billing.invoice.paid
//
// A listener pattern takes one of three forms:
//
//   - "**" matches every event name
//   - a pattern containing "*" matches any name that starts with the text
//     before the first "*"
//   - anything else matches by exact string equality
//
// Examples:
//
//	Match("user.created", "user.*")        // true
//	Match("order.created", "user.*")       // false
//	Match("billing.invoice.paid", "**")    // true
//	Match("a.b.c", "a.*.x")                // true, only "a." is compared
//
// A wildcard in the middle of a pattern reduces to a prefix test on the text
// before it. Everything after the first "*" is ignored.
//
// # Expansion
//
// Expand returns the wildcard prefixes under which a name can be listened to:
//
//	m := pattern.New(".")
//	m.Expand("a.b.c") // ["a.*", "a.b.*"]
//
// Every pattern returned by Expand matches the name it was expanded from.
package pattern
