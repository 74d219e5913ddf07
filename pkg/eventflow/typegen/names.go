package typegen

import (
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/randalmurphal/eventflow/pkg/eventflow/pattern"
)

// DefaultPackage is used when no package name can be derived.
const DefaultPackage = "events"

// ConstPrefix starts every generated constant name.
const ConstPrefix = "Listen"

// reservedNames are the identifiers RenderGo declares besides the constants.
var reservedNames = []string{"ListenType", "ListenTypes", "IsListenType", "Emitter"}

// ConstName converts an identifier to an exported Go constant name.
//
//	"**"           -> ListenAll
//	"user.*"       -> ListenUserAny
//	"user.created" -> ListenUserCreated
//	"order-placed" -> ListenOrderPlaced
//
// Distinct identifiers may map to the same name; ConstNames resolves that.
func ConstName(id string) string {
	if id == pattern.All {
		return ConstPrefix + "All"
	}

	// Casers hold state and must not be shared between goroutines.
	caser := cases.Title(language.Und, cases.NoLower)

	var b strings.Builder
	b.WriteString(ConstPrefix)
	for _, word := range words(id) {
		if word == pattern.Wildcard {
			b.WriteString("Any")
			continue
		}
		b.WriteString(caser.String(word))
	}
	return b.String()
}

// ConstNames returns one unique constant name per identifier, in order.
// Collisions with each other or with the other declarations of the
// generated file get a numeric suffix starting at 2.
func ConstNames(ids []string) []string {
	used := make(map[string]struct{}, len(ids)+len(reservedNames))
	for _, name := range reservedNames {
		used[name] = struct{}{}
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		base := ConstName(id)
		name := base
		for n := 2; ; n++ {
			if _, taken := used[name]; !taken {
				break
			}
			name = base + strconv.Itoa(n)
		}
		used[name] = struct{}{}
		out[i] = name
	}
	return out
}

// words splits an identifier on anything that is not a letter or digit.
// A "*" is kept as its own word.
func words(id string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range id {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			cur.WriteRune(r)
		case r == '*':
			flush()
			out = append(out, pattern.Wildcard)
		default:
			flush()
		}
	}
	flush()
	return out
}

// PackageName derives a Go package name from a directory.
// The base name is lowercased and stripped of characters that are not
// letters, digits or underscores; DefaultPackage is returned when nothing
// valid remains.
func PackageName(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	base := filepath.Base(dir)

	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if !validPackage(name) {
		return DefaultPackage
	}
	return name
}

func validPackage(name string) bool {
	return name != "" && name != "_" && token.IsIdentifier(name)
}
