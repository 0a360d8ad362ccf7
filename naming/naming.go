// Package naming checks the syntax of Move Registry names.
//
//	package: @namespace/package
//	type:    @namespace/package::module::Type[<generic args>]
//
// Checks are purely syntactic and keep no state.
package naming

import (
	"strings"

	"github.com/krisalay/mvr/types"
)

const (
	registryPrefix = "@"
	pathSeparator  = "::"
)

// IsRegistryName reports whether s uses the registry form (leading "@")
// rather than a raw on-chain address.
func IsRegistryName(s string) bool {
	return strings.HasPrefix(s, registryPrefix)
}

// ValidatePackageName accepts exactly "@namespace/package".
func ValidatePackageName(name string) error {
	if !validPackage(name) {
		return types.InvalidName(name)
	}
	return nil
}

// ValidateTypeName accepts "@namespace/package::module::Type", where Type may
// carry a generic argument list such as "Coin<0x2::sui::SUI>".
func ValidateTypeName(name string) error {
	if _, _, _, err := SplitTypeName(name); err != nil {
		return err
	}
	return nil
}

// SplitTypeName validates name and returns its package, module and type parts.
func SplitTypeName(name string) (pkg, module, typ string, err error) {
	pkg, rest, ok := strings.Cut(name, pathSeparator)
	if !ok || !validPackage(pkg) {
		return "", "", "", types.InvalidName(name)
	}
	module, typ, ok = strings.Cut(rest, pathSeparator)
	if !ok || !validIdentifier(module) || !validTypeIdentifier(typ) {
		return "", "", "", types.InvalidName(name)
	}
	return pkg, module, typ, nil
}

func validPackage(name string) bool {
	body, ok := strings.CutPrefix(name, registryPrefix)
	if !ok {
		return false
	}
	namespace, pkg, ok := strings.Cut(body, "/")
	if !ok || strings.Contains(pkg, "/") {
		return false
	}
	return validSegment(namespace) && validSegment(pkg)
}

// validSegment: non-empty, alphanumerics plus '-' and '_'.
func validSegment(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isAlnum(r) && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

// validIdentifier: non-empty, alphanumerics plus '_'.
func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isAlnum(r) && r != '_' {
			return false
		}
	}
	return true
}

// validTypeIdentifier is an identifier optionally followed by one balanced,
// non-empty "<...>" group that ends the name.
func validTypeIdentifier(s string) bool {
	ident, generics, hasGenerics := strings.Cut(s, "<")
	if !validIdentifier(ident) {
		return false
	}
	if !hasGenerics {
		return true
	}
	inner, ok := strings.CutSuffix(generics, ">")
	if !ok || strings.TrimSpace(inner) == "" {
		return false
	}
	depth := 1
	for _, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return false
			}
		}
	}
	return depth == 1
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
