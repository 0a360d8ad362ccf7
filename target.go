package mvr

import (
	"context"
	"strings"

	"github.com/krisalay/mvr/naming"
	"github.com/krisalay/mvr/types"
)

/*
ResolveTarget turns a move-call target that names its package through the
registry into one that names it by address:

	@suifrens/core::mint::new  →  0x80d7…::mint::new

Targets without a leading "@" are already addresses and are returned as is.
A registry target must have exactly a package, a module and a function.
*/
func (r *Resolver) ResolveTarget(ctx context.Context, target string) (string, error) {
	if !naming.IsRegistryName(target) {
		return target, nil
	}

	parts := strings.Split(target, "::")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return "", types.InvalidName(target)
	}

	addr, err := r.ResolvePackage(ctx, parts[0])
	if err != nil {
		return "", err
	}
	return addr + "::" + parts[1] + "::" + parts[2], nil
}
