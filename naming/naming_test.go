package naming_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/mvr/naming"
	"github.com/krisalay/mvr/types"
)

func TestValidatePackageName(t *testing.T) {
	valid := []string{
		"@suifrens/core",
		"@namespace/package",
		"@my-ns/my_pkg2",
	}
	for _, name := range valid {
		assert.NoError(t, naming.ValidatePackageName(name), name)
	}

	invalid := []string{
		"suifrens/core",
		"@suifrens",
		"@/core",
		"@suifrens/",
		"@ns/pkg/extra",
		"@",
		"/pkg",
		"",
		"@ns/pk g",
		"@ns/pkg::mod::Type",
	}
	for _, name := range invalid {
		err := naming.ValidatePackageName(name)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, types.ErrInvalidName), name)

		var typed *types.Error
		require.True(t, errors.As(err, &typed))
		assert.Equal(t, name, typed.Name)
	}
}

func TestValidateTypeName(t *testing.T) {
	valid := []string{
		"@suifrens/core::suifren::SuiFren",
		"@ns/pkg::mod::Type<T>",
		"@ns/pkg::coin::Coin<0x2::sui::SUI>",
		"@ns/pkg::table::Table<u64, vector<u8>>",
	}
	for _, name := range valid {
		assert.NoError(t, naming.ValidateTypeName(name), name)
	}

	invalid := []string{
		"invalid-type",
		"@ns/pkg",
		"@ns/pkg::Type",
		"ns/pkg::module::Type",
		"@ns/pkg:Type",
		"@ns/pkg::module:",
		"@ns/pkg::module::",
		"@pkg/mod::::Type",
		"@ns/pkg::mod::Type<>",
		"@ns/pkg::mod::Type<T",
		"@ns/pkg::mod::Type<T>>",
		"@ns/pkg::mod::Type<T>x",
		"",
	}
	for _, name := range invalid {
		err := naming.ValidateTypeName(name)
		require.Error(t, err, name)
		assert.Equal(t, types.KindInvalidName, types.KindOf(err), name)
	}
}

func TestSplitTypeName(t *testing.T) {
	pkg, module, typ, err := naming.SplitTypeName("@ns/pkg::coin::Coin<0x2::sui::SUI>")
	require.NoError(t, err)
	assert.Equal(t, "@ns/pkg", pkg)
	assert.Equal(t, "coin", module)
	assert.Equal(t, "Coin<0x2::sui::SUI>", typ)
}

func TestIsRegistryName(t *testing.T) {
	assert.True(t, naming.IsRegistryName("@suifrens/core"))
	assert.False(t, naming.IsRegistryName("0x2::coin::Coin"))
}
