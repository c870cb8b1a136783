package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewValidatorStrongPassword(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Struct(&RegisterRequest{
		Name: "Ann", Email: "ann@x.com", Password: "Str0ng!Pass", Role: "USER",
	}))

	// 剛好 8 碼且四類齊全，應通過
	require.NoError(t, v.Struct(&RegisterRequest{
		Name: "Ann", Email: "ann@x.com", Password: "short!1A", Role: "USER",
	}))

	for _, pwd := range []string{"alllowercase1!", "ALLUPPERCASE1!", "NoDigits!!", "NoSymbols11A", "s!1A"} {
		err := v.Struct(&RegisterRequest{
			Name: "Ann", Email: "ann@x.com", Password: pwd, Role: "USER",
		})
		require.Error(t, err, pwd)
	}
}

func TestNewValidationErrorsListsAllFields(t *testing.T) {
	v := NewValidator()
	err := v.Struct(&RegisterRequest{Name: "", Email: "bad", Password: "weak", Role: "ROOT"})
	require.Error(t, err)

	resp := NewValidationErrors(err)
	fields := map[string]bool{}
	for _, fe := range resp.Errors {
		fields[fe.Field] = true
	}
	require.True(t, fields["name"])
	require.True(t, fields["email"])
	require.True(t, fields["password"])
	require.True(t, fields["role"])
}

func TestNewValidationErrorsNonValidatorError(t *testing.T) {
	resp := NewValidationErrors(errors.New("boom"))
	require.Len(t, resp.Errors, 1)
	require.Equal(t, "boom", resp.Errors[0].Message)
}
