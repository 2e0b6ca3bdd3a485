package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidator_CollectsFirstErrorPerField(t *testing.T) {
	var v Validator
	v.CNPJ("cnpj", "1234567890")
	v.Required("cnpj", "")
	v.Digits("cep", "0100100", 8, MsgCEP)
	v.Email("email", "not-an-email")
	v.Phone("telefone", "(11) 98765-4321")

	err := v.Err()
	require.Error(t, err)

	var fe *Errors
	require.True(t, errors.As(err, &fe))
	require.Equal(t, []string{"cnpj", "cep", "email"}, fe.Fields())
	require.Equal(t, MsgCNPJ, fe.Field("cnpj"))
	require.Equal(t, MsgCEP, fe.Field("cep"))
	require.False(t, fe.Has("telefone"))
}

func TestValidator_NoErrors(t *testing.T) {
	var v Validator
	v.CNPJ("cnpj", "12345678000199")
	v.Email("email", "")
	v.Phone("telefone", "")
	require.NoError(t, v.Err())
}

func TestValidator_Coercion(t *testing.T) {
	var v Validator
	n, ok := v.Integer("quantidade", " 12 ", 1)
	require.True(t, ok)
	require.Equal(t, 12, n)

	f, ok := v.Decimal("resultado", "98,5")
	require.True(t, ok)
	require.InDelta(t, 98.5, f, 1e-9)

	_, ok = v.Integer("zero", "0", 1)
	require.False(t, ok)
	_, ok = v.Decimal("abc", "abc")
	require.False(t, ok)

	var fe *Errors
	require.ErrorAs(t, v.Err(), &fe)
	require.Equal(t, MsgInteger, fe.Field("zero"))
	require.Equal(t, MsgNumber, fe.Field("abc"))
}

func TestParseDecimal(t *testing.T) {
	for in, want := range map[string]float64{"2": 2, "-1.25": -1.25, " 6,5 ": 6.5, "+3": 3} {
		f, err := ParseDecimal(in)
		require.NoError(t, err, in)
		require.InDelta(t, want, f, 1e-9, in)
	}
	for _, bad := range []string{"NaN", "nan", "Inf", "+Inf", "infinity", "0x1p-2", "1e3", "1,", ",5", "1.2.3", ""} {
		_, err := ParseDecimal(bad)
		require.Error(t, err, bad)
	}
}

func TestDecimal_RejectsNonFinite(t *testing.T) {
	var v Validator
	_, ok := v.Decimal("quantidade", "NaN")
	require.False(t, ok)
	_, ok = v.Decimal("resultado", "Inf")
	require.False(t, ok)

	var fe *Errors
	require.ErrorAs(t, v.Err(), &fe)
	require.Equal(t, MsgNumber, fe.Field("quantidade"))
	require.Equal(t, MsgNumber, fe.Field("resultado"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	require.Equal(t, "2024-02-29", FormatDate(d))

	for _, bad := range []string{"2023-02-29", "29/02/2024", "2024-2-9", ""} {
		_, err := ParseDate(bad)
		require.Error(t, err, bad)
	}
}

func TestOneOf(t *testing.T) {
	var v Validator
	require.True(t, v.OneOf("modo", "VIRTUAL", []string{"VIRTUAL", "CORREIOS"}))
	require.False(t, v.OneOf("modo", "FAX", []string{"VIRTUAL", "CORREIOS"}))
	require.Equal(t, MsgChoice, v.errs.Field("modo"))
}

func TestErrors_OrNil(t *testing.T) {
	var e Errors
	require.NoError(t, e.OrNil())
	e.Add("nome", MsgRequired)
	require.Error(t, e.OrNil())
	require.Equal(t, map[string]string{"nome": MsgRequired}, e.Map())
}
