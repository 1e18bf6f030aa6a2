package options_test

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/scudo/options"
)

func TestCompileNegativeAndBoolean(t *testing.T) {
	entries, err := options.Parse("delete_size_mismatch = false, release_to_os_interval_ms = -1")
	require.NoError(t, err)

	compiled := options.Compile(entries)
	require.Equal(t, "delete_size_mismatch=false:release_to_os_interval_ms=-1:\x00", compiled)
	require.Equal(t, 1, strings.Count(compiled, "\x00"))
}

func TestCompileEmptyList(t *testing.T) {
	entries, err := options.Parse("")
	require.NoError(t, err)
	require.Empty(t, entries)

	require.Equal(t, "\x00", options.Compile(entries))
}

func TestCompileKeepsRepeatedKeys(t *testing.T) {
	entries, err := options.Parse("quarantine_size_kb = 64, quarantine_size_kb = 256,")
	require.NoError(t, err)

	require.Equal(t, "quarantine_size_kb=64:quarantine_size_kb=256:\x00", options.Compile(entries))
}

func TestParseValues(t *testing.T) {
	testCases := []struct {
		src   string
		value options.Value
	}{
		{"a = 1", options.Value{Kind: options.ValueNumber, Text: "1"}},
		{"a = 3.14", options.Value{Kind: options.ValueNumber, Text: "3.14"}},
		{"a = -1", options.Value{Kind: options.ValueNumber, Text: "-1"}},
		{"a = - 2", options.Value{Kind: options.ValueNumber, Text: "-2"}},
		{"a = -0.5", options.Value{Kind: options.ValueNumber, Text: "-0.5"}},
		{"a = 0x10", options.Value{Kind: options.ValueNumber, Text: "0x10"}},
		{"a = true", options.Value{Kind: options.ValueBool, Text: "true"}},
		{"a=false,", options.Value{Kind: options.ValueBool, Text: "false"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.src, func(t *testing.T) {
			entries, err := options.Parse(testCase.src)
			require.NoError(t, err)
			require.Equal(t, []options.Entry{{Key: "a", Value: testCase.value}}, entries)
		})
	}
}

func TestParseMalformedNumber(t *testing.T) {
	entries, err := options.Parse("foo = 3.14x")
	require.Nil(t, entries)

	var syntaxErr *options.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	require.Equal(t, "expected a valid value like '3.14' or 'true'", syntaxErr.Msg)
	require.Equal(t, 1, syntaxErr.Pos.Line)
	require.Equal(t, 7, syntaxErr.Pos.Column)
	require.Equal(t, "1:7: expected a valid value like '3.14' or 'true'", err.Error())
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		src string
		msg string
	}{
		{"a = yes", "expected a valid value like '3.14' or 'true'"},
		{"a = -", "expected a valid value like '3.14' or 'true'"},
		{"a = -true", "expected a valid value like '3.14' or 'true'"},
		{`a = "x"`, "expected a valid value like '3.14' or 'true'"},
		{"a = 3x", "expected a valid value like '3.14' or 'true'"},
		{"a = 1 b = 2", "expected ',' between options"},
		{"a 1", "expected '=' after a"},
		{"= 1", "expected an option name"},
		{"a = 1,, b = 2", "expected an option name"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.src, func(t *testing.T) {
			_, err := options.Parse(testCase.src)
			require.Error(t, err)

			var syntaxErr *options.SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			require.Contains(t, syntaxErr.Msg, testCase.msg)
		})
	}
}

func TestParseAcrossLines(t *testing.T) {
	entries, err := options.Parse("a = 1,\nb = 2,\n")
	require.NoError(t, err)
	require.Equal(t, "a=1:b=2:\x00", options.Compile(entries))

	entries, err = options.Parse("a = true\n\n")
	require.NoError(t, err)
	require.Equal(t, "a=true:\x00", options.Compile(entries))
}

func TestParseRejectsNewlineSeparator(t *testing.T) {
	entries, err := options.Parse("a = 1\nb = 2")
	require.Nil(t, entries)

	var syntaxErr *options.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	require.Equal(t, "expected ',' between options, found newline", syntaxErr.Msg)
	require.Equal(t, 1, syntaxErr.Pos.Line)
	require.Equal(t, 6, syntaxErr.Pos.Column)
}

func TestParseReportsPositionOnLaterLine(t *testing.T) {
	_, err := options.Parse("a = 1,\n  b = yes")

	var syntaxErr *options.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	require.Equal(t, "2:7: expected a valid value like '3.14' or 'true'", err.Error())
}

func TestFlagsReadBackCompiledString(t *testing.T) {
	entries, err := options.Parse("delete_size_mismatch = false, release_to_os_interval_ms = -1, zero_contents = true")
	require.NoError(t, err)

	flags, err := options.ParseFlags(options.Compile(entries))
	require.NoError(t, err)
	require.Equal(t, []options.Flag{
		{Key: "delete_size_mismatch", Value: "false"},
		{Key: "release_to_os_interval_ms", Value: "-1"},
		{Key: "zero_contents", Value: "true"},
	}, flags)
}

func TestParseFlagsSeparators(t *testing.T) {
	flags, err := options.ParseFlags("a=1 b=2,c=3\n:d=4\x00e=5")
	require.NoError(t, err)
	require.Equal(t, []options.Flag{
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
		{Key: "c", Value: "3"},
		{Key: "d", Value: "4"},
	}, flags)

	_, err = options.ParseFlags("a=1:novalue:")
	require.Error(t, err)
}
