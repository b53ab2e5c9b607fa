package main

import (
	"github.com/zostay/go-std/slices"

	"github.com/zostay/gnaw"
	"github.com/zostay/gnaw/match"
)

// The CSV grammar here is a consumer of the engine, not part of it. Records
// are comma-separated fields terminated by a newline; fields are either bare
// or double-quoted with "" as the escaped quote. Because every piece is
// built from streaming primitives, the same record parser runs over a
// complete file or a socket without change.

// bareField matches an unquoted field, which may be empty.
func bareField(sep byte) gnaw.Parser[[]byte] {
	run := match.TakeWhile1(match.Complete,
		match.NotByte(match.ByteInSet(sep, '"', '\r', '\n')),
	)
	return match.Map(match.Optional(run.Parser()), func(o match.Opt[[]byte]) []byte {
		return o.Value
	})
}

// quotedField matches a double-quoted field and unescapes doubled quotes.
// Unescaping builds an owned buffer; everything else in the grammar stays a
// view of the input.
func quotedField() gnaw.Parser[[]byte] {
	chunk := match.First(
		match.TakeWhile1(match.Streaming, match.NotByte(match.ByteInSet('"'))).Parser(),
		match.Map(match.TagStr(`""`), func([]byte) []byte { return []byte{'"'} }),
	)
	body := match.Map(match.Many0(chunk), func(chunks [][]byte) []byte {
		var out []byte
		for _, c := range chunks {
			out = append(out, c...)
		}
		return out
	})
	quote := match.One('"')
	return match.Delimited(quote, body, quote)
}

// field matches one field of a record.
func field(sep byte) gnaw.Parser[[]byte] {
	return match.First(quotedField(), bareField(sep))
}

// lineEnd matches a record terminator.
func lineEnd() gnaw.Parser[[]byte] {
	return match.First(match.TagStr("\r\n"), match.TagStr("\n"))
}

// record matches one newline-terminated CSV record and returns its fields as
// strings.
func record(sep byte) gnaw.Parser[[]string] {
	fields := match.ManyWithSep(1, field(sep), match.One(sep))
	return match.Sequence(
		func(s match.Slots) []string {
			return slices.Map(match.Get[[][]byte](s, "fields"), func(f []byte) string {
				return string(f)
			})
		},
		match.Bind("fields", fields),
		match.Skip(lineEnd()),
	)
}
