package utils

import "github.com/mailru/easyjson/jlexer"

// DecodeObject обходит поля JSON объекта для ручных UnmarshalEasyJSON.
// Поля со значением null пропускаются, field вызывается для остальных.
func DecodeObject(in *jlexer.Lexer, field func(key string)) {
	isTopLevel := in.IsStart()

	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}

		in.Skip()

		return
	}

	in.Delim('{')

	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()

		if in.IsNull() {
			in.Skip()
			in.WantComma()

			continue
		}

		field(key)
		in.WantComma()
	}

	in.Delim('}')

	if isTopLevel {
		in.Consumed()
	}
}

// DecodeArray вызывает item для каждого элемента массива
func DecodeArray(in *jlexer.Lexer, item func()) {
	in.Delim('[')

	for !in.IsDelim(']') {
		item()
		in.WantComma()
	}

	in.Delim(']')
}
