package parser

import "io"

// ParseString lexes and parses source text into an untyped tree.
func ParseString(src string) (*Source, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseReader consumes source from an io.Reader and parses it.
func ParseReader(r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}
