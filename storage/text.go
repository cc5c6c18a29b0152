package storage

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	apperrors "github.com/kbukum/fobstore/errors"
)

// lookupEncoding resolves a WHATWG codec label such as "utf-8",
// "iso-8859-2" or "windows-1250". An empty label means UTF-8.
func lookupEncoding(codec string) (encoding.Encoding, error) {
	if codec == "" {
		codec = DefaultCodec
	}
	enc, err := htmlindex.Get(codec)
	if err != nil {
		return nil, apperrors.InvalidInput("codec", fmt.Sprintf("unknown text codec %q", codec)).WithCause(err)
	}
	return enc, nil
}

// encodeText encodes text, replacing runes the codec cannot represent.
func encodeText(text, codec string) ([]byte, error) {
	enc, err := lookupEncoding(codec)
	if err != nil {
		return nil, err
	}
	data, err := encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		return nil, apperrors.InvalidInput("text", "encode with "+codec).WithCause(err)
	}
	return data, nil
}

// decodeText decodes data, replacing undecodable bytes with U+FFFD.
func decodeText(data []byte, codec string) (string, error) {
	enc, err := lookupEncoding(codec)
	if err != nil {
		return "", err
	}
	text, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", apperrors.InvalidInput("text", "decode with "+codec).WithCause(err)
	}
	return string(text), nil
}
