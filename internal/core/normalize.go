package core

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// normalizeInput strips a UTF-8 BOM and applies Unicode NFC normalization to
// a module fixture before it is unmarshaled. Identifiers and string literals
// embedded in the JSON travel through as ordinary JSON string values, so
// normalizing the raw bytes once here is enough to guarantee that two
// lexically equivalent fixtures — NFC vs NFD, BOM or not — decode to
// identical names and literals regardless of the encoding the fixture was
// written in.
func normalizeInput(data []byte) []byte {
	data = bytes.TrimPrefix(data, bomUTF8)
	if !norm.NFC.IsNormal(data) {
		data = norm.NFC.Bytes(data)
	}
	return data
}
