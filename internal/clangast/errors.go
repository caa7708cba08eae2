package clangast

import "errors"

// Sentinel errors for the load phase. FileRead and JSONDecode are fatal;
// NotTranslationUnit is recoverable and means the caller should skip the
// file and keep going.
var (
	ErrFileRead           = errors.New("clangast: failed to read ast file")
	ErrJSONDecode         = errors.New("clangast: failed to decode ast json")
	ErrNotTranslationUnit = errors.New("clangast: root node is not a translation unit")
)
