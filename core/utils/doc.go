// Package utils provides lenient conversion helpers shared by the config and
// content packages.
//
// The helpers never fail: malformed input collapses to the zero value. This is
// what the Range header parser and the fallback flag decoding rely on.
package utils
