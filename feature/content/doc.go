// Package content resolves request paths to files and writes them back.
//
// Requests are answered from an ordered list of roots. Each root is a local
// directory or an s3://bucket/prefix location; the first root that holds the
// requested file wins, so build output can be overlaid on static assets.
//
// # Resolution
//
//   - The request path is percent-decoded; the query string is ignored.
//   - A path ending in "/" is looked up as path + "index.html".
//   - Roots are tried one after the other; the last attempted location is
//     kept for diagnostics when every root misses.
//
// # Ranges
//
// A single "bytes=<start>-<end>" range is honoured with a 206 response.
// Parsing is lenient: empty or malformed sides become 0, and an end of 0 means
// "to the last byte". The body stops one byte before the advertised end.
//
// # Fallback
//
// When every root misses and a fallback is configured (true for /index.html,
// or a literal path), the fallback is resolved against the same roots and sent
// with 200; range headers are ignored for it. Read errors other than
// not-found never fall back and produce a 500 whose body lists the attempted
// path and the error fields.
package content
