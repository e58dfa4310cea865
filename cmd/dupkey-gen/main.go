// Package main provides the CLI entrypoint for dupkey-gen.
//
// dupkey-gen builds decoders that resolve repeated keys in a document by a
// fixed policy:
//   - gen: analyzes Go packages and writes DecodeDuplicates methods for
//     structs marked //dupkey:first or //dupkey:last
//   - inspect: prints the decoding plans as a YAML schema file
//   - decode: resolves one JSON, YAML or BSON document against a schema file
package main

import "dupkey-generator/internal/cli"

func main() {
	cli.Execute()
}
