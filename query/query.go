// Package query holds the error taxonomy shared by the query layers: the
// assembler, the executor, the materializer and the connection handle.
//
// Every typed error matches its sentinel through errors.Is, and errors that
// wrap a driver failure expose it through errors.Unwrap.
package query
