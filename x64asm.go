// Package x64asm is a minimal x86-64 assembler: it turns Intel-syntax
// source text into raw machine code bytes, one pipeline stage at a time
// (tokenize, parse, encode).
package x64asm

import (
	"github.com/keurnel/x64asm/internal/encoder"
	"github.com/keurnel/x64asm/internal/lexer"
	"github.com/keurnel/x64asm/internal/parser"
	"github.com/keurnel/x64asm/internal/trace"
)

// Assemble runs the full pipeline over source and returns the resulting
// machine code bytes. The first stage to fail (tokenize, parse, or
// encode/resolve) determines the error's concrete type: *lexer.Error,
// *parser.Error, *encoder.EncodeError or *encoder.ResolveError.
func Assemble(source string) ([]byte, error) {
	return AssembleWithTrace(source, nil)
}

// AssembleWithTrace is Assemble, but records one diagnostic entry per
// encoded instruction (and the label-resolution pass) into sink, plus one
// error entry if assembly is abandoned. Passing a nil sink is equivalent to
// Assemble.
func AssembleWithTrace(source string, sink *trace.Sink) ([]byte, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		if sink != nil {
			sink.Error(trace.PhaseTokenize, err.Error())
		}
		return nil, err
	}

	instructions, err := parser.Parse(tokens)
	if err != nil {
		if sink != nil {
			sink.Error(trace.PhaseParse, err.Error())
		}
		return nil, err
	}

	code, err := encoder.Generate(instructions, sink)
	if err != nil && sink != nil {
		phase := trace.PhaseEncode
		if _, ok := err.(*encoder.ResolveError); ok {
			phase = trace.PhaseResolve
		}
		sink.Error(phase, err.Error())
	}
	return code, err
}
