package x64asm

import (
	"bytes"
	"testing"

	"github.com/keurnel/x64asm/internal/trace"
)

func TestAssembleEndToEnd(t *testing.T) {
	src := `
; trivial loop
start:
	mov rax, 0
	add rax, 1
	cmp rax, 1
	jmp start
`
	got, err := Assemble(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected non-empty output")
	}
}

func TestAssembleForwardLabel(t *testing.T) {
	src := `
jmp done
ret
done:
`
	got, err := Assemble(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{0xE9, 0x01, 0x00, 0x00, 0x00, 0xC3}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestAssembleLexError(t *testing.T) {
	_, err := Assemble("mov rax, $5")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestAssembleParseError(t *testing.T) {
	_, err := Assemble("ret rax")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestAssembleEncodeError(t *testing.T) {
	_, err := Assemble("add eax, rax")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestAssembleWithTraceRecordsEntries(t *testing.T) {
	sink := trace.NewSink()
	_, err := AssembleWithTrace("ret", sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.Entries()) == 0 {
		t.Fatal("expected at least one traced entry")
	}
}
