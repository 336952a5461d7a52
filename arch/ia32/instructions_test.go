package ia32

import (
	"errors"
	"testing"

	"github.com/apparentlymart/isaenc/arch"
	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/arch/x86/x86asm"
)

// decodes checks that x86asm reads got back as one whole instruction with
// the expected operation. A zero op skips the operation check.
func decodes(t *testing.T, mode Mode, got []byte, op x86asm.Op) {
	t.Helper()
	inst, err := x86asm.Decode(got, int(mode))
	if err != nil {
		t.Fatalf("% x does not decode: %s", got, err)
	}
	if inst.Len != len(got) {
		t.Errorf("% x decodes as %d bytes (%s), want %d", got, inst.Len, inst, len(got))
	}
	if op != 0 && inst.Op != op {
		t.Errorf("% x decodes as %s, want %s", got, inst, op)
	}
}

func TestAutoEncodings(t *testing.T) {
	m := Long
	tests := []struct {
		name  string
		build func() (*arch.Auto, error)
		want  []byte
		op    x86asm.Op
	}{
		// Moves
		{"mov rax, rbx", func() (*arch.Auto, error) { return m.Mov(RAX, RBX) }, []byte{0x48, 0x89, 0xd8}, x86asm.MOV},
		{"mov r8, r11", func() (*arch.Auto, error) { return m.Mov(R8, R11) }, []byte{0x4d, 0x89, 0xd8}, x86asm.MOV},
		{"mov eax, ebx", func() (*arch.Auto, error) { return m.Mov(EAX, EBX) }, []byte{0x89, 0xd8}, x86asm.MOV},
		{"mov ax, bx", func() (*arch.Auto, error) { return m.Mov(AX, BX) }, []byte{0x66, 0x89, 0xd8}, x86asm.MOV},
		{"mov sil, al", func() (*arch.Auto, error) { return m.Mov(SIL, AL) }, []byte{0x40, 0x88, 0xc6}, x86asm.MOV},
		{"mov ah, bl", func() (*arch.Auto, error) { return m.Mov(AH, BL) }, []byte{0x88, 0xdc}, x86asm.MOV},
		{"mov mem, r12", func() (*arch.Auto, error) {
			return m.Mov(Mem{Size: 64, Base: RAX, Index: RBX, Scale: 4, Disp: -64}, R12)
		}, []byte{0x4c, 0x89, 0x64, 0x98, 0xc0}, x86asm.MOV},
		{"mov si, mem", func() (*arch.Auto, error) {
			return m.Mov(SI, Mem{Size: 16, Base: R13, Index: RBP, Scale: 8, Disp: -107})
		}, []byte{0x66, 0x41, 0x8b, 0x74, 0xed, 0x95}, x86asm.MOV},
		{"mov rax, [rbp]", func() (*arch.Auto, error) { return m.Mov(RAX, Mem{Size: 64, Base: RBP}) }, []byte{0x48, 0x8b, 0x45, 0x00}, x86asm.MOV},
		{"mov eax, [rcx*8+0x10]", func() (*arch.Auto, error) {
			return m.Mov(EAX, Mem{Size: 32, Index: RCX, Scale: 8, Disp: 0x10})
		}, []byte{0x8b, 0x04, 0xcd, 0x10, 0x00, 0x00, 0x00}, x86asm.MOV},
		{"mov r12w, imm", func() (*arch.Auto, error) { return m.Mov(R12W, 28500) }, []byte{0x66, 0x41, 0xbc, 0x54, 0x6f}, x86asm.MOV},
		{"mov rcx, imm", func() (*arch.Auto, error) { return m.Mov(RCX, 28500) }, []byte{0x48, 0xb9, 0x54, 0x6f, 0, 0, 0, 0, 0, 0}, x86asm.MOV},
		{"mov rbx, imm", func() (*arch.Auto, error) { return m.Mov(RBX, 0xbdb4c444) }, []byte{0x48, 0xbb, 0x44, 0xc4, 0xb4, 0xbd, 0, 0, 0, 0}, x86asm.MOV},
		{"mov rax, negative", func() (*arch.Auto, error) { return m.Mov(RAX, -0xffffffff) }, []byte{0x48, 0xb8, 0x01, 0, 0, 0, 0xff, 0xff, 0xff, 0xff}, x86asm.MOV},
		{"mov dword mem, imm", func() (*arch.Auto, error) {
			return m.Mov(Mem{Size: 32, Base: R13, Index: RCX, Scale: 8, Disp: -75}, 0x10000000)
		}, []byte{0x41, 0xc7, 0x44, 0xcd, 0xb5, 0x00, 0x00, 0x00, 0x10}, x86asm.MOV},
		{"mov qword mem, imm", func() (*arch.Auto, error) {
			return m.Mov(Mem{Size: 64, Base: R11, Index: RCX, Scale: 4, Disp: -30}, 0x10000000)
		}, []byte{0x49, 0xc7, 0x44, 0x8b, 0xe2, 0x00, 0x00, 0x00, 0x10}, x86asm.MOV},

		// Additions
		{"add si, imm", func() (*arch.Auto, error) { return m.Add(SI, 32000) }, []byte{0x66, 0x81, 0xc6, 0x00, 0x7d}, x86asm.ADD},
		{"add rdx, imm", func() (*arch.Auto, error) { return m.Add(RDX, 0x2400) }, []byte{0x48, 0x81, 0xc2, 0x00, 0x24, 0x00, 0x00}, x86asm.ADD},
		{"add byte mem, imm", func() (*arch.Auto, error) {
			return m.Add(Mem{Size: 8, Base: R14, Index: RDI, Scale: 4, Disp: -123}, 2)
		}, []byte{0x41, 0x80, 0x44, 0xbe, 0x85, 0x02}, x86asm.ADD},
		{"add qword mem, imm", func() (*arch.Auto, error) {
			return m.Add(Mem{Size: 64, Base: R14, Index: R10, Scale: 8}, 0x10203040)
		}, []byte{0x4b, 0x81, 0x04, 0xd6, 0x40, 0x30, 0x20, 0x10}, x86asm.ADD},
		{"add si, r12w", func() (*arch.Auto, error) { return m.Add(SI, R12W) }, []byte{0x66, 0x44, 0x01, 0xe6}, x86asm.ADD},
		{"add mem, r8d", func() (*arch.Auto, error) {
			return m.Add(Mem{Size: 32, Base: R12, Index: RCX, Scale: 8, Disp: -99}, R8D)
		}, []byte{0x45, 0x01, 0x44, 0xcc, 0x9d}, x86asm.ADD},
		{"add rcx, mem", func() (*arch.Auto, error) {
			return m.Add(RCX, Mem{Size: 64, Base: R11, Index: RDX, Scale: 8, Disp: -88})
		}, []byte{0x49, 0x03, 0x4c, 0xd3, 0xa8}, x86asm.ADD},

		// Jumps
		{"jmp r10", func() (*arch.Auto, error) { return m.Jmp(R10) }, []byte{0x41, 0xff, 0xe2}, x86asm.JMP},
		{"jmp mem", func() (*arch.Auto, error) { return m.Jmp(Mem{Size: 64, Base: RBX, Disp: 32}) }, []byte{0xff, 0x63, 0x20}, x86asm.JMP},
		{"jnz near", func() (*arch.Auto, error) { return m.Jcc(NZ, 0x200) }, []byte{0x0f, 0x85, 0x00, 0x02, 0x00, 0x00}, x86asm.JNE},
		{"jb short", func() (*arch.Auto, error) { return m.Jcc(B, 0x12) }, []byte{0x72, 0x12}, x86asm.JB},
		{"jrcxz", func() (*arch.Auto, error) { return m.Jcc(RCXZ, -2) }, []byte{0xe3, 0xfe}, 0},

		// Shifts
		{"shl r12, 5", func() (*arch.Auto, error) { return m.Shl(R12, 5) }, []byte{0x49, 0xc1, 0xe4, 0x05}, x86asm.SHL},
		{"shl dl, 1", func() (*arch.Auto, error) { return m.Shl(DL, 1) }, []byte{0xd0, 0xe2}, x86asm.SHL},
		{"sal mem, 31", func() (*arch.Auto, error) {
			return m.Sal(Mem{Size: 64, Base: RDX, Index: RBX, Scale: 2, Disp: -12}, 31)
		}, []byte{0x48, 0xc1, 0x64, 0x5a, 0xf4, 0x1f}, x86asm.SHL},
		{"sal r15b, cl", func() (*arch.Auto, error) { return m.Sal(R15B, CL) }, []byte{0x41, 0xd2, 0xe7}, x86asm.SHL},
		{"shr rcx, 2", func() (*arch.Auto, error) { return m.Shr(RCX, 2) }, []byte{0x48, 0xc1, 0xe9, 0x02}, x86asm.SHR},
		{"sar si, cl", func() (*arch.Auto, error) { return m.Sar(SI, CL) }, []byte{0x66, 0xd3, 0xfe}, x86asm.SAR},

		// Logic
		{"and cl, 5", func() (*arch.Auto, error) { return m.And(CL, 5) }, []byte{0x80, 0xe1, 0x05}, x86asm.AND},
		{"or bl, 2", func() (*arch.Auto, error) { return m.Or(BL, 2) }, []byte{0x80, 0xcb, 0x02}, x86asm.OR},
		{"xor rdx, imm", func() (*arch.Auto, error) { return m.Xor(RDX, 0x2365) }, []byte{0x48, 0x81, 0xf2, 0x65, 0x23, 0x00, 0x00}, x86asm.XOR},
		{"and r10, mem", func() (*arch.Auto, error) {
			return m.And(R10, Mem{Size: 64, Base: RSI, Index: RDX, Scale: 4})
		}, []byte{0x4c, 0x23, 0x14, 0x96}, x86asm.AND},
		{"xor mem, eax", func() (*arch.Auto, error) { return m.Xor(Mem{Size: 32, Base: RDI}, EAX) }, []byte{0x31, 0x07}, x86asm.XOR},
		{"or byte mem, 1", func() (*arch.Auto, error) {
			return m.Or(Mem{Size: 8, Base: RBX, Disp: 0x100}, 1)
		}, []byte{0x80, 0x8b, 0x00, 0x01, 0x00, 0x00, 0x01}, x86asm.OR},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, err := test.build()
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			got, err := a.Bytes()
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				ins, _ := a.Expand()
				t.Errorf("wrong bytes\n%s\n%s", diff, spew.Sdump(ins))
			}
			size, err := a.SizeBytes()
			if err != nil || size != len(test.want) {
				t.Errorf("wrong size %d (%v), want %d", size, err, len(test.want))
			}
			decodes(t, m, got, test.op)
		})
	}
}

func TestMovImmToReg(t *testing.T) {
	in, err := Long.MovImmToReg(RCX, 28500)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x48, 0xb9, 0x54, 0x6f, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if diff := cmp.Diff(want, in.Bytes()); diff != "" {
		t.Errorf("wrong bytes\n%s", diff)
	}
	if got, _ := in.Opcode.Register(); got != 1 {
		t.Errorf("wrong register %d in opcode", got)
	}
	if got, want := in.SizeBits(), 80; got != want {
		t.Errorf("wrong size %d, want %d", got, want)
	}
}

func TestProtectedMode(t *testing.T) {
	m := Protected
	tests := []struct {
		name  string
		build func() (*Instruction, error)
		want  []byte
		op    x86asm.Op
	}{
		{"mov eax, ebx", func() (*Instruction, error) { return m.MovRegToReg(EAX, EBX) }, []byte{0x89, 0xd8}, x86asm.MOV},
		{"mov ax, bx", func() (*Instruction, error) { return m.MovRegToReg(AX, BX) }, []byte{0x66, 0x89, 0xd8}, x86asm.MOV},
		{"jmp eax", func() (*Instruction, error) { return m.JmpToReg(EAX) }, []byte{0xff, 0xe0}, x86asm.JMP},
		{"add mem, ecx", func() (*Instruction, error) {
			return m.AddRegToMem(Mem{Size: 32, Base: EBX, Disp: 4}, ECX)
		}, []byte{0x01, 0x4b, 0x04}, x86asm.ADD},
		{"mov ecx, imm", func() (*Instruction, error) { return m.MovImmToReg(ECX, 0x1234) }, []byte{0xb9, 0x34, 0x12, 0x00, 0x00}, x86asm.MOV},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			in, err := test.build()
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if diff := cmp.Diff(test.want, in.Bytes()); diff != "" {
				t.Errorf("wrong bytes\n%s", diff)
			}
			decodes(t, m, in.Bytes(), test.op)
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*arch.Auto, error)
		want  error
	}{
		{"imm too wide for eax", func() (*arch.Auto, error) { return Long.Mov(EAX, 0xbdb4c444) }, arch.ErrRange},
		{"imm too wide for ax", func() (*arch.Auto, error) { return Long.Mov(AX, 0xfffff) }, arch.ErrRange},
		{"shift count", func() (*arch.Auto, error) { return Long.Shl(EAX, 51) }, arch.ErrRange},
		{"shift by ah", func() (*arch.Auto, error) { return Long.Sal(R15B, AH) }, arch.ErrInvalidArgument},
		{"ah with rex", func() (*arch.Auto, error) { return Long.Mov(AH, R8B) }, arch.ErrInvalidArgument},
		{"ah with sil", func() (*arch.Auto, error) { return Long.Mov(AH, SIL) }, arch.ErrInvalidArgument},
		{"sizes differ", func() (*arch.Auto, error) { return Long.Mov(RAX, EBX) }, arch.ErrInvalidArgument},
		{"memory to memory", func() (*arch.Auto, error) {
			return Long.Mov(Mem{Size: 64, Base: RAX}, Mem{Size: 64, Base: RBX})
		}, arch.ErrInvalidArgument},
		{"string operand", func() (*arch.Auto, error) { return Long.Mov(RAX, "rbx") }, arch.ErrInvalidArgument},
		{"segment register", func() (*arch.Auto, error) { return Long.Mov(CS, AX) }, arch.ErrInvalidArgument},
		{"64-bit in protected mode", func() (*arch.Auto, error) { return Protected.Mov(RAX, RBX) }, arch.ErrInvalidArgument},
		{"r8d in protected mode", func() (*arch.Auto, error) { return Protected.Mov(R8D, EAX) }, arch.ErrInvalidArgument},
		{"32-bit address in long mode", func() (*arch.Auto, error) {
			return Long.Mov(RAX, Mem{Size: 64, Base: EAX})
		}, arch.ErrInvalidArgument},
		{"rsp base", func() (*arch.Auto, error) { return Long.Mov(RAX, Mem{Size: 64, Base: RSP}) }, arch.ErrUnimplemented},
		{"rsp index", func() (*arch.Auto, error) {
			return Long.Mov(RAX, Mem{Size: 64, Base: RAX, Index: RSP, Scale: 1})
		}, arch.ErrUnimplemented},
		{"rbp base with index", func() (*arch.Auto, error) {
			return Long.Mov(RAX, Mem{Size: 64, Base: RBP, Index: RAX, Scale: 2})
		}, arch.ErrUnimplemented},
		{"jrcxz too far", func() (*arch.Auto, error) { return Long.Jcc(RCXZ, 0x200) }, arch.ErrRange},
		{"bad condition", func() (*arch.Auto, error) { return Long.Jcc(Cond(40), 0) }, arch.ErrInvalidArgument},
		{"jmp eax in long mode", func() (*arch.Auto, error) { return Long.Jmp(EAX) }, arch.ErrInvalidArgument},
		{"logic mem to mem", func() (*arch.Auto, error) {
			return Long.And(Mem{Size: 64, Base: RAX}, Mem{Size: 64, Base: RBX})
		}, arch.ErrInvalidArgument},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, err := test.build()
			if !errors.Is(err, test.want) {
				t.Fatalf("wrong error %v, want %v", err, test.want)
			}
			if a != nil {
				t.Errorf("got an instruction along with the error")
			}
		})
	}
}

func TestMemValidate(t *testing.T) {
	tests := []struct {
		name string
		mem  Mem
		want error
	}{
		{"ok", Mem{Size: 64, Base: R12, Disp: -137}, nil},
		{"scaled index", Mem{Size: 64, Index: R10, Scale: 8}, nil},
		{"displacement", Mem{Size: 64, Base: R12, Disp: 1 << 32}, arch.ErrRange},
		{"scale", Mem{Size: 64, Index: R10, Scale: 7}, arch.ErrInvalidArgument},
		{"size", Mem{Size: 15, Base: RAX}, arch.ErrInvalidArgument},
		{"no registers", Mem{Size: 64, Disp: 8}, arch.ErrInvalidArgument},
		{"scale without index", Mem{Size: 64, Base: RAX, Scale: 2}, arch.ErrInvalidArgument},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.mem.Validate()
			if test.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %s", err)
				}
				return
			}
			if !errors.Is(err, test.want) {
				t.Fatalf("wrong error %v, want %v", err, test.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	in, err := Long.MovImmToReg(RCX, 0x1234)
	if err != nil {
		t.Fatal(err)
	}
	test, mask := in.Match()
	if diff := cmp.Diff([]byte{0xf8, 0xf8, 0, 0, 0, 0, 0, 0, 0, 0}, mask); diff != "" {
		t.Errorf("wrong mask\n%s", diff)
	}
	if diff := cmp.Diff([]byte{0x48, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0}, test); diff != "" {
		t.Errorf("wrong test bits\n%s", diff)
	}

	in, err = Long.JmpToReg(R10)
	if err != nil {
		t.Fatal(err)
	}
	test, mask = in.Match()
	if diff := cmp.Diff([]byte{0xf8, 0xff, 0xf8}, mask); diff != "" {
		t.Errorf("wrong mask\n%s", diff)
	}
	if diff := cmp.Diff([]byte{0x40, 0xff, 0xe0}, test); diff != "" {
		t.Errorf("wrong test bits\n%s", diff)
	}
}

func TestCatalog(t *testing.T) {
	for _, e := range Catalog() {
		t.Run(e.Mnemonic, func(t *testing.T) {
			in, err := e.Build()
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			decodes(t, Long, in.Bytes(), 0)
			m, ok := in.(arch.Matcher)
			if !ok {
				t.Fatalf("%T is not a Matcher", in)
			}
			test, mask := m.Match()
			got := in.Bytes()
			for i := range got {
				if got[i]&mask[i] != test[i] {
					t.Errorf("byte %d: %#02x does not match %#02x under mask %#02x", i, got[i], test[i], mask[i])
				}
			}
		})
	}
}
