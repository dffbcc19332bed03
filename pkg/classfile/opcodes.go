package classfile

// Opcode is one JVM instruction opcode.
type Opcode uint8

const (
	OpNop             Opcode = 0x00
	OpAconstNull      Opcode = 0x01
	OpIconstM1        Opcode = 0x02
	OpIconst0         Opcode = 0x03
	OpIconst1         Opcode = 0x04
	OpIconst2         Opcode = 0x05
	OpIconst3         Opcode = 0x06
	OpIconst4         Opcode = 0x07
	OpIconst5         Opcode = 0x08
	OpLconst0         Opcode = 0x09
	OpLconst1         Opcode = 0x0a
	OpFconst0         Opcode = 0x0b
	OpFconst1         Opcode = 0x0c
	OpFconst2         Opcode = 0x0d
	OpDconst0         Opcode = 0x0e
	OpDconst1         Opcode = 0x0f
	OpBipush          Opcode = 0x10
	OpSipush          Opcode = 0x11
	OpLdc             Opcode = 0x12
	OpLdcW            Opcode = 0x13
	OpLdc2W           Opcode = 0x14
	OpIload           Opcode = 0x15
	OpLload           Opcode = 0x16
	OpFload           Opcode = 0x17
	OpDload           Opcode = 0x18
	OpAload           Opcode = 0x19
	OpIload0          Opcode = 0x1a
	OpIload1          Opcode = 0x1b
	OpIload2          Opcode = 0x1c
	OpIload3          Opcode = 0x1d
	OpLload0          Opcode = 0x1e
	OpLload1          Opcode = 0x1f
	OpLload2          Opcode = 0x20
	OpLload3          Opcode = 0x21
	OpFload0          Opcode = 0x22
	OpFload1          Opcode = 0x23
	OpFload2          Opcode = 0x24
	OpFload3          Opcode = 0x25
	OpDload0          Opcode = 0x26
	OpDload1          Opcode = 0x27
	OpDload2          Opcode = 0x28
	OpDload3          Opcode = 0x29
	OpAload0          Opcode = 0x2a
	OpAload1          Opcode = 0x2b
	OpAload2          Opcode = 0x2c
	OpAload3          Opcode = 0x2d
	OpIaload          Opcode = 0x2e
	OpLaload          Opcode = 0x2f
	OpFaload          Opcode = 0x30
	OpDaload          Opcode = 0x31
	OpAaload          Opcode = 0x32
	OpBaload          Opcode = 0x33
	OpCaload          Opcode = 0x34
	OpSaload          Opcode = 0x35
	OpIstore          Opcode = 0x36
	OpLstore          Opcode = 0x37
	OpFstore          Opcode = 0x38
	OpDstore          Opcode = 0x39
	OpAstore          Opcode = 0x3a
	OpIstore0         Opcode = 0x3b
	OpIstore1         Opcode = 0x3c
	OpIstore2         Opcode = 0x3d
	OpIstore3         Opcode = 0x3e
	OpLstore0         Opcode = 0x3f
	OpLstore1         Opcode = 0x40
	OpLstore2         Opcode = 0x41
	OpLstore3         Opcode = 0x42
	OpFstore0         Opcode = 0x43
	OpFstore1         Opcode = 0x44
	OpFstore2         Opcode = 0x45
	OpFstore3         Opcode = 0x46
	OpDstore0         Opcode = 0x47
	OpDstore1         Opcode = 0x48
	OpDstore2         Opcode = 0x49
	OpDstore3         Opcode = 0x4a
	OpAstore0         Opcode = 0x4b
	OpAstore1         Opcode = 0x4c
	OpAstore2         Opcode = 0x4d
	OpAstore3         Opcode = 0x4e
	OpIastore         Opcode = 0x4f
	OpLastore         Opcode = 0x50
	OpFastore         Opcode = 0x51
	OpDastore         Opcode = 0x52
	OpAastore         Opcode = 0x53
	OpBastore         Opcode = 0x54
	OpCastore         Opcode = 0x55
	OpSastore         Opcode = 0x56
	OpPop             Opcode = 0x57
	OpPop2            Opcode = 0x58
	OpDup             Opcode = 0x59
	OpDupX1           Opcode = 0x5a
	OpDupX2           Opcode = 0x5b
	OpDup2            Opcode = 0x5c
	OpDup2X1          Opcode = 0x5d
	OpDup2X2          Opcode = 0x5e
	OpSwap            Opcode = 0x5f
	OpIadd            Opcode = 0x60
	OpLadd            Opcode = 0x61
	OpFadd            Opcode = 0x62
	OpDadd            Opcode = 0x63
	OpIsub            Opcode = 0x64
	OpLsub            Opcode = 0x65
	OpFsub            Opcode = 0x66
	OpDsub            Opcode = 0x67
	OpImul            Opcode = 0x68
	OpLmul            Opcode = 0x69
	OpFmul            Opcode = 0x6a
	OpDmul            Opcode = 0x6b
	OpIdiv            Opcode = 0x6c
	OpLdiv            Opcode = 0x6d
	OpFdiv            Opcode = 0x6e
	OpDdiv            Opcode = 0x6f
	OpIrem            Opcode = 0x70
	OpLrem            Opcode = 0x71
	OpFrem            Opcode = 0x72
	OpDrem            Opcode = 0x73
	OpIneg            Opcode = 0x74
	OpLneg            Opcode = 0x75
	OpFneg            Opcode = 0x76
	OpDneg            Opcode = 0x77
	OpIshl            Opcode = 0x78
	OpLshl            Opcode = 0x79
	OpIshr            Opcode = 0x7a
	OpLshr            Opcode = 0x7b
	OpIushr           Opcode = 0x7c
	OpLushr           Opcode = 0x7d
	OpIand            Opcode = 0x7e
	OpLand            Opcode = 0x7f
	OpIor             Opcode = 0x80
	OpLor             Opcode = 0x81
	OpIxor            Opcode = 0x82
	OpLxor            Opcode = 0x83
	OpIinc            Opcode = 0x84
	OpI2l             Opcode = 0x85
	OpI2f             Opcode = 0x86
	OpI2d             Opcode = 0x87
	OpL2i             Opcode = 0x88
	OpL2f             Opcode = 0x89
	OpL2d             Opcode = 0x8a
	OpF2i             Opcode = 0x8b
	OpF2l             Opcode = 0x8c
	OpF2d             Opcode = 0x8d
	OpD2i             Opcode = 0x8e
	OpD2l             Opcode = 0x8f
	OpD2f             Opcode = 0x90
	OpI2b             Opcode = 0x91
	OpI2c             Opcode = 0x92
	OpI2s             Opcode = 0x93
	OpLcmp            Opcode = 0x94
	OpFcmpl           Opcode = 0x95
	OpFcmpg           Opcode = 0x96
	OpDcmpl           Opcode = 0x97
	OpDcmpg           Opcode = 0x98
	OpIfeq            Opcode = 0x99
	OpIfne            Opcode = 0x9a
	OpIflt            Opcode = 0x9b
	OpIfge            Opcode = 0x9c
	OpIfgt            Opcode = 0x9d
	OpIfle            Opcode = 0x9e
	OpIfIcmpeq        Opcode = 0x9f
	OpIfIcmpne        Opcode = 0xa0
	OpIfIcmplt        Opcode = 0xa1
	OpIfIcmpge        Opcode = 0xa2
	OpIfIcmpgt        Opcode = 0xa3
	OpIfIcmple        Opcode = 0xa4
	OpIfAcmpeq        Opcode = 0xa5
	OpIfAcmpne        Opcode = 0xa6
	OpGoto            Opcode = 0xa7
	OpJsr             Opcode = 0xa8
	OpRet             Opcode = 0xa9
	OpTableswitch     Opcode = 0xaa
	OpLookupswitch    Opcode = 0xab
	OpIreturn         Opcode = 0xac
	OpLreturn         Opcode = 0xad
	OpFreturn         Opcode = 0xae
	OpDreturn         Opcode = 0xaf
	OpAreturn         Opcode = 0xb0
	OpReturn          Opcode = 0xb1
	OpGetstatic       Opcode = 0xb2
	OpPutstatic       Opcode = 0xb3
	OpGetfield        Opcode = 0xb4
	OpPutfield        Opcode = 0xb5
	OpInvokevirtual   Opcode = 0xb6
	OpInvokespecial   Opcode = 0xb7
	OpInvokestatic    Opcode = 0xb8
	OpInvokeinterface Opcode = 0xb9
	OpInvokedynamic   Opcode = 0xba
	OpNew             Opcode = 0xbb
	OpNewarray        Opcode = 0xbc
	OpAnewarray       Opcode = 0xbd
	OpArraylength     Opcode = 0xbe
	OpAthrow          Opcode = 0xbf
	OpCheckcast       Opcode = 0xc0
	OpInstanceof      Opcode = 0xc1
	OpMonitorenter    Opcode = 0xc2
	OpMonitorexit     Opcode = 0xc3
	OpWide            Opcode = 0xc4
	OpMultianewarray  Opcode = 0xc5
	OpIfnull          Opcode = 0xc6
	OpIfnonnull       Opcode = 0xc7
	OpGotoW           Opcode = 0xc8
	OpJsrW            Opcode = 0xc9
)

// argKind describes the width and signedness of one inline operand.
type argKind uint8

const (
	argU1 argKind = iota
	argS1
	argU2
	argS2
	argS4
)

func (k argKind) width() int {
	switch k {
	case argU1, argS1:
		return 1
	case argU2, argS2:
		return 2
	default:
		return 4
	}
}

// opInfo describes one opcode's static shape. poolRef marks opcodes
// whose first operand is a constant pool index; variable-length
// opcodes (tableswitch, lookupswitch, wide) are handled out of table.
type opInfo struct {
	name    string
	args    []argKind
	poolRef bool
}

var opTable = [256]opInfo{
	OpNop:             {name: "nop"},
	OpAconstNull:      {name: "aconst_null"},
	OpIconstM1:        {name: "iconst_m1"},
	OpIconst0:         {name: "iconst_0"},
	OpIconst1:         {name: "iconst_1"},
	OpIconst2:         {name: "iconst_2"},
	OpIconst3:         {name: "iconst_3"},
	OpIconst4:         {name: "iconst_4"},
	OpIconst5:         {name: "iconst_5"},
	OpLconst0:         {name: "lconst_0"},
	OpLconst1:         {name: "lconst_1"},
	OpFconst0:         {name: "fconst_0"},
	OpFconst1:         {name: "fconst_1"},
	OpFconst2:         {name: "fconst_2"},
	OpDconst0:         {name: "dconst_0"},
	OpDconst1:         {name: "dconst_1"},
	OpBipush:          {name: "bipush", args: []argKind{argS1}},
	OpSipush:          {name: "sipush", args: []argKind{argS2}},
	OpLdc:             {name: "ldc", args: []argKind{argU1}, poolRef: true},
	OpLdcW:            {name: "ldc_w", args: []argKind{argU2}, poolRef: true},
	OpLdc2W:           {name: "ldc2_w", args: []argKind{argU2}, poolRef: true},
	OpIload:           {name: "iload", args: []argKind{argU1}},
	OpLload:           {name: "lload", args: []argKind{argU1}},
	OpFload:           {name: "fload", args: []argKind{argU1}},
	OpDload:           {name: "dload", args: []argKind{argU1}},
	OpAload:           {name: "aload", args: []argKind{argU1}},
	OpIload0:          {name: "iload_0"},
	OpIload1:          {name: "iload_1"},
	OpIload2:          {name: "iload_2"},
	OpIload3:          {name: "iload_3"},
	OpLload0:          {name: "lload_0"},
	OpLload1:          {name: "lload_1"},
	OpLload2:          {name: "lload_2"},
	OpLload3:          {name: "lload_3"},
	OpFload0:          {name: "fload_0"},
	OpFload1:          {name: "fload_1"},
	OpFload2:          {name: "fload_2"},
	OpFload3:          {name: "fload_3"},
	OpDload0:          {name: "dload_0"},
	OpDload1:          {name: "dload_1"},
	OpDload2:          {name: "dload_2"},
	OpDload3:          {name: "dload_3"},
	OpAload0:          {name: "aload_0"},
	OpAload1:          {name: "aload_1"},
	OpAload2:          {name: "aload_2"},
	OpAload3:          {name: "aload_3"},
	OpIaload:          {name: "iaload"},
	OpLaload:          {name: "laload"},
	OpFaload:          {name: "faload"},
	OpDaload:          {name: "daload"},
	OpAaload:          {name: "aaload"},
	OpBaload:          {name: "baload"},
	OpCaload:          {name: "caload"},
	OpSaload:          {name: "saload"},
	OpIstore:          {name: "istore", args: []argKind{argU1}},
	OpLstore:          {name: "lstore", args: []argKind{argU1}},
	OpFstore:          {name: "fstore", args: []argKind{argU1}},
	OpDstore:          {name: "dstore", args: []argKind{argU1}},
	OpAstore:          {name: "astore", args: []argKind{argU1}},
	OpIstore0:         {name: "istore_0"},
	OpIstore1:         {name: "istore_1"},
	OpIstore2:         {name: "istore_2"},
	OpIstore3:         {name: "istore_3"},
	OpLstore0:         {name: "lstore_0"},
	OpLstore1:         {name: "lstore_1"},
	OpLstore2:         {name: "lstore_2"},
	OpLstore3:         {name: "lstore_3"},
	OpFstore0:         {name: "fstore_0"},
	OpFstore1:         {name: "fstore_1"},
	OpFstore2:         {name: "fstore_2"},
	OpFstore3:         {name: "fstore_3"},
	OpDstore0:         {name: "dstore_0"},
	OpDstore1:         {name: "dstore_1"},
	OpDstore2:         {name: "dstore_2"},
	OpDstore3:         {name: "dstore_3"},
	OpAstore0:         {name: "astore_0"},
	OpAstore1:         {name: "astore_1"},
	OpAstore2:         {name: "astore_2"},
	OpAstore3:         {name: "astore_3"},
	OpIastore:         {name: "iastore"},
	OpLastore:         {name: "lastore"},
	OpFastore:         {name: "fastore"},
	OpDastore:         {name: "dastore"},
	OpAastore:         {name: "aastore"},
	OpBastore:         {name: "bastore"},
	OpCastore:         {name: "castore"},
	OpSastore:         {name: "sastore"},
	OpPop:             {name: "pop"},
	OpPop2:            {name: "pop2"},
	OpDup:             {name: "dup"},
	OpDupX1:           {name: "dup_x1"},
	OpDupX2:           {name: "dup_x2"},
	OpDup2:            {name: "dup2"},
	OpDup2X1:          {name: "dup2_x1"},
	OpDup2X2:          {name: "dup2_x2"},
	OpSwap:            {name: "swap"},
	OpIadd:            {name: "iadd"},
	OpLadd:            {name: "ladd"},
	OpFadd:            {name: "fadd"},
	OpDadd:            {name: "dadd"},
	OpIsub:            {name: "isub"},
	OpLsub:            {name: "lsub"},
	OpFsub:            {name: "fsub"},
	OpDsub:            {name: "dsub"},
	OpImul:            {name: "imul"},
	OpLmul:            {name: "lmul"},
	OpFmul:            {name: "fmul"},
	OpDmul:            {name: "dmul"},
	OpIdiv:            {name: "idiv"},
	OpLdiv:            {name: "ldiv"},
	OpFdiv:            {name: "fdiv"},
	OpDdiv:            {name: "ddiv"},
	OpIrem:            {name: "irem"},
	OpLrem:            {name: "lrem"},
	OpFrem:            {name: "frem"},
	OpDrem:            {name: "drem"},
	OpIneg:            {name: "ineg"},
	OpLneg:            {name: "lneg"},
	OpFneg:            {name: "fneg"},
	OpDneg:            {name: "dneg"},
	OpIshl:            {name: "ishl"},
	OpLshl:            {name: "lshl"},
	OpIshr:            {name: "ishr"},
	OpLshr:            {name: "lshr"},
	OpIushr:           {name: "iushr"},
	OpLushr:           {name: "lushr"},
	OpIand:            {name: "iand"},
	OpLand:            {name: "land"},
	OpIor:             {name: "ior"},
	OpLor:             {name: "lor"},
	OpIxor:            {name: "ixor"},
	OpLxor:            {name: "lxor"},
	OpIinc:            {name: "iinc", args: []argKind{argU1, argS1}},
	OpI2l:             {name: "i2l"},
	OpI2f:             {name: "i2f"},
	OpI2d:             {name: "i2d"},
	OpL2i:             {name: "l2i"},
	OpL2f:             {name: "l2f"},
	OpL2d:             {name: "l2d"},
	OpF2i:             {name: "f2i"},
	OpF2l:             {name: "f2l"},
	OpF2d:             {name: "f2d"},
	OpD2i:             {name: "d2i"},
	OpD2l:             {name: "d2l"},
	OpD2f:             {name: "d2f"},
	OpI2b:             {name: "i2b"},
	OpI2c:             {name: "i2c"},
	OpI2s:             {name: "i2s"},
	OpLcmp:            {name: "lcmp"},
	OpFcmpl:           {name: "fcmpl"},
	OpFcmpg:           {name: "fcmpg"},
	OpDcmpl:           {name: "dcmpl"},
	OpDcmpg:           {name: "dcmpg"},
	OpIfeq:            {name: "ifeq", args: []argKind{argS2}},
	OpIfne:            {name: "ifne", args: []argKind{argS2}},
	OpIflt:            {name: "iflt", args: []argKind{argS2}},
	OpIfge:            {name: "ifge", args: []argKind{argS2}},
	OpIfgt:            {name: "ifgt", args: []argKind{argS2}},
	OpIfle:            {name: "ifle", args: []argKind{argS2}},
	OpIfIcmpeq:        {name: "if_icmpeq", args: []argKind{argS2}},
	OpIfIcmpne:        {name: "if_icmpne", args: []argKind{argS2}},
	OpIfIcmplt:        {name: "if_icmplt", args: []argKind{argS2}},
	OpIfIcmpge:        {name: "if_icmpge", args: []argKind{argS2}},
	OpIfIcmpgt:        {name: "if_icmpgt", args: []argKind{argS2}},
	OpIfIcmple:        {name: "if_icmple", args: []argKind{argS2}},
	OpIfAcmpeq:        {name: "if_acmpeq", args: []argKind{argS2}},
	OpIfAcmpne:        {name: "if_acmpne", args: []argKind{argS2}},
	OpGoto:            {name: "goto", args: []argKind{argS2}},
	OpJsr:             {name: "jsr", args: []argKind{argS2}},
	OpRet:             {name: "ret", args: []argKind{argU1}},
	OpTableswitch:     {name: "tableswitch"},
	OpLookupswitch:    {name: "lookupswitch"},
	OpIreturn:         {name: "ireturn"},
	OpLreturn:         {name: "lreturn"},
	OpFreturn:         {name: "freturn"},
	OpDreturn:         {name: "dreturn"},
	OpAreturn:         {name: "areturn"},
	OpReturn:          {name: "return"},
	OpGetstatic:       {name: "getstatic", args: []argKind{argU2}, poolRef: true},
	OpPutstatic:       {name: "putstatic", args: []argKind{argU2}, poolRef: true},
	OpGetfield:        {name: "getfield", args: []argKind{argU2}, poolRef: true},
	OpPutfield:        {name: "putfield", args: []argKind{argU2}, poolRef: true},
	OpInvokevirtual:   {name: "invokevirtual", args: []argKind{argU2}, poolRef: true},
	OpInvokespecial:   {name: "invokespecial", args: []argKind{argU2}, poolRef: true},
	OpInvokestatic:    {name: "invokestatic", args: []argKind{argU2}, poolRef: true},
	OpInvokeinterface: {name: "invokeinterface", args: []argKind{argU2, argU1, argU1}, poolRef: true},
	OpInvokedynamic:   {name: "invokedynamic", args: []argKind{argU2, argU1, argU1}, poolRef: true},
	OpNew:             {name: "new", args: []argKind{argU2}, poolRef: true},
	OpNewarray:        {name: "newarray", args: []argKind{argU1}},
	OpAnewarray:       {name: "anewarray", args: []argKind{argU2}, poolRef: true},
	OpArraylength:     {name: "arraylength"},
	OpAthrow:          {name: "athrow"},
	OpCheckcast:       {name: "checkcast", args: []argKind{argU2}, poolRef: true},
	OpInstanceof:      {name: "instanceof", args: []argKind{argU2}, poolRef: true},
	OpMonitorenter:    {name: "monitorenter"},
	OpMonitorexit:     {name: "monitorexit"},
	OpWide:            {name: "wide"},
	OpMultianewarray:  {name: "multianewarray", args: []argKind{argU2, argU1}, poolRef: true},
	OpIfnull:          {name: "ifnull", args: []argKind{argS2}},
	OpIfnonnull:       {name: "ifnonnull", args: []argKind{argS2}},
	OpGotoW:           {name: "goto_w", args: []argKind{argS4}},
	OpJsrW:            {name: "jsr_w", args: []argKind{argS4}},
}

// Mnemonic returns the opcode's name, or "" for an undefined opcode.
func (op Opcode) Mnemonic() string { return opTable[op].name }

// IsDefined reports whether op is a defined JVM opcode.
func (op Opcode) IsDefined() bool { return opTable[op].name != "" }

// IsPoolRef reports whether the opcode's first operand is a constant
// pool index.
func (op Opcode) IsPoolRef() bool { return opTable[op].poolRef }
