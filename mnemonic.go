package textparse

// Mnemonic is the display name of an ASCII control character.
type Mnemonic struct {
	Name string
	Code rune
}

// Mnemonics lists the escape mnemonics in code order. SP and DEL close the
// table as in the Haskell report.
var Mnemonics = []Mnemonic{
	{"NUL", 0x00}, {"SOH", 0x01}, {"STX", 0x02}, {"ETX", 0x03},
	{"EOT", 0x04}, {"ENQ", 0x05}, {"ACK", 0x06}, {"BEL", 0x07},
	{"BS", 0x08}, {"HT", 0x09}, {"LF", 0x0a}, {"VT", 0x0b},
	{"FF", 0x0c}, {"CR", 0x0d}, {"SO", 0x0e}, {"SI", 0x0f},
	{"DLE", 0x10}, {"DC1", 0x11}, {"DC2", 0x12}, {"DC3", 0x13},
	{"DC4", 0x14}, {"NAK", 0x15}, {"SYN", 0x16}, {"ETB", 0x17},
	{"CAN", 0x18}, {"EM", 0x19}, {"SUB", 0x1a}, {"ESC", 0x1b},
	{"FS", 0x1c}, {"GS", 0x1d}, {"RS", 0x1e}, {"US", 0x1f},
	{"SP", 0x20}, {"DEL", 0x7f},
}

var (
	mnemonicCodes = make(map[string]rune, len(Mnemonics))
	mnemonicNames = make(map[rune]string, len(Mnemonics))
)

func init() {
	for _, m := range Mnemonics {
		mnemonicCodes[m.Name] = m.Code
		mnemonicNames[m.Code] = m.Name
	}
}

// lookupMnemonic matches the longest mnemonic at the front of in, so that
// SOH wins over SO.
func lookupMnemonic(in string) (code rune, n int, ok bool) {
	for n = 3; n >= 2; n-- {
		if len(in) < n {
			continue
		}
		if code, ok = mnemonicCodes[in[:n]]; ok {
			return code, n, true
		}
	}
	return 0, 0, false
}
