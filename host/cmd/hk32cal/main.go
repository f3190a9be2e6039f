// hk32cal inspects a dump of the HK32F0301M factory info block. It
// parses an Intel HEX file, locates the four trim words, runs the same
// complement checks the on-target loader uses, and prints the decoded
// trim fields so a board's calibration can be verified before
// flashing.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/marcinbor85/gohex"

	"hk32hal/core"
)

var (
	hexPath = flag.String("hex", "", "Intel HEX dump of the info block")
	base    = flag.Uint64("base", 0, "address offset to add to the dump (0 if the dump uses absolute addresses)")
)

func main() {
	flag.Parse()

	if *hexPath == "" {
		fmt.Fprintln(os.Stderr, "usage: hk32cal -hex <dump.hex> [-base <offset>]")
		os.Exit(1)
	}

	f, err := os.Open(*hexPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: parse %s: %v\n", *hexPath, err)
		os.Exit(1)
	}

	fmt.Printf("Info block dump: %s\n\n", *hexPath)

	ok := true
	ok = reportHSI(mem) && ok
	ok = reportBGP(mem) && ok
	ok = reportLDO(mem) && ok
	ok = reportLPLDO(mem) && ok

	if !ok {
		os.Exit(1)
	}
}

// word reads the little-endian 32-bit word at the absolute address.
func word(mem *gohex.Memory, addr uintptr) (uint32, bool) {
	want := uint64(addr) - *base
	for _, seg := range mem.GetDataSegments() {
		start := uint64(seg.Address)
		if want < start || want+4 > start+uint64(len(seg.Data)) {
			continue
		}
		off := want - start
		return binary.LittleEndian.Uint32(seg.Data[off : off+4]), true
	}
	return 0, false
}

func reportHSI(mem *gohex.Memory) bool {
	w, found := word(mem, core.HSITrimAddr)
	if !found {
		fmt.Printf("HSI trim   @%#x: not present in dump\n", core.HSITrimAddr)
		return false
	}
	if !core.TrimWordValid(w) {
		fmt.Printf("HSI trim   @%#x: %08x  INVALID (loader will skip)\n", core.HSITrimAddr, w)
		return false
	}
	cal, trim := core.HSITrimFields(w)
	fmt.Printf("HSI trim   @%#x: %08x  ok  cal=%#02x trim=%#02x\n", core.HSITrimAddr, w, cal, trim)
	return true
}

func reportBGP(mem *gohex.Memory) bool {
	w, found := word(mem, core.BGPTrimAddr)
	if !found {
		fmt.Printf("BGP trim   @%#x: not present in dump\n", core.BGPTrimAddr)
		return false
	}
	if !core.TrimWordValid(w) {
		fmt.Printf("BGP trim   @%#x: %08x  INVALID (loader will skip)\n", core.BGPTrimAddr, w)
		return false
	}
	fmt.Printf("BGP trim   @%#x: %08x  ok  reg=%#04x\n", core.BGPTrimAddr, w, core.BGPTrimField(w))
	return true
}

func reportLDO(mem *gohex.Memory) bool {
	w, found := word(mem, core.LDOTrimAddr)
	if !found {
		fmt.Printf("LDO trim   @%#x: not present in dump\n", core.LDOTrimAddr)
		return false
	}
	if !core.TrimWordValid(w) {
		fmt.Printf("LDO trim   @%#x: %08x  INVALID (loader will skip)\n", core.LDOTrimAddr, w)
		return false
	}
	run, lpr := core.LDOTrimFields(w)
	fmt.Printf("LDO trim   @%#x: %08x  ok  run=%#02x lpr=%#02x\n", core.LDOTrimAddr, w, run, lpr)
	return true
}

func reportLPLDO(mem *gohex.Memory) bool {
	w, found := word(mem, core.LPLDOTrimAddr)
	if !found {
		fmt.Printf("LPLDO trim @%#x: not present in dump\n", core.LPLDOTrimAddr)
		return false
	}
	if !core.LPLDOWordValid(w) {
		fmt.Printf("LPLDO trim @%#x: %08x  INVALID (loader will skip)\n", core.LPLDOTrimAddr, w)
		return false
	}
	fmt.Printf("LPLDO trim @%#x: %08x  ok  lpr=%#02x\n", core.LPLDOTrimAddr, w, core.LPLDOTrimField(w))
	return true
}
