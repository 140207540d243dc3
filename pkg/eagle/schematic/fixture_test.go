package schematic

import (
	"fmt"
	"strings"
	"testing"
)

// demoSchematic has two libraries, a device set level attribute, device
// level attributes, one overridden part and one part excluded from the BOM.
const demoSchematic = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE eagle SYSTEM "eagle.dtd">
<eagle version="9.6.2">
<drawing>
<schematic xreflabel="%F%N/%S.%C%R" xrefpart="/%S.%C%R">
<libraries>
<library name="rcl">
<devicesets>
<deviceset name="R-EU_" prefix="R" uservalue="yes">
<gates>
<gate name="G$1" symbol="R-EU" x="0" y="0"/>
</gates>
<devices>
<device name="R0603" package="R0603">
<technologies>
<technology name="">
<attribute name="MANUFACTURER" value="Yageo"/>
<attribute name="MPN" value="RC0603"/>
</technology>
</technologies>
</device>
<device name="R0805" package="R0805">
<technologies>
<technology name="">
<attribute name="SUPPLIER" value="Mouser"/>
</technology>
</technologies>
</device>
</devices>
<attribute name="SUPPLIER" value="Farnell"/>
</deviceset>
<deviceset name="C-EU" prefix="C" uservalue="yes">
<devices>
<device name="C0603" package="C0603"/>
</devices>
</deviceset>
</devicesets>
</library>
<library name="frames">
<devicesets>
<deviceset name="A4L-LOC">
<devices>
<device name="">
<technologies>
<technology name="">
<attribute name="EXCLUDE_FROM_BOM" value="YES"/>
</technology>
</technologies>
</device>
</devices>
</deviceset>
</devicesets>
</library>
</libraries>
<parts>
<part name="R1" library="rcl" deviceset="R-EU_" device="R0603" value="10k"/>
<part name="R2" library="rcl" deviceset="R-EU_" device="R0603" value="1k">
<attribute name="MPN" value="CUSTOM-1K"/>
</part>
<part name="R3" library="rcl" deviceset="R-EU_" device="R0805" value="4k7"/>
<part name="C1" library="rcl" deviceset="C-EU" device="C0603" value="100n"/>
<part name="FRAME1" library="frames" deviceset="A4L-LOC" device=""/>
</parts>
<sheets>
<sheet>
<instances>
<instance part="FRAME1" gate="G$1" x="0" y="0"/>
<instance part="R1" gate="G$1" x="10" y="10"/>
<instance part="C1" gate="G$1" x="20" y="10"/>
</instances>
</sheet>
<sheet>
<instances>
<instance part="R3" gate="G$1" x="10" y="10"/>
<instance part="R2" gate="G$1" x="20" y="10"/>
<instance part="R1" gate="G$1" x="30" y="10"/>
</instances>
</sheet>
</sheets>
</schematic>
</drawing>
</eagle>
`

func mustParse(t *testing.T, input string) *Schematic {
	t.Helper()
	sch, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Failed to parse schematic: %v", err)
	}
	return sch
}

func mustPart(t *testing.T, sch *Schematic, name string) *Part {
	t.Helper()
	p := sch.Part(name)
	if p == nil {
		t.Fatalf("Part %s not found", name)
	}
	return p
}

func render(t *testing.T, sch *Schematic) string {
	t.Helper()
	var buf strings.Builder
	if _, err := sch.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	return buf.String()
}

// testPart describes one part of a generated single-library schematic.
type testPart struct {
	name, deviceset, device, value string
	attrs                          map[string]string
	sheets                         []int
}

// buildSchematic generates a schematic with one library "lib" holding every
// device set and device referenced by parts.
func buildSchematic(parts ...testPart) string {
	devices := map[string][]string{}
	var order []string
	for _, p := range parts {
		if _, ok := devices[p.deviceset]; !ok {
			order = append(order, p.deviceset)
		}
		found := false
		for _, d := range devices[p.deviceset] {
			if d == p.device {
				found = true
			}
		}
		if !found {
			devices[p.deviceset] = append(devices[p.deviceset], p.device)
		}
	}

	maxSheet := 0
	for _, p := range parts {
		for _, s := range p.sheets {
			if s > maxSheet {
				maxSheet = s
			}
		}
	}

	var b strings.Builder
	b.WriteString("<eagle><drawing><schematic><libraries><library name=\"lib\"><devicesets>\n")
	for _, ds := range order {
		fmt.Fprintf(&b, "<deviceset name=%q><devices>\n", ds)
		for _, d := range devices[ds] {
			fmt.Fprintf(&b, "<device name=%q/>\n", d)
		}
		b.WriteString("</devices></deviceset>\n")
	}
	b.WriteString("</devicesets></library></libraries><parts>\n")
	for _, p := range parts {
		fmt.Fprintf(&b, "<part name=%q library=\"lib\" deviceset=%q device=%q value=%q>", p.name, p.deviceset, p.device, p.value)
		for k, v := range p.attrs {
			fmt.Fprintf(&b, "<attribute name=%q value=%q/>", k, v)
		}
		b.WriteString("</part>\n")
	}
	b.WriteString("</parts><sheets>\n")
	for s := 1; s <= maxSheet; s++ {
		b.WriteString("<sheet><instances>")
		for _, p := range parts {
			for _, ps := range p.sheets {
				if ps == s {
					fmt.Fprintf(&b, "<instance part=%q gate=\"G$1\"/>", p.name)
				}
			}
		}
		b.WriteString("</instances></sheet>\n")
	}
	b.WriteString("</sheets></schematic></drawing></eagle>\n")
	return b.String()
}
