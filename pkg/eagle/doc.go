// Package eagle holds the XML plumbing shared by the EAGLE schematic and board
// packages.
//
// # Documents
//
// EAGLE .sch and .brd files are XML documents rooted at <eagle>. They are kept
// as an etree document for the whole editing session, so that saving writes
// back exactly what was read plus the edits made through this module. Nodes
// that were not edited are serialised unchanged.
//
// # Attributes
//
// Every library device, device set, schematic part and board element can carry
// <attribute name="..." value="..."/> children. ExtractAttributes flattens these
// into an Attributes map; Overlay composes several maps with later layers
// winning, which is how the device set → device → part precedence is resolved.
//
// SetAttributeNode and RemoveAttributeNodes edit the attribute children of a
// node in place. They reuse existing nodes where possible so that a save
// produces the smallest diff against the original file.
//
// # Errors
//
// Load failures are reported as *LoadError wrapping one of the sentinel errors
// (ErrMalformedDocument, ErrDanglingReference, ErrDuplicateName). Use errors.Is
// to classify them.
package eagle
