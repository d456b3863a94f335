package quill

import "fmt"

// TableSpan locates one of the trailing metadata tables.
type TableSpan struct {
	Offset int `json:"offset"`
	Length int `json:"length"`

	// Complete is true when the whole table lies within the file.
	Complete bool `json:"complete"`
}

// End returns the offset just past the table.
func (s TableSpan) End() int {
	return s.Offset + s.Length
}

// Tables describes the paragraph, free-space and layout tables that follow the text.
// Their contents are not interpreted; only their extents are tracked.
type Tables struct {
	Paragraph TableSpan `json:"paragraph"`
	FreeSpace TableSpan `json:"freeSpace"`
	Layout    TableSpan `json:"layout"`

	// Trailing is the number of bytes after the layout table.
	Trailing int `json:"trailing"`

	// Warnings notes tables that are missing or cut short. They never fail a decode.
	Warnings []string `json:"warnings,omitempty"`
}

// locateTables computes table spans from the header. size is the file length.
func locateTables(hdr Header, size int) Tables {
	var tables Tables

	offset := int(hdr.TextLength)
	spans := []struct {
		name   string
		length uint16
		span   *TableSpan
	}{
		{"paragraph", hdr.ParagraphTableLength, &tables.Paragraph},
		{"free space", hdr.FreeSpaceLength, &tables.FreeSpace},
		{"layout", hdr.LayoutTableLength, &tables.Layout},
	}

	for _, s := range spans {
		*s.span = TableSpan{
			Offset:   offset,
			Length:   int(s.length),
			Complete: offset+int(s.length) <= size,
		}
		if !s.span.Complete {
			have := max(size-offset, 0)
			tables.Warnings = append(tables.Warnings,
				fmt.Sprintf("%s table at offset %d needs %d bytes, file has %d", s.name, offset, s.length, have))
		}
		offset += int(s.length)
	}

	if offset < size {
		tables.Trailing = size - offset
	}

	return tables
}
