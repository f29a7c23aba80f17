package parser

// Block is the row span owned by one header row.
type Block struct {
	// Ordinal is the 1-based position of the header within the sheet.
	Ordinal int
	// HeaderRow is the 0-based header row.
	HeaderRow int
	// Start is the first candidate ingredient row.
	Start int
	// End is the next header row, or the matrix length for the last block.
	End int
}

// Segment turns ordered header rows into contiguous, non-overlapping blocks.
func Segment(headerRows []int, rows int) []Block {
	blocks := make([]Block, 0, len(headerRows))
	for i, h := range headerRows {
		end := rows
		if i+1 < len(headerRows) {
			end = headerRows[i+1]
		}
		blocks = append(blocks, Block{
			Ordinal:   i + 1,
			HeaderRow: h,
			Start:     h + 1,
			End:       end,
		})
	}
	return blocks
}
