package encode

type encState struct {
	format Format
	indent int
	color  func(ColorAttr, string) string
}

type EncodeOption func(*encState)

func EncodeFormat(f Format) EncodeOption {
	return func(es *encState) { es.format = f }
}

// EncodeIndent sets the JSON indentation, 0 for compact output.
func EncodeIndent(n int) EncodeOption {
	return func(es *encState) { es.indent = n }
}

// EncodeColors colors JSON output.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *encState) { es.color = c.Color }
}
