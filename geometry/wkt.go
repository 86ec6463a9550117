package geometry

import "strings"

// WKT projects g to text: the upper-cased type tag, a space and the
// parenthesised coordinates, e.g. "LINESTRING (10 20, 30 40)". Shapes with
// no parts keep their brackets: "MULTIPOINT ()". A nil geometry projects to "".
func WKT(g Geometry) string {
	if g == nil {
		return ""
	}

	t := g.Type()
	n := g.tree()

	var b strings.Builder
	b.WriteString(strings.ToUpper(string(t)))
	b.WriteByte(' ')

	// Point-rooted shapes parenthesise every position; everything else
	// parenthesises lists of positions instead.
	writeText(&b, n, t == TypePoint || t == TypeMultiPoint)
	return b.String()
}

func writeText(b *strings.Builder, n node, wrapPositions bool) {
	if n.leaf {
		if wrapPositions {
			b.WriteByte('(')
		}
		n.pos.writeText(b)
		if wrapPositions {
			b.WriteByte(')')
		}
		return
	}

	b.WriteByte('(')
	for i, c := range n.children {
		if i > 0 {
			b.WriteString(", ")
		}
		writeText(b, c, wrapPositions)
	}
	b.WriteByte(')')
}
