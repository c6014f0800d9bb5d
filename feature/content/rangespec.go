package content

import (
	"regexp"

	"devserve/core/utils"
)

var rangePattern = regexp.MustCompile(`(\d*)-(\d*)`)

// Range is a single byte range taken from a Range request header.
// End is 0 when the client left it open.
type Range struct {
	Start   int
	End     int
	Present bool
}

// NoRange is the value used when no range was requested.
var NoRange = Range{}

// ParseRange parses a "bytes=<start>-<end>" header value leniently.
// Empty, non-numeric or overflowing sides become 0 and only the first range
// of a multi-range value is used. A header without any "<start>-<end>" pair
// yields NoRange.
func ParseRange(header string) Range {
	if header == "" {
		return NoRange
	}

	m := rangePattern.FindStringSubmatch(header)
	if m == nil {
		return NoRange
	}
	return Range{
		Start:   utils.ToInt(m[1]),
		End:     utils.ToInt(m[2]),
		Present: true,
	}
}

// Bounds returns the start offset and the advertised end offset for a body
// of the given length. An open end means the last byte; the end never
// exceeds the last byte.
func (r Range) Bounds(length int) (start, end int) {
	maxEnd := length - 1
	end = r.End
	if end == 0 {
		end = maxEnd
	}
	if end > maxEnd {
		end = maxEnd
	}
	return r.Start, end
}

// Slice returns the body for the range. The slice stops before the advertised
// end offset, so the body is one byte shorter than Content-Range announces.
func (r Range) Slice(content []byte) []byte {
	start, end := r.Bounds(len(content))
	hi := clamp(end, 0, len(content))
	lo := clamp(start, 0, hi)
	return content[lo:hi]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
