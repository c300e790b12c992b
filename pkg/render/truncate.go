package render

import (
	"strings"

	"github.com/leapstack-labs/listkit/pkg/core"
)

// Built-in truncation names.
const (
	TruncateDefaultName = "default"
	TruncateSplit       = "split"
)

func init() {
	RegisterTruncate(TruncateDefaultName, defaultTruncate)
	RegisterTruncate(TruncateSplit, splitTruncate)
}

// defaultTruncate shows the previous stage's output inside a
// hover-revealed full-text affordance: the full value rides along in
// Node.Full for the widget to disclose.
func defaultTruncate(_ Options, prev Func) Func {
	return func(value any, rec core.Record, index int) core.Node {
		n := prev(value, rec, index)
		if n.Full == "" {
			n.Full = n.Text
		}
		return n
	}
}

// splitTruncate splits the rendered value by a delimiter and shows a single
// segment; the untruncated value stays available on hover. Non-string
// values go through their string image.
//
// Options: by (delimiter, default ","), showIndex ("start", "end", or a
// numeric index; default "start").
func splitTruncate(opts Options, prev Func) Func {
	by := opts.String("by", ",")
	show := "start"
	if s, ok := opts.Value("showIndex").(string); ok {
		show = s
	} else if opts.Has("showIndex") {
		show = ""
	}
	idx := opts.Int("showIndex", 0)

	return func(value any, rec core.Record, index int) core.Node {
		n := prev(value, rec, index)
		full := n.Text
		parts := strings.Split(full, by)

		pick := 0
		switch show {
		case "start":
			pick = 0
		case "end":
			pick = len(parts) - 1
		default:
			pick = idx
		}
		if pick < 0 || pick >= len(parts) {
			pick = 0
		}

		n.Text = parts[pick]
		if n.Full == "" {
			n.Full = full
		}
		return n
	}
}
