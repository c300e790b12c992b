package render

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/leapstack-labs/listkit/pkg/core"
)

// Built-in formatter names.
const (
	FormatDate     = "date"
	FormatDatetime = "datetime"
	FormatNumber   = "number"
	FormatInt      = "int"
	FormatMoney    = "money"
	FormatConstant = "constant"
	FormatJoin     = "join"
)

// Default patterns for the time formatters.
const (
	DatePattern     = "2006-01-02"
	DatetimePattern = "2006-01-02 15:04:05"
)

func init() {
	RegisterFormat(FormatDate, func(opts Options) ValueFunc {
		return timeFormat(opts, DatePattern)
	})
	RegisterFormat(FormatDatetime, func(opts Options) ValueFunc {
		return timeFormat(opts, DatetimePattern)
	})
	RegisterFormat(FormatNumber, numberFormat)
	RegisterFormat(FormatInt, intFormat)
	RegisterFormat(FormatMoney, moneyFormat)
	RegisterFormat(FormatConstant, constantFormat)
	RegisterFormat(FormatJoin, joinFormat)
}

// timeFormat renders timestamps with a layout pattern. Empty values render
// the configured default; unparseable values pass through unchanged.
func timeFormat(opts Options, defaultPattern string) ValueFunc {
	pattern := opts.String("pattern", defaultPattern)
	def := opts.String("default", "")
	return func(value any, _ core.Record) any {
		if !core.Useful(value) {
			return def
		}
		t, ok := parseTime(value)
		if !ok {
			return value
		}
		return t.Format(pattern)
	}
}

// numberFormat renders a fixed-point decimal with the given digit count.
func numberFormat(opts Options) ValueFunc {
	digits := opts.Int("digits", 2)
	return func(value any, _ core.Record) any {
		f, ok := toFloat(value)
		if !ok {
			return value
		}
		return strconv.FormatFloat(f, 'f', digits, 64)
	}
}

// intFormat parses an integer in the given radix and renders it in decimal.
func intFormat(opts Options) ValueFunc {
	radix := opts.Int("radix", 10)
	return func(value any, _ core.Record) any {
		switch v := value.(type) {
		case int:
			return strconv.Itoa(v)
		case int64:
			return strconv.FormatInt(v, 10)
		case float64:
			return strconv.FormatInt(int64(v), 10)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(Stringify(value)), radix, 64)
		if err != nil {
			return value
		}
		return strconv.FormatInt(n, 10)
	}
}

// moneyFormat renders a thousands-grouped two-decimal amount, optionally
// prefixed by a currency symbol. Empty values render the configured default.
func moneyFormat(opts Options) ValueFunc {
	symbol := opts.String("symbol", "")
	def := opts.String("default", "")
	printer := message.NewPrinter(language.English)
	return func(value any, _ core.Record) any {
		if !core.Useful(value) {
			return def
		}
		f, ok := toFloat(value)
		if !ok {
			return value
		}
		amount := printer.Sprintf("%v", number.Decimal(f,
			number.MinFractionDigits(2), number.MaxFractionDigits(2)))
		return symbol + amount
	}
}

// constantFormat maps a raw value to its descriptive name through the
// configured enum lookup. No lookup, or a miss, passes the value through.
func constantFormat(opts Options) ValueFunc {
	origin, _ := opts.Value("origin").(core.Enum)
	return func(value any, _ core.Record) any {
		if origin == nil {
			return value
		}
		c, ok := origin.ValueOf(value)
		if !ok {
			return value
		}
		return c.Name
	}
}

// joinFormat concatenates the column's own value with values read from
// other named fields on the same record, separated by sep. A named
// sub-format (anything but join itself) applies to each joined value.
func joinFormat(opts Options) ValueFunc {
	with := opts.Strings("with")
	sep := opts.String("sep", ",")
	subName := opts.String("format", "")

	var sub ValueFunc
	if subName != "" && subName != FormatJoin {
		subOpts, _ := opts.Value("formatOptions").(Options)
		if m, ok := opts.Value("formatOptions").(map[string]any); ok {
			subOpts = Options(m)
		}
		sub = BuildFormat(&FormatSpec{Name: subName, Options: subOpts})
	}

	return func(value any, rec core.Record) any {
		parts := make([]string, 0, 1+len(with))
		appendPart := func(v any) {
			if !core.Useful(v) {
				return
			}
			if sub != nil {
				v = sub(v, rec)
			}
			parts = append(parts, Stringify(v))
		}
		appendPart(value)
		for _, key := range with {
			appendPart(rec[key])
		}
		return strings.Join(parts, sep)
	}
}

// parseTime accepts time.Time values, unix timestamps (seconds, or
// milliseconds for magnitudes past the year-33658 mark), and the common
// string layouts.
func parseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case int, int64, float64:
		f, _ := toFloat(v)
		return fromEpoch(int64(f)), true
	case string:
		for _, layout := range []string{time.RFC3339, DatetimePattern, DatePattern} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return fromEpoch(n), true
		}
	}
	return time.Time{}, false
}

func fromEpoch(n int64) time.Time {
	if n > 1e12 {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	f, err := strconv.ParseFloat(Stringify(v), 64)
	return f, err == nil
}
