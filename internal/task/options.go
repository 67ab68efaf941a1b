package task

// Options are the interval choices offered by the editor, in display order.
// The last one is the custom day count.
var Options = []string{
	"once",
	"every day",
	"every week",
	"every month",
	"every year",
	"every … days",
}

// CustomOption is the index of the day-count choice in Options.
var CustomOption = len(Options) - 1

var optionIntervals = []Interval{Once, Daily, Weekly, Monthly, Yearly}

// SelectedOption returns the Options index to pre-select for iv. A label
// matches when it equals the bare tag or "every <tag>"; anything else,
// including every day count, selects the custom option.
func SelectedOption(iv Interval) int {
	tag, ok := iv.Tag()
	if !ok {
		return CustomOption
	}
	for i, label := range Options[:CustomOption] {
		if label == tag || label == "every "+tag {
			return i
		}
	}
	return CustomOption
}

// OptionInterval returns the fixed interval behind option i. The custom
// option has no fixed interval and reports false.
func OptionInterval(i int) (Interval, bool) {
	if i < 0 || i >= len(optionIntervals) {
		return Interval{}, false
	}
	return optionIntervals[i], true
}
