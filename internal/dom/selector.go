package dom

import "strings"

// ClassSelector is a selector rebuilt from a class attribute discovered on
// the page, used to re-select the same visual pattern elsewhere. Zero classes
// yield an empty selector that matches nothing instead of failing.
type ClassSelector struct {
	classes []string
}

// ClassSelectorFrom splits a raw class attribute into a selector. Whitespace
// and duplicate entries are tolerated.
func ClassSelectorFrom(classAttr string) ClassSelector {
	fields := strings.Fields(classAttr)
	classes := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		classes = append(classes, f)
	}
	return ClassSelector{classes: classes}
}

// Empty reports whether the selector was built from zero classes.
func (s ClassSelector) Empty() bool {
	return len(s.classes) == 0
}

// String renders the composed class selector, e.g. ".card.wide", or "" when
// empty.
func (s ClassSelector) String() string {
	if len(s.classes) == 0 {
		return ""
	}
	return "." + strings.Join(s.classes, ".")
}
