package rules

import (
	"regexp"
	"strings"

	"github.com/unelmacoin/greencoder/schema"
)

var (
	reRangeLen       = regexp.MustCompile(`for\s+\w+\s+in\s+range\s*\(\s*len\s*\(`)
	reListMembership = regexp.MustCompile(`(?m)\b(?:if|elif|while)\b[^\n]{0,120}?\bin\s*\[[^\]\n]{0,200}\]`)
	reGlobalStmt     = regexp.MustCompile(`(?m)^[ \t]*global\s+[A-Za-z_]\w*`)
	reReadlines      = regexp.MustCompile(`\.readlines\s*\(\s*\)`)
	reKeysMembership = regexp.MustCompile(`\bin\s+\w+\.keys\s*\(\s*\)`)
	reAugmentAssign  = regexp.MustCompile(`(?m)^[ \t]+\w+\s*\+=\s*[^\n=]`)

	// Submatches: lhs name, rhs name, first char of the appended operand.
	rePySelfAssign = regexp.MustCompile(`(?m)^[ \t]+([A-Za-z_]\w*)\s*=\s*([A-Za-z_]\w*)\s*\+\s*(\S)`)

	rePyLoopLine = regexp.MustCompile(`(?m)^[ \t]*(?:for|while)\s[^\n]*:[ \t]*$`)
)

// pyPrecededByLoop reports whether a loop header opens within the window
// of text before offset. Indentation-blind by design: raw-text matching
// cannot resolve Python block structure exactly.
func pyPrecededByLoop(text string, offset int) bool {
	const window = 300
	from := offset - window
	if from < 0 {
		from = 0
	}
	return rePyLoopLine.MatchString(text[from:offset])
}

// matchPySelfAssignConcat finds "x = x + operand" under a loop header.
// wantList selects list rebuilds (operand starts with '[') versus scalar
// concatenation; the two feed different rules with different fixes.
func matchPySelfAssignConcat(wantList bool) Matcher {
	return func(text string) []Occurrence {
		var occs []Occurrence
		for _, loc := range rePySelfAssign.FindAllStringSubmatchIndex(text, -1) {
			lhs := text[loc[2]:loc[3]]
			rhs := text[loc[4]:loc[5]]
			if lhs != rhs {
				continue
			}
			isList := text[loc[6]:loc[7]] == "["
			if isList != wantList {
				continue
			}
			start := loc[0]
			// Skip the leading indentation so the issue points at the name.
			for start < loc[2] && (text[start] == ' ' || text[start] == '\t') {
				start++
			}
			if pyPrecededByLoop(text, loc[0]) {
				occs = append(occs, Occurrence{Start: start, End: loc[1]})
			}
		}
		return occs
	}
}

// matchPyAugmentedConcatInLoop catches the += spelling of accumulation in
// a loop body. Numeric counters trip this too; that imprecision is the
// documented cost of raw-text matching.
func matchPyAugmentedConcatInLoop(text string) []Occurrence {
	var occs []Occurrence
	for _, loc := range reAugmentAssign.FindAllStringIndex(text, -1) {
		start := loc[0]
		for start < loc[1] && (text[start] == ' ' || text[start] == '\t') {
			start++
		}
		if pyPrecededByLoop(text, loc[0]) {
			occs = append(occs, Occurrence{Start: start, End: loc[1]})
		}
	}
	return occs
}

// matchPyNestedLoops walks lines tracking loop-header indentation. An
// inner loop is one whose indent is deeper than an enclosing loop header
// that has not been closed by a dedent.
func matchPyNestedLoops(text string) []Occurrence {
	type loopFrame struct{ indent int }
	var stack []loopFrame
	var occs []Occurrence

	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			offset += len(line)
			continue
		}
		indent := len(line) - len(trimmed)

		// Dedent closes any loop frames at or deeper than this line.
		for len(stack) > 0 && indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}

		if strings.HasPrefix(trimmed, "for ") || strings.HasPrefix(trimmed, "while ") {
			if len(stack) > 0 {
				start := offset + indent
				end := offset + len(strings.TrimRight(line, "\n"))
				occs = append(occs, Occurrence{Start: start, End: end})
			}
			stack = append(stack, loopFrame{indent: indent})
		}
		offset += len(line)
	}
	return occs
}

// PythonRules returns the ordered rule table for python.
func PythonRules() []Rule {
	return []Rule{
		{
			Code:     "PY_NESTED_LOOPS",
			Severity: schema.SeverityHigh,
			Message:  "Nested loops; quadratic iteration over the same data",
			Matchers: []Matcher{matchPyNestedLoops},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Replace the inner scan with a set or dict lookup",
					Explanation:     "Searching a collection inside another loop makes the block O(n*m). Build a set or dict once and probe it in O(1) per element.",
					CurrentCode:     snippet,
					OptimizedCode:   "wanted = {o.key for o in others}\nfor item in items:\n    if item.key in wanted:\n        handle(item)",
					EstimatedImpact: 70,
				}
			},
			EstimatedImpact: 70,
		},
		{
			Code:     "PY_LIST_MEMBERSHIP",
			Severity: schema.SeverityMedium,
			Message:  "Membership test against a list literal scans every element",
			Matchers: []Matcher{regexMatcher(reListMembership)},
			Suggest: func(snippet string) schema.Suggestion {
				optimized := strings.Replace(snippet, "[", "{", 1)
				if i := strings.LastIndex(optimized, "]"); i >= 0 {
					optimized = optimized[:i] + "}" + optimized[i+1:]
				}
				return schema.Suggestion{
					Message:         "Use a set literal for membership tests",
					Explanation:     "x in [a, b, c] compares against each element in turn. A set literal hashes once, and CPython builds constant set literals at compile time.",
					CurrentCode:     snippet,
					OptimizedCode:   optimized,
					EstimatedImpact: 40,
				}
			},
			EstimatedImpact: 40,
		},
		{
			Code:     "PY_RANGE_LEN_LOOP",
			Severity: schema.SeverityLow,
			Message:  "range(len(...)) loop; enumerate yields index and value directly",
			Matchers: []Matcher{regexMatcher(reRangeLen)},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Iterate with enumerate instead of range(len(...))",
					Explanation:     "Indexing back into the sequence on every iteration does redundant lookups and reads worse. enumerate hands you the index and the element together.",
					CurrentCode:     snippet,
					OptimizedCode:   "for i, item in enumerate(items):\n    print(f\"Item {i}: {item}\")",
					EstimatedImpact: 25,
				}
			},
			EstimatedImpact: 25,
		},
		{
			Code:     "PY_STRING_CONCAT_LOOP",
			Severity: schema.SeverityMedium,
			Message:  "String concatenation inside a loop reallocates on every iteration",
			Matchers: []Matcher{
				matchPySelfAssignConcat(false),
				matchPyAugmentedConcatInLoop,
			},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Collect parts and join once after the loop",
					Explanation:     "Python strings are immutable, so each concatenation copies the accumulated value. str.join over a list of parts is linear.",
					CurrentCode:     snippet,
					OptimizedCode:   "text = \"\".join(items)",
					EstimatedImpact: 50,
				}
			},
			EstimatedImpact: 50,
		},
		{
			Code:     "PY_LIST_CONCAT_LOOP",
			Severity: schema.SeverityMedium,
			Message:  "List rebuilt via + inside a loop; quadratic copying",
			Matchers: []Matcher{matchPySelfAssignConcat(true)},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Use append or a list comprehension",
					Explanation:     "result = result + [x] builds a fresh list every iteration. append mutates in place, and a comprehension expresses the whole transform at once.",
					CurrentCode:     snippet,
					OptimizedCode:   "result = [item.upper() for item in items]",
					EstimatedImpact: 50,
				}
			},
			EstimatedImpact: 50,
		},
		{
			Code:     "PY_GLOBAL_VAR",
			Severity: schema.SeverityMedium,
			Message:  "global statement; module-level mutable state",
			Matchers: []Matcher{regexMatcher(reGlobalStmt)},
			Suggest: func(snippet string) schema.Suggestion {
				name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(snippet), "global"))
				return schema.Suggestion{
					Message:         "Pass " + name + " explicitly or return the new value",
					Explanation:     "Mutating module state from inside a function pins the object for the process lifetime and makes the data flow invisible at call sites. Prefer parameters and return values.",
					CurrentCode:     snippet,
					OptimizedCode:   "def compute(value):\n    ...\n    return new_value",
					EstimatedImpact: 35,
				}
			},
			EstimatedImpact: 35,
		},
		{
			Code:     "PY_READLINES_ALL",
			Severity: schema.SeverityLow,
			Message:  "readlines loads the whole file into memory",
			Matchers: []Matcher{regexMatcher(reReadlines)},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Iterate over the file object instead",
					Explanation:     "readlines materializes every line up front. File objects are lazy iterators, so looping over them keeps memory flat regardless of file size.",
					CurrentCode:     snippet,
					OptimizedCode:   "for line in fh:\n    process(line)",
					EstimatedImpact: 30,
				}
			},
			EstimatedImpact: 30,
		},
		{
			Code:     "PY_DICT_KEYS_MEMBERSHIP",
			Severity: schema.SeverityLow,
			Message:  "Membership test against .keys(); the dict itself is the key view",
			Matchers: []Matcher{regexMatcher(reKeysMembership)},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Test membership on the dict directly",
					Explanation:     "k in d.keys() allocates a view object only to do what k in d already does.",
					CurrentCode:     snippet,
					OptimizedCode:   "if key in mapping:",
					EstimatedImpact: 15,
				}
			},
			EstimatedImpact: 15,
		},
	}
}

// PythonLibrary builds the Python pattern library.
func PythonLibrary() *Library {
	return NewLibrary("python", PythonRules())
}
