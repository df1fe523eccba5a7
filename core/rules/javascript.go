package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/unelmacoin/greencoder/schema"
)

// JavaScript rule regexes. Bounded gaps ({0,N}) stand in for the nested
// quantifiers the PERF_REGEX_BACKTRACKING rule itself warns about.
var (
	// Sequential awaited fetches come in at least three textual shapes:
	// paired declarations, bare await pairs, and .then chains.
	reSeqFetchDecls = regexp.MustCompile(`(?s)(?:const|let|var)\s+\w+\s*=\s*await\s+fetch\s*\([^)]{0,200}\)\s*;[^;]{0,80}?(?:const|let|var)\s+\w+\s*=\s*await\s+fetch\s*\(`)
	reSeqFetchBare  = regexp.MustCompile(`(?s)await\s+fetch\s*\([^)]{0,200}\)[^()]{0,120}?await\s+fetch\s*\(`)
	reSeqFetchThen  = regexp.MustCompile(`(?s)fetch\s*\([^)]{0,200}\)\s*\.then\s*\([\s\S]{0,160}?fetch\s*\(`)

	reAwaitInLoop   = regexp.MustCompile(`(?s)for\s*\([^)]{0,200}\)\s*\{[^{}]{0,300}?\bawait\b`)
	reAwaitInWhile  = regexp.MustCompile(`(?s)while\s*\([^)]{0,200}\)\s*\{[^{}]{0,300}?\bawait\b`)
	reNestedForFor  = regexp.MustCompile(`(?s)for\s*\([^)]{0,200}\)\s*\{[^{}]{0,400}?for\s*\(`)
	reNestedWhile   = regexp.MustCompile(`(?s)while\s*\([^)]{0,200}\)\s*\{[^{}]{0,400}?(?:for|while)\s*\(`)
	reNestedForEach = regexp.MustCompile(`(?s)\.forEach\s*\(\s*(?:\([^)]{0,60}\)|\w+)\s*=>\s*\{[^{}]{0,300}?\.forEach\s*\(`)

	reConcatInLoop = regexp.MustCompile(`(?s)(?:for|while)\s*\([^)]{0,200}\)\s*\{[^{}]{0,300}?\w+\s*\+=\s*` + "[`'\"]")
	reDOMInLoop    = regexp.MustCompile(`(?s)(?:for|while)\s*\([^)]{0,200}\)\s*\{[^{}]{0,300}?document\.(?:querySelector(?:All)?|getElementById|getElementsByClassName)\s*\(`)
	reSpreadInLoop = regexp.MustCompile(`(?s)(?:for|while)\s*\([^)]{0,200}\)\s*\{[^{}]{0,300}?\w+\s*=\s*\[\s*\.\.\.`)

	reDeepClone  = regexp.MustCompile(`JSON\.parse\s*\(\s*JSON\.stringify\s*\(`)
	reSyncIO     = regexp.MustCompile(`\b(?:readFileSync|writeFileSync|appendFileSync|readdirSync|execSync)\s*\(`)
	reRiskyRegex = regexp.MustCompile(`\((?:[^()\\]|\\.){0,80}[+*]\)\s*[+*]`)
	reVarDecl    = regexp.MustCompile(`\bvar\s+[A-Za-z_$][\w$]*`)

	reSetInterval = regexp.MustCompile(`\bsetInterval\s*\(`)
	reAddListener = regexp.MustCompile(`\baddEventListener\s*\(`)
	reSelfAssign  = regexp.MustCompile(`([A-Za-z_$][\w$]*)\s*=\s*([A-Za-z_$][\w$]*)\s*\+`)
	reLoopHead    = regexp.MustCompile(`\b(?:for|while)\s*\(`)
)

// matchMissingCounterpart flags every occurrence of re when counterpart
// never appears in the text. Used for acquire-without-release shapes such
// as setInterval with no clearInterval.
func matchMissingCounterpart(re *regexp.Regexp, counterpart string) Matcher {
	return func(text string) []Occurrence {
		if strings.Contains(text, counterpart) {
			return nil
		}
		return regexMatcher(re)(text)
	}
}

// matchSelfAssignConcatNearLoop finds "x = x + ..." where both identifiers
// are the same name and a loop header opens within the preceding window.
// Name equality needs a submatch comparison, which RE2 backreferences
// cannot express, hence the function matcher.
func matchSelfAssignConcatNearLoop(text string) []Occurrence {
	const window = 300
	var occs []Occurrence
	for _, loc := range reSelfAssign.FindAllStringSubmatchIndex(text, -1) {
		lhs := text[loc[2]:loc[3]]
		rhs := text[loc[4]:loc[5]]
		if lhs != rhs {
			continue
		}
		from := loc[0] - window
		if from < 0 {
			from = 0
		}
		if reLoopHead.MatchString(text[from:loc[0]]) {
			occs = append(occs, Occurrence{Start: loc[0], End: loc[1]})
		}
	}
	return occs
}

// JavaScriptRules returns the ordered rule table shared by javascript and
// its react alias. TypeScript layers its own additions on top.
func JavaScriptRules() []Rule {
	return []Rule{
		{
			Code:     "PERFORMANCE_SEQUENTIAL_FETCH",
			Severity: schema.SeverityHigh,
			Message:  "Sequential awaited fetch calls; independent requests should run concurrently",
			Matchers: []Matcher{
				regexMatcher(reSeqFetchDecls),
				regexMatcher(reSeqFetchBare),
				regexMatcher(reSeqFetchThen),
			},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Run independent fetches concurrently with Promise.all",
					Explanation:     "Each awaited fetch blocks until the previous response arrives, so total latency is the sum of all round trips. Promise.all overlaps the requests and cuts both wall time and energy spent waiting.",
					CurrentCode:     snippet,
					OptimizedCode:   "const [a, b] = await Promise.all([fetch(urlA), fetch(urlB)]);",
					EstimatedImpact: 85,
				}
			},
			EstimatedImpact: 85,
		},
		{
			Code:     "PERF_AWAIT_IN_LOOP",
			Severity: schema.SeverityHigh,
			Message:  "await inside a loop serializes async work",
			Matchers: []Matcher{
				regexMatcher(reAwaitInLoop),
				regexMatcher(reAwaitInWhile),
			},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Collect promises in the loop and await them together",
					Explanation:     "Awaiting inside the loop body turns N independent operations into a serial chain. Push the promises into an array and await Promise.all once after the loop.",
					CurrentCode:     snippet,
					OptimizedCode:   "const results = await Promise.all(items.map((item) => process(item)));",
					EstimatedImpact: 75,
				}
			},
			EstimatedImpact: 75,
		},
		{
			Code:     "PERF_NESTED_LOOPS",
			Severity: schema.SeverityMedium,
			Message:  "Nested loops; quadratic iteration over the same data",
			Matchers: []Matcher{
				regexMatcher(reNestedForFor),
				regexMatcher(reNestedWhile),
				regexMatcher(reNestedForEach),
			},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Replace the inner scan with a Map or Set lookup",
					Explanation:     "An inner loop that searches a collection makes the whole block O(n*m). Building a Map or Set once reduces each inner probe to O(1).",
					CurrentCode:     snippet,
					OptimizedCode:   "const byID = new Map(others.map((o) => [o.id, o]));\nfor (const item of items) { const match = byID.get(item.id); }",
					EstimatedImpact: 60,
				}
			},
			EstimatedImpact: 60,
		},
		{
			Code:     "PERF_STRING_CONCAT_LOOP",
			Severity: schema.SeverityMedium,
			Message:  "String concatenation inside a loop reallocates on every iteration",
			Matchers: []Matcher{
				regexMatcher(reConcatInLoop),
				matchSelfAssignConcatNearLoop,
			},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Accumulate parts in an array and join once",
					Explanation:     "Strings are immutable, so each += copies the whole accumulated value. Pushing to an array and joining after the loop is linear.",
					CurrentCode:     snippet,
					OptimizedCode:   "const parts = [];\nfor (const item of items) { parts.push(item); }\nconst text = parts.join(\"\");",
					EstimatedImpact: 55,
				}
			},
			EstimatedImpact: 55,
		},
		{
			Code:     "PERF_DOM_QUERY_LOOP",
			Severity: schema.SeverityMedium,
			Message:  "DOM query inside a loop; each call re-walks the document",
			Matchers: []Matcher{regexMatcher(reDOMInLoop)},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Hoist the DOM query out of the loop",
					Explanation:     "querySelector and friends traverse the DOM on every invocation. Resolve the element once before the loop and reuse the reference.",
					CurrentCode:     snippet,
					OptimizedCode:   "const el = document.querySelector(sel);\nfor (const item of items) { render(el, item); }",
					EstimatedImpact: 50,
				}
			},
			EstimatedImpact: 50,
		},
		{
			Code:     "PERF_ARRAY_SPREAD_LOOP",
			Severity: schema.SeverityMedium,
			Message:  "Array rebuilt via spread inside a loop; quadratic copying",
			Matchers: []Matcher{regexMatcher(reSpreadInLoop)},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Append with push instead of re-spreading",
					Explanation:     "acc = [...acc, x] copies the whole accumulator on every iteration. push mutates in place and keeps the loop linear.",
					CurrentCode:     snippet,
					OptimizedCode:   "for (const item of items) { acc.push(transform(item)); }",
					EstimatedImpact: 55,
				}
			},
			EstimatedImpact: 55,
		},
		{
			Code:     "PERF_JSON_DEEP_CLONE",
			Severity: schema.SeverityLow,
			Message:  "JSON round-trip used as a deep clone",
			Matchers: []Matcher{regexMatcher(reDeepClone)},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Use structuredClone for deep copies",
					Explanation:     "Serializing to a string and parsing it back allocates twice and silently drops Dates, Maps, and undefined fields. structuredClone is faster and lossless for supported types.",
					CurrentCode:     snippet,
					OptimizedCode:   "const copy = structuredClone(original);",
					EstimatedImpact: 30,
				}
			},
			EstimatedImpact: 30,
		},
		{
			Code:     "PERF_BLOCKING_SYNC_IO",
			Severity: schema.SeverityMedium,
			Message:  "Synchronous filesystem or process call blocks the event loop",
			Matchers: []Matcher{regexMatcher(reSyncIO)},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Use the promise-based fs API",
					Explanation:     "Sync I/O stalls every pending task on the event loop while the kernel works. The fs/promises variants yield the thread for the duration of the call.",
					CurrentCode:     snippet,
					OptimizedCode:   "const data = await fs.promises.readFile(path, \"utf8\");",
					EstimatedImpact: 50,
				}
			},
			EstimatedImpact: 50,
		},
		{
			Code:     "PERF_REGEX_BACKTRACKING",
			Severity: schema.SeverityMedium,
			Message:  "Regex with nested quantifiers risks catastrophic backtracking",
			Matchers: []Matcher{regexMatcher(reRiskyRegex)},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Bound the repetition or restructure the pattern",
					Explanation:     "A quantified group followed by another quantifier, like (a+)+, can force the engine to try exponentially many split points on non-matching input. Use explicit bounds or a possessive rewrite.",
					CurrentCode:     snippet,
					OptimizedCode:   "/^[a-z]{1,64}$/",
					EstimatedImpact: 45,
				}
			},
			EstimatedImpact: 45,
		},
		{
			Code:     "MEMORY_GLOBAL_VAR",
			Severity: schema.SeverityMedium,
			Message:  "var declaration leaks scope; prefer let or const",
			Matchers: []Matcher{regexMatcher(reVarDecl)},
			Suggest: func(snippet string) schema.Suggestion {
				name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(snippet), "var"))
				return schema.Suggestion{
					Message:         fmt.Sprintf("Declare %s with let or const", name),
					Explanation:     "var is function-scoped and hoisted, which keeps values reachable longer than intended and invites accidental globals. Block-scoped let/const let the engine reclaim memory sooner.",
					CurrentCode:     snippet,
					OptimizedCode:   fmt.Sprintf("let %s = ...", name),
					EstimatedImpact: 35,
				}
			},
			EstimatedImpact: 35,
		},
		{
			Code:     "MEMORY_TIMER_NO_CLEAR",
			Severity: schema.SeverityMedium,
			Message:  "setInterval with no matching clearInterval in this file",
			Matchers: []Matcher{matchMissingCounterpart(reSetInterval, "clearInterval")},
			Suggest: func(snippet string) schema.Suggestion {
				return schema.Suggestion{
					Message:         "Keep the interval handle and clear it on teardown",
					Explanation:     "An uncleared interval keeps its callback and closure alive for the life of the page, burning CPU on every tick. Store the handle and clearInterval when the work is done.",
					CurrentCode:     snippet,
					OptimizedCode:   "const timer = setInterval(tick, 1000);\n// later\nclearInterval(timer);",
					EstimatedImpact: 50,
				}
			},
			EstimatedImpact: 50,
		},
		{
			Code:     "MEMORY_LISTENER_NO_REMOVE",
			Severity: schema.SeverityLow,
			Message:  "addEventListener with no matching removeEventListener in this file",
			Matchers: []Matcher{matchMissingCounterpart(reAddListener, "removeEventListener")},
			// Flag-only: whether removal is needed depends on the element's
			// lifetime, which raw text cannot determine.
			EstimatedImpact: 25,
		},
	}
}

// JavaScriptLibrary builds the shared JS/JSX pattern library.
func JavaScriptLibrary() *Library {
	return NewLibrary("javascript", JavaScriptRules())
}
