package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findRule fetches a rule by code for direct matcher testing.
func findRule(t *testing.T, lib *Library, code string) *Rule {
	t.Helper()
	ruleSet := lib.Rules()
	for i := range ruleSet {
		if ruleSet[i].Code == code {
			return &ruleSet[i]
		}
	}
	t.Fatalf("rule %s not found in %s library", code, lib.Name())
	return nil
}

// TestJavaScriptRuleMatching exercises each JS rule against positive and
// negative snippets.
func TestJavaScriptRuleMatching(t *testing.T) {
	lib := JavaScriptLibrary()

	tests := []struct {
		name    string
		code    string
		text    string
		matches int
	}{
		{
			name:    "sequential fetch declarations",
			code:    "PERFORMANCE_SEQUENTIAL_FETCH",
			text:    "const a = await fetch(urlA);\nconst b = await fetch(urlB);\n",
			matches: 1,
		},
		{
			name:    "sequential bare awaits",
			code:    "PERFORMANCE_SEQUENTIAL_FETCH",
			text:    "await fetch(u1);\nawait fetch(u2);\n",
			matches: 1,
		},
		{
			name:    "sequential then chain",
			code:    "PERFORMANCE_SEQUENTIAL_FETCH",
			text:    "fetch(u1).then((r) => fetch(u2));\n",
			matches: 1,
		},
		{
			name:    "single fetch is fine",
			code:    "PERFORMANCE_SEQUENTIAL_FETCH",
			text:    "const a = await fetch(urlA);\n",
			matches: 0,
		},
		{
			name:    "concurrent fetches are fine",
			code:    "PERFORMANCE_SEQUENTIAL_FETCH",
			text:    "const [a, b] = await Promise.all([fetch(u1), fetch(u2)]);\n",
			matches: 0,
		},
		{
			name:    "await in for loop",
			code:    "PERF_AWAIT_IN_LOOP",
			text:    "for (const item of items) {\n  await save(item);\n}\n",
			matches: 1,
		},
		{
			name:    "await in while loop",
			code:    "PERF_AWAIT_IN_LOOP",
			text:    "while (queue.length) {\n  await drain(queue.pop());\n}\n",
			matches: 1,
		},
		{
			name:    "await outside loop is fine",
			code:    "PERF_AWAIT_IN_LOOP",
			text:    "const data = await load();\nfor (const d of data) { use(d); }\n",
			matches: 0,
		},
		{
			name:    "nested for loops",
			code:    "PERF_NESTED_LOOPS",
			text:    "for (const a of xs) {\n  for (const b of ys) { pair(a, b); }\n}\n",
			matches: 1,
		},
		{
			name:    "nested forEach",
			code:    "PERF_NESTED_LOOPS",
			text:    "xs.forEach((a) => {\n  ys.forEach((b) => pair(a, b));\n});\n",
			matches: 1,
		},
		{
			name:    "string concat with +=",
			code:    "PERF_STRING_CONCAT_LOOP",
			text:    "for (let i = 0; i < n; i++) {\n  html += \"<li>\";\n}\n",
			matches: 1,
		},
		{
			name:    "string concat via self assignment",
			code:    "PERF_STRING_CONCAT_LOOP",
			text:    "for (const part of parts) {\n  out = out + part;\n}\n",
			matches: 1,
		},
		{
			name:    "self assignment without loop is fine",
			code:    "PERF_STRING_CONCAT_LOOP",
			text:    "out = out + suffix;\n",
			matches: 0,
		},
		{
			name:    "dom query in loop",
			code:    "PERF_DOM_QUERY_LOOP",
			text:    "for (const row of rows) {\n  document.querySelector(\"#list\").append(row);\n}\n",
			matches: 1,
		},
		{
			name:    "array spread in loop",
			code:    "PERF_ARRAY_SPREAD_LOOP",
			text:    "for (const x of xs) {\n  acc = [...acc, x];\n}\n",
			matches: 1,
		},
		{
			name:    "json deep clone",
			code:    "PERF_JSON_DEEP_CLONE",
			text:    "const copy = JSON.parse(JSON.stringify(original));\n",
			matches: 1,
		},
		{
			name:    "sync filesystem call",
			code:    "PERF_BLOCKING_SYNC_IO",
			text:    "const data = readFileSync(path, \"utf8\");\n",
			matches: 1,
		},
		{
			name:    "nested quantifier regex",
			code:    "PERF_REGEX_BACKTRACKING",
			text:    "const re = /(a+)+$/;\n",
			matches: 1,
		},
		{
			name:    "var declaration",
			code:    "MEMORY_GLOBAL_VAR",
			text:    "var counter = 0;\n",
			matches: 1,
		},
		{
			name:    "var inside identifier is fine",
			code:    "MEMORY_GLOBAL_VAR",
			text:    "const invariant = check();\n",
			matches: 0,
		},
		{
			name:    "interval never cleared",
			code:    "MEMORY_TIMER_NO_CLEAR",
			text:    "setInterval(tick, 1000);\n",
			matches: 1,
		},
		{
			name:    "interval cleared elsewhere in file",
			code:    "MEMORY_TIMER_NO_CLEAR",
			text:    "const h = setInterval(tick, 1000);\nclearInterval(h);\n",
			matches: 0,
		},
		{
			name:    "listener never removed",
			code:    "MEMORY_LISTENER_NO_REMOVE",
			text:    "el.addEventListener(\"click\", onClick);\n",
			matches: 1,
		},
		{
			name:    "listener removed elsewhere in file",
			code:    "MEMORY_LISTENER_NO_REMOVE",
			text:    "el.addEventListener(\"click\", onClick);\nel.removeEventListener(\"click\", onClick);\n",
			matches: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := findRule(t, lib, tt.code)
			assert.Len(t, rule.Match(tt.text), tt.matches)
		})
	}
}

// TestMatchSelfAssignConcatNearLoop pins the name-equality requirement
// the regex table cannot express.
func TestMatchSelfAssignConcatNearLoop(t *testing.T) {
	t.Run("different identifiers are fine", func(t *testing.T) {
		text := "for (const p of parts) {\n  out = base + p;\n}\n"
		assert.Empty(t, matchSelfAssignConcatNearLoop(text))
	})

	t.Run("same identifier under loop matches", func(t *testing.T) {
		text := "for (const p of parts) {\n  out = out + p;\n}\n"
		occs := matchSelfAssignConcatNearLoop(text)
		require.Len(t, occs, 1)
		assert.Equal(t, "out = out +", text[occs[0].Start:occs[0].End])
	})
}

// TestJavaScriptSuggestions spot-checks suggestion construction.
func TestJavaScriptSuggestions(t *testing.T) {
	lib := JavaScriptLibrary()

	t.Run("var suggestion names the variable", func(t *testing.T) {
		rule := findRule(t, lib, "MEMORY_GLOBAL_VAR")
		require.NotNil(t, rule.Suggest)
		s := rule.Suggest("var total")
		assert.Contains(t, s.Message, "total")
		assert.Contains(t, s.OptimizedCode, "let total")
	})

	t.Run("sequential fetch proposes Promise.all", func(t *testing.T) {
		rule := findRule(t, lib, "PERFORMANCE_SEQUENTIAL_FETCH")
		require.NotNil(t, rule.Suggest)
		s := rule.Suggest("await fetch(a); await fetch(b);")
		assert.Contains(t, s.OptimizedCode, "Promise.all")
		assert.Equal(t, "await fetch(a); await fetch(b);", s.CurrentCode)
	})

	t.Run("listener rule is flag-only", func(t *testing.T) {
		rule := findRule(t, lib, "MEMORY_LISTENER_NO_REMOVE")
		assert.Nil(t, rule.Suggest)
	})
}
