package techniques

// example is one worked input/output pair in a static bank. Banks are fixed at
// compile time; techniques never load examples from anywhere else.
type example struct {
	Input  string
	Output string
}

var domainExamples = map[string][]example{
	DomainMathematical: {
		{
			Input: "Solve 2x + 6 = 14",
			Output: "Subtract 6 from both sides: 2x = 8. Divide both sides by 2: x = 4. " +
				"Check: 2(4) + 6 = 14. Correct, so x = 4.",
		},
		{
			Input: "Factor x^2 + 7x + 12",
			Output: "Look for two numbers that multiply to 12 and sum to 7: 3 and 4. " +
				"So x^2 + 7x + 12 = (x + 3)(x + 4). Expand to verify.",
		},
		{
			Input: "What is the derivative of x^3 + 2x?",
			Output: "Differentiate term by term using the power rule: d/dx(x^3) = 3x^2 and " +
				"d/dx(2x) = 2, so the derivative is 3x^2 + 2.",
		},
	},
	DomainAlgorithmic: {
		{
			Input: "Find the first duplicate value in an array",
			Output: "Walk the array once, inserting each value into a set. The first value " +
				"already present in the set is the answer. O(n) time, O(n) space.",
		},
		{
			Input: "Check whether a string is a palindrome",
			Output: "Compare characters from both ends moving inward; stop at the middle. " +
				"Any mismatch means not a palindrome. O(n) time, O(1) space.",
		},
		{
			Input: "Merge two sorted lists",
			Output: "Keep a pointer into each list, repeatedly appending the smaller head to " +
				"the output. Append the remainder when one list is exhausted. O(n + m) time.",
		},
	},
	DomainCode: {
		{
			Input: "Write a function that retries a failing call",
			Output: "Accept the operation, a max attempt count, and a backoff duration. Loop " +
				"up to the limit, returning the first success; sleep between attempts and " +
				"return the last error if all attempts fail.",
		},
		{
			Input: "Why does my loop skip the last element?",
			Output: "Check the loop bound: iterating with i < len-1 stops one short. Use " +
				"i < len, and verify with a two-element input where the bug is visible.",
		},
	},
	DomainWriting: {
		{
			Input: "Write an opening line for an article about remote work",
			Output: "Lead with the tension: \"The office didn't disappear; it moved into " +
				"everyone's kitchen.\" A concrete image beats a statistic in the first line.",
		},
		{
			Input: "Make this sentence more direct: 'It could be argued that the results were not entirely unexpected.'",
			Output: "\"The results were predictable.\" Cut hedges, prefer active voice, keep " +
				"the claim the author is actually making.",
		},
	},
}

var intentExamples = map[string][]example{
	"problem_solving": {
		{
			Input: "A train travels 120 km in 1.5 hours. What is its average speed?",
			Output: "Average speed = distance / time = 120 / 1.5 = 80 km/h. State the " +
				"formula first, then substitute.",
		},
		{
			Input: "How should I split a restaurant bill of $92 between 4 people with a 15% tip?",
			Output: "Total with tip: 92 * 1.15 = 105.80. Per person: 105.80 / 4 = 26.45. " +
				"Show both stages separately so the arithmetic is checkable.",
		},
	},
	"analysis": {
		{
			Input: "Compare SQL and NoSQL databases for a new project",
			Output: "Structure the comparison along fixed axes: data model, consistency, " +
				"scaling, query flexibility, operational cost. Conclude with when each wins.",
		},
	},
	"explanation": {
		{
			Input: "Explain DNS to a newcomer",
			Output: "Start from the user-visible behavior (typing a name, reaching a server), " +
				"introduce the phone-book analogy, then name the actual components in order.",
		},
	},
}

var generalExamples = []example{
	{
		Input: "Summarize the main tradeoff in caching",
		Output: "Name the tradeoff in one sentence (freshness versus speed), then give one " +
			"concrete consequence of each side.",
	},
	{
		Input: "Give feedback on this plan",
		Output: "Lead with the strongest point, then the most important risk, each tied to a " +
			"specific part of the plan rather than generalities.",
	},
}

// examplesFor picks the bank for a detected domain, falling back to intent,
// then to the general bank. The boolean reports whether a specific (non
// general) bank matched.
func examplesFor(domain, intent string) ([]example, bool) {
	if bank, ok := domainExamples[domain]; ok {
		return bank, true
	}
	if bank, ok := intentExamples[intent]; ok {
		return bank, true
	}
	return generalExamples, false
}
