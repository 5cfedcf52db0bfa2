package decision

import (
	"fmt"
	"sort"
	"time"
)

// refField selects one reference field off an item for conflict matching.
type refField func(Refs) string

func refTradeIdea(r Refs) string   { return r.TradeIdeaID }
func refDeliverable(r Refs) string { return r.DeliverableID }
func refAsset(r Refs) string       { return r.AssetID }

// conflict declares that a loser-rule item is suppressed when a winner-rule
// item exists for the same entity. Matching is structural: every MatchOn
// field must be non-empty and equal on both items. Items that merely share
// an asset do not suppress each other unless a rule pair says so.
type conflict struct {
	Winner  Rule
	Loser   Rule
	MatchOn []refField
}

// conflictTable is the complete mutual-exclusion rule set. Keeping it as a
// table, evaluated generically, keeps new rule pairs auditable.
var conflictTable = []conflict{
	// An accepted-but-unconfirmed execution supersedes the awaiting-decision
	// item for the same trade idea.
	{Winner: RuleExecutionNotConfirmed, Loser: RuleProposalAwaiting, MatchOn: []refField{refTradeIdea}},
	// A proposal already in front of the committee supersedes the
	// simulation prompt for the same trade idea.
	{Winner: RuleProposalAwaiting, Loser: RuleIdeaNotSimulated, MatchOn: []refField{refTradeIdea}},
}

// matches reports whether a and b agree on every MatchOn field with a
// non-empty value.
func (c conflict) matches(loser, winner Item) bool {
	for _, field := range c.MatchOn {
		lv, wv := field(loser.Refs), field(winner.Refs)
		if lv == "" || lv != wv {
			return false
		}
	}
	return true
}

// suppressConflicts drops items whose conflicting higher-priority
// counterpart for the same entity is present.
func suppressConflicts(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		suppressed := false
		for _, c := range conflictTable {
			if it.Rule != c.Loser {
				continue
			}
			for _, other := range items {
				if other.Rule == c.Winner && c.matches(it, other) {
					suppressed = true
					break
				}
			}
			if suppressed {
				break
			}
		}
		if !suppressed {
			out = append(out, it)
		}
	}
	return out
}

// dedupe collapses items that represent the same logical signal: same rule,
// same underlying entity. The more severe survives; ties keep the first
// encountered.
func dedupe(items []Item) []Item {
	index := make(map[string]int, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		key := string(it.Rule) + "|" + it.entityRef()
		if at, ok := index[key]; ok {
			if it.Severity.Rank() > out[at].Severity.Rank() {
				out[at] = it
			}
			continue
		}
		index[key] = len(out)
		out = append(out, it)
	}
	return out
}

// rollupSpec describes how one rule's items collapse into a rollup parent.
type rollupSpec struct {
	// Singular and Plural are the noun phrases used in the parent title,
	// e.g. "proposal awaiting decision" / "proposals awaiting decision".
	// Irregular plurals ("theses") are spelled out here.
	Singular string
	Plural   string

	// AgeVerb completes the description "Oldest <verb> <N> days.".
	AgeVerb string

	// GroupBy extracts the breakdown dimension for the parent chips.
	GroupBy func(Item) string

	// CTA is the single aggregate call to action on the parent.
	CTA CTA
}

var rollupSpecs = map[Rule]rollupSpec{
	RuleProposalAwaiting: {
		Singular: "proposal awaiting decision",
		Plural:   "proposals awaiting decision",
		AgeVerb:  "waiting",
		GroupBy:  func(it Item) string { return it.Refs.PortfolioName },
		CTA: CTA{Label: "Review all", ActionKey: "OPEN_TRADE_QUEUE_FILTERED",
			Payload: map[string]string{"stage": "deciding"}, Kind: CTAPrimary},
	},
	RuleThesisStale: {
		Singular: "thesis may be stale",
		Plural:   "theses may be stale",
		AgeVerb:  "since update",
		GroupBy:  func(it Item) string { return string(it.Severity) },
		CTA: CTA{Label: "Review theses", ActionKey: "OPEN_RESEARCH_LIST_FILTERED",
			Payload: map[string]string{"filter": "stale-thesis"}, Kind: CTAPrimary},
	},
	RuleDeliverableOverdue: {
		Singular: "deliverable overdue",
		Plural:   "deliverables overdue",
		AgeVerb:  "overdue",
		GroupBy:  func(it Item) string { return it.Refs.ProjectName },
		CTA: CTA{Label: "Review deliverables", ActionKey: "OPEN_PROJECTS_FILTERED",
			Payload: map[string]string{"filter": "overdue"}, Kind: CTAPrimary},
	},
	RuleIdeaNotSimulated: {
		Singular: "idea not simulated",
		Plural:   "ideas not simulated",
		AgeVerb:  "waiting",
		GroupBy:  func(it Item) string { return it.Refs.PortfolioName },
		CTA: CTA{Label: "Review ideas", ActionKey: "OPEN_TRADE_QUEUE_FILTERED",
			Payload: map[string]string{"stage": "idea"}, Kind: CTAPrimary},
	},
}

// rollup groups large homogeneous action-item sets into one synthesized
// parent per rule. Intel items never roll up. When a rule's matching item
// count is below its configured minimum the items pass through flat; the
// parent's children are the exact original items, unmodified.
func rollup(items []Item, now time.Time, cfg Config) []Item {
	counts := make(map[Rule]int)
	for _, it := range items {
		if it.Surface == SurfaceAction {
			counts[it.Rule]++
		}
	}

	rolled := make(map[Rule]bool)
	for rule, n := range counts {
		rc, ok := cfg.Rollups[rule]
		if !ok {
			continue
		}
		if _, ok := rollupSpecs[rule]; !ok {
			continue
		}
		if n >= rc.MinCount {
			rolled[rule] = true
		}
	}
	if len(rolled) == 0 {
		return items
	}

	out := make([]Item, 0, len(items))
	groups := make(map[Rule][]Item)
	for _, it := range items {
		if it.Surface == SurfaceAction && rolled[it.Rule] {
			groups[it.Rule] = append(groups[it.Rule], it)
			continue
		}
		out = append(out, it)
	}

	// Deterministic parent order regardless of map iteration.
	rules := make([]Rule, 0, len(groups))
	for rule := range groups {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i] < rules[j] })

	for _, rule := range rules {
		out = append(out, buildRollup(rule, groups[rule], now))
	}
	return out
}

// buildRollup synthesizes the rollup parent for one rule's items.
func buildRollup(rule Rule, children []Item, now time.Time) Item {
	spec := rollupSpecs[rule]

	type groupCount struct {
		key string
		n   int
	}
	severity := children[0].Severity
	oldest := children[0].CreatedAt
	maxAge := 0
	index := make(map[string]int)
	var groups []groupCount
	for _, ch := range children {
		severity = MaxSeverity(severity, ch.Severity)
		if age := ageDays(ch.CreatedAt, now); age > maxAge {
			maxAge = age
		}
		if ch.CreatedAt.Before(oldest) {
			oldest = ch.CreatedAt
		}
		key := spec.GroupBy(ch)
		if key == "" {
			// Items without the grouping dimension count toward the rollup
			// but not the breakdown.
			continue
		}
		if at, ok := index[key]; ok {
			groups[at].n++
			continue
		}
		index[key] = len(groups)
		groups = append(groups, groupCount{key: key, n: 1})
	}

	// Count descending; ties keep first-encounter order.
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].n > groups[j].n })
	chips := make([]Chip, 0, len(groups))
	for _, g := range groups {
		chips = append(chips, Chip{Label: g.key, Value: fmt.Sprintf("%d", g.n)})
	}

	noun := spec.Plural
	if len(children) == 1 {
		noun = spec.Singular
	}

	titleKey := children[0].TitleKey
	return Item{
		ID:          "rollup-" + titleKey,
		Rule:        RuleRollup,
		SourceRule:  rule,
		Surface:     SurfaceAction,
		Severity:    severity,
		Category:    children[0].Category,
		Title:       fmt.Sprintf("%d %s", len(children), noun),
		TitleKey:    titleKey,
		Description: fmt.Sprintf("Oldest %s %d days.", spec.AgeVerb, maxAge),
		Chips:       chips,
		CTAs:        []CTA{spec.CTA},
		Dismissible: false,
		Children:    append([]Item(nil), children...),
		CreatedAt:   oldest,
	}
}

// Postprocess runs the full pipeline over the flat evaluator output:
// conflict suppression, deduplication, rollup grouping, scoring, sorting,
// and the surface split. Running it on its own output is a no-op.
func Postprocess(items []Item, now time.Time, cfg Config) (action, intel []Item) {
	items = suppressConflicts(items)
	items = dedupe(items)
	items = rollup(items, now, cfg)

	// Rollup children are scored too: scoped views unwrap them and re-sort,
	// so they must carry real scores, not zeros.
	for i := range items {
		items[i].SortScore = ComputeSortScore(items[i], now)
		for j := range items[i].Children {
			items[i].Children[j].SortScore = ComputeSortScore(items[i].Children[j], now)
		}
	}

	for _, it := range items {
		if it.Surface == SurfaceIntel {
			intel = append(intel, it)
		} else {
			action = append(action, it)
		}
	}
	sortItems(action)
	sortItems(intel)
	return action, intel
}
