// Package classify assigns architectural layers to build units.
//
// Evaluation order (first match wins): built-in name-suffix rules, then
// user-configured glob patterns, then package/name heuristics, then the
// default Unknown layer. Every assignment records which rule or heuristic
// fired so reports can explain the classification.
package classify

import (
	"regexp"
	"strings"

	"github.com/archlens-labs/archlens/pkg/core"
)

// UserRule maps a glob-style unit-name pattern to a layer.
type UserRule struct {
	Pattern string
	Layer   core.Layer
}

// Result is the outcome of classifying one unit.
type Result struct {
	Layer        core.Layer
	Reason       string
	MatchedRule  string
	IsTest       bool
	IsTestReason string
}

// suffixRule is one built-in deterministic name-suffix rule.
type suffixRule struct {
	suffix string
	layer  core.Layer
}

// Built-in suffix rules, checked in order. Test suffixes come first so a
// unit named Foo.Domain.Tests lands in Tests, not Domain.
var suffixRules = []suffixRule{
	{".tests", core.LayerTests},
	{".test", core.LayerTests},
	{".unittests", core.LayerTests},
	{".integrationtests", core.LayerTests},
	{".web", core.LayerPresentation},
	{".api", core.LayerPresentation},
	{".ui", core.LayerPresentation},
	{".mvc", core.LayerPresentation},
	{".infrastructure", core.LayerInfrastructure},
	{".persistence", core.LayerInfrastructure},
	{".data", core.LayerInfrastructure},
	{".application", core.LayerApplication},
	{".services", core.LayerApplication},
	{".domain", core.LayerDomain},
	{".core", core.LayerDomain},
}

// Package markers used by heuristics. Matching is case-insensitive substring
// against the unit's package references.
var (
	webPackageMarkers  = []string{"aspnetcore", "swashbuckle", "gin-gonic", "go-chi"}
	dataPackageMarkers = []string{"entityframework", "dapper", "jackc/pgx", "database/sql"}
)

// Name tokens used by heuristics when no suffix or package marker matched.
var (
	domainNameTokens      = []string{"domain", "core", "model"}
	applicationNameTokens = []string{"application", "service", "usecase"}
)

// compiledRule is a user rule translated to an anchored regular expression.
type compiledRule struct {
	pattern string
	layer   core.Layer
	re      *regexp.Regexp
}

// Classifier evaluates layer assignment for build units. User rules are
// compiled once at construction; malformed patterns are treated as
// non-matching, never as errors. A Classifier is safe for concurrent use
// after construction.
type Classifier struct {
	rules []compiledRule
}

// NewClassifier compiles the given user rules into a Classifier.
func NewClassifier(userRules []UserRule) *Classifier {
	c := &Classifier{}
	for _, r := range userRules {
		re, err := compileGlob(r.Pattern)
		if err != nil {
			// Malformed glob: keep the rule as a never-matching entry so
			// rule ordering stays stable.
			c.rules = append(c.rules, compiledRule{pattern: r.Pattern, layer: r.Layer})
			continue
		}
		c.rules = append(c.rules, compiledRule{pattern: r.Pattern, layer: r.Layer, re: re})
	}
	return c
}

// Classify assigns a layer to one unit.
func (c *Classifier) Classify(name, path string, packageRefs []string, declaredTest bool) Result {
	isTest, isTestReason := testFacts(name, declaredTest)

	// 1. Built-in name-suffix rules.
	nameLower := strings.ToLower(name)
	for _, r := range suffixRules {
		if strings.HasSuffix(nameLower, r.suffix) {
			return Result{
				Layer:        r.layer,
				Reason:       "name suffix '" + r.suffix + "'",
				IsTest:       isTest,
				IsTestReason: isTestReason,
			}
		}
	}

	// 2. User-configured glob patterns against the unit name.
	for _, r := range c.rules {
		if r.re != nil && r.re.MatchString(name) {
			return Result{
				Layer:        r.layer,
				Reason:       "user pattern",
				MatchedRule:  r.pattern,
				IsTest:       isTest,
				IsTestReason: isTestReason,
			}
		}
	}

	// 3. Heuristics.
	if isTest {
		return Result{
			Layer:        core.LayerTests,
			Reason:       "test unit",
			IsTest:       true,
			IsTestReason: isTestReason,
		}
	}
	if marker, ok := matchMarker(packageRefs, webPackageMarkers); ok {
		return Result{Layer: core.LayerPresentation, Reason: "web framework package '" + marker + "'"}
	}
	if marker, ok := matchMarker(packageRefs, dataPackageMarkers); ok {
		return Result{Layer: core.LayerInfrastructure, Reason: "data access package '" + marker + "'"}
	}
	if token, ok := matchToken(nameLower, domainNameTokens); ok {
		return Result{Layer: core.LayerDomain, Reason: "name token '" + token + "'"}
	}
	if token, ok := matchToken(nameLower, applicationNameTokens); ok {
		return Result{Layer: core.LayerApplication, Reason: "name token '" + token + "'"}
	}

	// 4. Default.
	return Result{Layer: core.LayerUnknown, Reason: "no rule matched"}
}

// testFacts determines the unit's test flag and why.
func testFacts(name string, declared bool) (bool, string) {
	if declared {
		return true, "declared by provider"
	}
	nameLower := strings.ToLower(name)
	for _, s := range []string{".tests", ".test", ".unittests", ".integrationtests"} {
		if strings.HasSuffix(nameLower, s) {
			return true, "name suffix '" + s + "'"
		}
	}
	return false, ""
}

func matchMarker(refs, markers []string) (string, bool) {
	for _, ref := range refs {
		refLower := strings.ToLower(ref)
		for _, m := range markers {
			if strings.Contains(refLower, m) {
				return ref, true
			}
		}
	}
	return "", false
}

func matchToken(nameLower string, tokens []string) (string, bool) {
	for _, tok := range tokens {
		if strings.Contains(nameLower, tok) {
			return tok, true
		}
	}
	return "", false
}

// compileGlob translates a glob-style pattern into an anchored,
// case-insensitive regular expression. '*' matches any run of characters,
// '?' matches a single character, '[...]' character classes pass through,
// everything else is literal. An unbalanced class fails to compile; the
// caller treats that pattern as non-matching.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		case '[', ']':
			sb.WriteRune(r)
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	return regexp.Compile(sb.String())
}
