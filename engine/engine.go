package engine

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"groomify-backend/models"
)

// attributeFields are the outfit attribute names, in pool order. The same
// order is used for diversity comparison and for the rejection set.
var attributeFields = []string{
	"Dress Type",
	"Dress Color",
	"Dress Fabric/Texture",
	"Shoes Type",
	"Shoes Color",
	"Upper Layer",
	"Upper Layer Color",
}

const (
	targetOutfits           = 3
	diverseAttemptsPerLevel = 50
	fallbackFillAttempts    = 100
)

// outfit is one composed outfit, indexed by attributeFields position
type outfit [7]string

func (o outfit) toMap() map[string]string {
	m := make(map[string]string, len(attributeFields))
	for i, field := range attributeFields {
		m[field] = o[i]
	}
	return m
}

// FeedbackSource provides previously rejected outfits for filtering
type FeedbackSource interface {
	RejectedOutfits(ctx context.Context) ([]map[string]string, error)
}

// Engine generates outfit recommendations from the rule dataset.
// Generation runs in three tiers: exact rule matches first, then randomly
// composed outfits from attribute pools with a diversity requirement, then
// any distinct outfits as a final fill.
type Engine struct {
	mu       sync.RWMutex
	dataset  *Dataset
	feedback FeedbackSource

	// rngMu serializes rng, which is not safe for the concurrent
	// Recommend calls net/http produces.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewEngine creates a new Engine. feedback may be nil, in which case no
// rejection filtering is applied.
func NewEngine(dataset *Dataset, feedback FeedbackSource) *Engine {
	return &Engine{
		dataset:  dataset,
		feedback: feedback,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Reload swaps in a new dataset (used after a dataset sync)
func (e *Engine) Reload(dataset *Dataset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dataset = dataset
	log.Printf("🔄 Engine dataset reloaded: %d rules", len(dataset.Rules))
}

// DatasetLoaded reports whether the engine has any rules to recommend from
func (e *Engine) DatasetLoaded() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return !e.dataset.Empty()
}

var temperatureRegex = regexp.MustCompile(`-?\d+(\.\d+)?`)

// weatherBucket maps a free-form temperature string to a dataset weather
// range. Unparseable input defaults to the 20-30 bucket.
func weatherBucket(raw string) string {
	match := temperatureRegex.FindString(raw)
	if match == "" {
		log.Printf("⚠️  Could not parse temperature %q, defaulting to 20-30", raw)
		return "20-30"
	}
	temp, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return "20-30"
	}

	// Clamp temperature between 0 and 45
	if temp < 0 {
		temp = 0
	}
	if temp > 45 {
		temp = 45
	}

	switch {
	case temp <= 10:
		return "0-10"
	case temp <= 20:
		return "10-20"
	case temp <= 30:
		return "20-30"
	case temp <= 40:
		return "30-40"
	default:
		return "41+"
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

// Recommend generates up to three outfit recommendations for the given
// criteria. An unsupported gender or an empty dataset yields zero results
// rather than an error.
func (e *Engine) Recommend(ctx context.Context, criteria models.RecommendationCriteria) ([]map[string]string, error) {
	gender := strings.ToLower(strings.TrimSpace(criteria.Gender))
	if gender != "male" && gender != "female" {
		log.Printf("❌ Invalid gender %q: must be male or female", criteria.Gender)
		return nil, nil
	}

	e.mu.RLock()
	dataset := e.dataset
	e.mu.RUnlock()

	if dataset.Empty() {
		log.Printf("❌ Recommendation requested but dataset is empty")
		return nil, nil
	}

	// The gender wall: rows of the other gender are never used, in any
	// tier.
	genderRows := make([]Rule, 0, len(dataset.Rules))
	for _, rule := range dataset.Rules {
		if strings.EqualFold(strings.TrimSpace(rule.Gender), gender) {
			genderRows = append(genderRows, rule)
		}
	}
	if len(genderRows) == 0 {
		log.Printf("❌ No rules found for gender %q", gender)
		return nil, nil
	}

	rejections := e.loadRejectionSet(ctx)
	bucket := weatherBucket(criteria.Weather)

	log.Printf("🔍 Generating recommendations: gender=%s, event=%s, outfit=%s, time=%s, weather=%s",
		gender, criteria.Event, criteria.Outfit, criteria.Time, bucket)

	// Tier 1: rules matching every criterion
	var strictRows []Rule
	for _, rule := range genderRows {
		if containsFold(rule.WeatherRange, bucket) &&
			containsFold(rule.EventName, criteria.Event) &&
			containsFold(rule.OutfitType, criteria.Outfit) &&
			containsFold(rule.Time, criteria.Time) {
			strictRows = append(strictRows, rule)
		}
	}
	recommendations := e.pickDistinct(outfitsFromRules(strictRows), nil)
	log.Printf("✓ Tier 1 produced %d outfits", len(recommendations))

	// Tier 2: compose outfits from attribute pools with a diversity
	// requirement, skipping rejected combinations
	if len(recommendations) < targetOutfits {
		pools := e.buildPools(genderRows, criteria, bucket)
		recommendations = e.findDiverse(pools, recommendations, rejections)
		log.Printf("✓ Tier 2 raised total to %d outfits", len(recommendations))
	}

	// Tier 3: fill with any distinct outfits from the gender rows
	if len(recommendations) < targetOutfits {
		recommendations = e.pickDistinct(outfitsFromRules(genderRows), recommendations)
		log.Printf("✓ Tier 3 raised total to %d outfits", len(recommendations))
	}

	results := make([]map[string]string, 0, len(recommendations))
	for _, o := range recommendations {
		results = append(results, o.toMap())
	}
	return results, nil
}

// loadRejectionSet reads previously rejected outfits from the feedback
// store. A read failure only disables filtering for this request.
func (e *Engine) loadRejectionSet(ctx context.Context) map[outfit]bool {
	rejections := make(map[outfit]bool)
	if e.feedback == nil {
		return rejections
	}

	rejected, err := e.feedback.RejectedOutfits(ctx)
	if err != nil {
		log.Printf("⚠️  Could not load rejected outfits: %v", err)
		return rejections
	}

	for _, attrs := range rejected {
		var o outfit
		for i, field := range attributeFields {
			value, ok := attrs[field]
			if !ok || value == "" {
				value = "N/A"
			}
			o[i] = value
		}
		rejections[o] = true
	}

	if len(rejections) > 0 {
		log.Printf("✓ Loaded %d rejected outfits for filtering", len(rejections))
	}
	return rejections
}

// rulePools returns the attribute value pools of a rule, in field order.
// Empty pools contribute a single "N/A".
func rulePools(rule Rule) [7][]string {
	raw := [7]string{
		rule.DressType,
		rule.DressColor,
		rule.DressFabricTexture,
		rule.ShoesType,
		rule.ShoesColor,
		rule.UpperLayer,
		rule.UpperLayerColor,
	}
	var pools [7][]string
	for i, s := range raw {
		values := splitAndStrip(s)
		if len(values) == 0 {
			values = []string{"N/A"}
		}
		pools[i] = values
	}
	return pools
}

// outfitsFromRules expands each rule's pools into the cartesian product of
// attribute values and returns the distinct outfits
func outfitsFromRules(rules []Rule) []outfit {
	seen := make(map[outfit]bool)
	var outfits []outfit
	for _, rule := range rules {
		pools := rulePools(rule)
		var current outfit
		var expand func(depth int)
		expand = func(depth int) {
			if depth == len(pools) {
				if !seen[current] {
					seen[current] = true
					outfits = append(outfits, current)
				}
				return
			}
			for _, value := range pools[depth] {
				current[depth] = value
				expand(depth + 1)
			}
		}
		expand(0)
	}
	return outfits
}

// pickDistinct shuffles the candidate outfits and appends distinct ones to
// existing until the target count is reached
func (e *Engine) pickDistinct(candidates []outfit, existing []outfit) []outfit {
	recommendations := append([]outfit(nil), existing...)
	seen := make(map[outfit]bool, len(recommendations))
	for _, o := range recommendations {
		seen[o] = true
	}

	e.shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, o := range candidates {
		if len(recommendations) >= targetOutfits {
			break
		}
		if !seen[o] {
			seen[o] = true
			recommendations = append(recommendations, o)
		}
	}
	return recommendations
}

// buildPools assembles the per-attribute value pools for tier 2. Dress
// attributes come from event-matching rules, shoes and upper-layer
// attributes from weather-matching rules; a filter that matches nothing
// falls back to all gender rows.
func (e *Engine) buildPools(genderRows []Rule, criteria models.RecommendationCriteria, bucket string) [7][]string {
	var dressRows, weatherRows []Rule
	for _, rule := range genderRows {
		if containsFold(rule.EventName, criteria.Event) {
			dressRows = append(dressRows, rule)
		}
		if containsFold(rule.WeatherRange, bucket) {
			weatherRows = append(weatherRows, rule)
		}
	}
	if len(dressRows) == 0 {
		log.Printf("⚠️  No event-matching rules for pools, using all gender rules")
		dressRows = genderRows
	}
	if len(weatherRows) == 0 {
		log.Printf("⚠️  No weather-matching rules for pools, using all gender rules")
		weatherRows = genderRows
	}

	// Fields 0-2 (dress) draw from event-matching rules, fields 3-6
	// (shoes, upper layer) from weather-matching rules
	var pools [7][]string
	for i := range attributeFields {
		source := weatherRows
		if i < 3 {
			source = dressRows
		}
		seen := make(map[string]bool)
		var values []string
		for _, rule := range source {
			for _, value := range rulePools(rule)[i] {
				if value != "N/A" && !seen[value] {
					seen[value] = true
					values = append(values, value)
				}
			}
		}
		if len(values) == 0 {
			values = []string{"N/A"}
		}
		pools[i] = values
	}
	return pools
}

// findDiverse composes random outfits from the pools until the target
// count is reached, requiring progressively fewer attribute differences
// from already-chosen outfits, and never returning a rejected combination
func (e *Engine) findDiverse(pools [7][]string, existing []outfit, rejections map[outfit]bool) []outfit {
	recommendations := append([]outfit(nil), existing...)
	seen := make(map[outfit]bool, len(recommendations))
	for _, o := range recommendations {
		seen[o] = true
	}

	compose := func() outfit {
		var o outfit
		for i, pool := range pools {
			o[i] = pool[e.intn(len(pool))]
		}
		return o
	}

	for _, requiredDiff := range []int{4, 3, 2, 1} {
		if len(recommendations) >= targetOutfits {
			break
		}
		for attempt := 0; attempt < diverseAttemptsPerLevel && len(recommendations) < targetOutfits; attempt++ {
			candidate := compose()
			if seen[candidate] || rejections[candidate] {
				continue
			}
			diverse := true
			for _, chosen := range recommendations {
				if attributeDiff(candidate, chosen) < requiredDiff {
					diverse = false
					break
				}
			}
			if diverse {
				seen[candidate] = true
				recommendations = append(recommendations, candidate)
			}
		}
	}

	// Final fill: any unique outfit, diversity no longer required
	for attempt := 0; attempt < fallbackFillAttempts && len(recommendations) < targetOutfits; attempt++ {
		candidate := compose()
		if !seen[candidate] {
			seen[candidate] = true
			recommendations = append(recommendations, candidate)
		}
	}

	return recommendations
}

func (e *Engine) shuffle(n int, swap func(i, j int)) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng.Shuffle(n, swap)
}

func (e *Engine) intn(n int) int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(n)
}

func attributeDiff(a, b outfit) int {
	diff := 0
	for i := range a {
		if a[i] != b[i] {
			diff++
		}
	}
	return diff
}

// Describe returns a short status string for the status banner
func (e *Engine) Describe() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fmt.Sprintf("%d rules", len(e.dataset.Rules))
}
