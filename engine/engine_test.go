package engine

import (
	"context"
	"io"
	"log"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groomify-backend/models"
)

func newTestEngine(dataset *Dataset, feedback FeedbackSource) *Engine {
	e := NewEngine(dataset, feedback)
	e.rng = rand.New(rand.NewSource(1))
	return e
}

func femaleNikahRule() Rule {
	return Rule{
		Gender:             "Female",
		EventName:          "Nikah",
		OutfitType:         "Formal",
		Time:               "Night",
		WeatherRange:       "10-20",
		DressType:          "Embellished Blouse",
		DressColor:         "Maroon",
		DressFabricTexture: "Silk",
		ShoesType:          "Khussa",
		ShoesColor:         "Gold",
		UpperLayer:         "Shawl",
		UpperLayerColor:    "Maroon",
	}
}

func TestWeatherBucket(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5", "0-10"},
		{"10", "0-10"},
		{"18", "10-20"},
		{"25.4", "20-30"},
		{"33", "30-40"},
		{"41", "41+"},
		{"100", "41+"},  // clamped to 45
		{"-12", "0-10"}, // clamped to 0
		{"18°C and sunny", "10-20"},
		{"warm", "20-30"}, // unparseable defaults
		{"", "20-30"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, weatherBucket(tt.input), "input %q", tt.input)
	}
}

func TestSplitAndStrip(t *testing.T) {
	assert.Equal(t, []string{"Kurta", "Shalwar Kameez"}, splitAndStrip(" Kurta , Shalwar Kameez "))
	assert.Nil(t, splitAndStrip("   "))
	assert.Equal(t, []string{"a"}, splitAndStrip("a,,"))
}

func TestRecommendInvalidGender(t *testing.T) {
	e := newTestEngine(&Dataset{Rules: []Rule{femaleNikahRule()}}, nil)

	results, err := e.Recommend(context.Background(), models.RecommendationCriteria{
		Event: "Nikah", Outfit: "Formal", Time: "Night", Gender: "other", Weather: "18",
	})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecommendEmptyDataset(t *testing.T) {
	e := newTestEngine(&Dataset{}, nil)

	results, err := e.Recommend(context.Background(), models.RecommendationCriteria{
		Event: "Nikah", Outfit: "Formal", Time: "Night", Gender: "Female", Weather: "18",
	})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecommendGenderWall(t *testing.T) {
	maleRule := femaleNikahRule()
	maleRule.Gender = "Male"
	maleRule.DressType = "Sherwani"
	e := newTestEngine(&Dataset{Rules: []Rule{maleRule}}, nil)

	// Only male rules exist, so a female request must return nothing
	results, err := e.Recommend(context.Background(), models.RecommendationCriteria{
		Event: "Nikah", Outfit: "Formal", Time: "Night", Gender: "Female", Weather: "18",
	})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecommendTierOneMatch(t *testing.T) {
	e := newTestEngine(&Dataset{Rules: []Rule{femaleNikahRule()}}, nil)

	results, err := e.Recommend(context.Background(), models.RecommendationCriteria{
		Event: "Nikah", Outfit: "Formal", Time: "Night", Gender: "Female", Weather: "18",
	})

	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Embellished Blouse", results[0]["Dress Type"])
	assert.Equal(t, "Khussa", results[0]["Shoes Type"])
	// Every result carries all seven attribute fields
	for _, result := range results {
		for _, field := range attributeFields {
			assert.Contains(t, result, field)
		}
	}
}

func TestRecommendExpandsPools(t *testing.T) {
	rule := femaleNikahRule()
	rule.DressColor = "Maroon, Emerald, Gold"
	e := newTestEngine(&Dataset{Rules: []Rule{rule}}, nil)

	results, err := e.Recommend(context.Background(), models.RecommendationCriteria{
		Event: "Nikah", Outfit: "Formal", Time: "Night", Gender: "Female", Weather: "18",
	})

	require.NoError(t, err)
	// Three pool values expand into three distinct outfits
	assert.Len(t, results, 3)
	colors := make(map[string]bool)
	for _, result := range results {
		colors[result["Dress Color"]] = true
	}
	assert.Len(t, colors, 3)
}

func TestRecommendEmptyPoolBecomesNA(t *testing.T) {
	rule := femaleNikahRule()
	rule.UpperLayer = ""
	rule.UpperLayerColor = " "
	e := newTestEngine(&Dataset{Rules: []Rule{rule}}, nil)

	results, err := e.Recommend(context.Background(), models.RecommendationCriteria{
		Event: "Nikah", Outfit: "Formal", Time: "Night", Gender: "Female", Weather: "18",
	})

	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "N/A", results[0]["Upper Layer"])
	assert.Equal(t, "N/A", results[0]["Upper Layer Color"])
}

func TestRecommendFallbackTierWhenNoStrictMatch(t *testing.T) {
	// Rule matches gender but not the requested event, so tier 1 finds
	// nothing and the creative/fallback tiers must still produce outfits
	e := newTestEngine(&Dataset{Rules: []Rule{femaleNikahRule()}}, nil)

	results, err := e.Recommend(context.Background(), models.RecommendationCriteria{
		Event: "Graduation Ceremony", Outfit: "Casual", Time: "Day", Gender: "Female", Weather: "35",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, results)
}

type staticFeedback struct {
	rejected []map[string]string
}

func (s *staticFeedback) RejectedOutfits(_ context.Context) ([]map[string]string, error) {
	return s.rejected, nil
}

func TestFindDiverseSkipsRejectedOutfits(t *testing.T) {
	e := newTestEngine(&Dataset{}, nil)

	base := outfit{"Blouse", "Maroon", "Silk", "Khussa", "Gold", "Shawl", "Maroon"}
	pools := [7][]string{
		{"Blouse"},
		{"Maroon", "Emerald"},
		{"Silk"},
		{"Khussa"},
		{"Gold"},
		{"Shawl"},
		{"Maroon"},
	}
	rejections := map[outfit]bool{base: true}

	// The only two composable outfits are the rejected one and its
	// emerald variant; only the variant may come back
	results := e.findDiverse(pools, nil, rejections)

	require.NotEmpty(t, results)
	for _, result := range results {
		assert.NotEqual(t, base, result, "rejected combination must not be proposed again")
	}
}

func TestLoadRejectionSetDefaultsMissingFields(t *testing.T) {
	feedback := &staticFeedback{rejected: []map[string]string{
		{"Dress Type": "Blouse"}, // all other attributes absent
	}}
	e := newTestEngine(&Dataset{}, feedback)

	rejections := e.loadRejectionSet(context.Background())

	want := outfit{"Blouse", "N/A", "N/A", "N/A", "N/A", "N/A", "N/A"}
	assert.True(t, rejections[want])
}

func TestAttributeDiff(t *testing.T) {
	a := outfit{"a", "b", "c", "d", "e", "f", "g"}
	b := outfit{"a", "b", "c", "d", "e", "f", "g"}
	assert.Equal(t, 0, attributeDiff(a, b))

	b[0] = "x"
	b[6] = "y"
	assert.Equal(t, 2, attributeDiff(a, b))
}

// Exercises the shared rng from parallel Recommend calls; run with the
// race detector to verify the serialization. Logging is discarded so
// the log package's own mutex does not serialize the calls.
func TestRecommendConcurrentCalls(t *testing.T) {
	prev := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(prev)

	rule := femaleNikahRule()
	rule.DressColor = "Maroon, Red, Green, Blue"
	rule.ShoesColor = "Gold, Silver"
	e := newTestEngine(&Dataset{Rules: []Rule{rule}}, nil)

	criteria := models.RecommendationCriteria{
		Event: "Nikah", Outfit: "Formal", Time: "Night", Gender: "Female", Weather: "18",
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if _, err := e.Recommend(context.Background(), criteria); err != nil {
					t.Errorf("recommend failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestReload(t *testing.T) {
	e := newTestEngine(&Dataset{}, nil)
	assert.False(t, e.DatasetLoaded())

	e.Reload(&Dataset{Rules: []Rule{femaleNikahRule()}})
	assert.True(t, e.DatasetLoaded())
}
