// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package recommend

import (
	"sort"

	"github.com/tomtom215/moodscape/internal/catalog"
	"github.com/tomtom215/moodscape/internal/mood"
)

// rankCategories scores the candidate categories for the predicted mood and
// returns at most maxCategories of them, highest relevance first.
//
// Relevance is the category's base affinity scaled by how confident the
// prediction is: affinity * (0.5 + primary*0.5), capped at 1.0. A zero
// primary score halves the affinity, full confidence leaves it unchanged.
func rankCategories(cat *catalog.Catalog, pred mood.Prediction, maxCategories int) []RankedCategory {
	if maxCategories <= 0 {
		maxCategories = DefaultMaxCategories
	}

	keys := cat.CandidatesFor(string(pred.PrimaryMood))
	primary := pred.Distribution[pred.PrimaryMood]

	ranked := make([]RankedCategory, 0, len(keys))
	for _, key := range keys {
		category, ok := cat.Category(key)
		if !ok {
			continue
		}

		relevance := cat.Affinity(key) * (0.5 + primary*0.5)
		if relevance > 1 {
			relevance = 1
		}

		ranked = append(ranked, RankedCategory{
			Key:            key,
			Name:           category.Name,
			Description:    category.Description,
			Relevance:      relevance,
			ExampleArtists: category.ExampleArtists,
			ExampleTracks:  category.ExampleTracks,
		})
	}

	// Stable sort keeps the mood mapping's preference order among equal
	// scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Relevance > ranked[j].Relevance
	})

	if len(ranked) > maxCategories {
		ranked = ranked[:maxCategories]
	}
	return ranked
}
