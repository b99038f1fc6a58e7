package lint

import (
	"fmt"
	"strconv"

	"mercator-hq/configurator/pkg/featuremodel"
)

// SuggestFeatureID suggests an existing feature when an unknown id is
// referenced. Ids are compared as decimal strings, which catches the usual
// typos (extra, missing or swapped digits).
func SuggestFeatureID(unknown int64, model *featuremodel.Model) string {
	target := strconv.FormatInt(unknown, 10)

	minDistance := 1000
	var best *featuremodel.Feature
	for _, f := range model.All() {
		dist := levenshteinDistance(target, strconv.FormatInt(f.ID, 10))
		if dist < minDistance {
			minDistance = dist
			best = f
		}
	}

	if best != nil && minDistance <= 1 {
		return fmt.Sprintf("Did you mean feature %d (%q)?", best.ID, best.Name)
	}
	return "Use an existing feature id, -1 (forbidden) or 0 (any physical feature)"
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}
	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
