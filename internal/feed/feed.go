// Package feed holds the pure derived views over a post list snapshot:
// filtering, search, sorting and featured selection. Nothing here touches
// persistence.
package feed

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/pixelforo/gameblog/internal/models"
)

// SortMode selects the ordering applied by Sort.
type SortMode string

const (
	SortNewest        SortMode = "newest"
	SortOldest        SortMode = "oldest"
	SortMostCommented SortMode = "mostCommented"
	SortMostReacted   SortMode = "mostReacted"
)

// searchDateLayout renders createdAt the way an es-ES locale date looks,
// dd/mm/yyyy, so users can search posts by date.
const searchDateLayout = "02/01/2006"

// topCount is how many posts the most-commented/most-reacted views return.
const topCount = 5

// FilterByCategory keeps the posts whose category matches, ignoring case.
// An empty category or "all" returns the input unchanged.
func FilterByCategory(posts []models.Post, category string) []models.Post {
	if category == "" || category == "all" {
		return posts
	}
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Search keeps the posts matching term: substring match on title or content,
// exact match on category, or substring match on the dd/mm/yyyy rendering of
// the creation date. A blank term returns the input unchanged.
func Search(posts []models.Post, term string) []models.Post {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return posts
	}

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		category := strings.ToLower(p.Category)
		if category == t {
			out = append(out, p)
			continue
		}

		title := strings.ToLower(p.Title)
		content := strings.ToLower(p.Content)
		date := p.CreatedAt.Format(searchDateLayout)
		if strings.Contains(title, t) || strings.Contains(content, t) || strings.Contains(date, t) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a new slice ordered by mode. Unknown modes fall back to
// newest first. Every ordering is stable: posts that compare equal keep
// their relative order from the input.
func Sort(posts []models.Post, mode SortMode) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)

	switch mode {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortMostCommented:
		sort.SliceStable(out, func(i, j int) bool {
			return len(out[i].Comments) > len(out[j].Comments)
		})
	case SortMostReacted:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Reactions.Total() > out[j].Reactions.Total()
		})
	default: // newest
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// MostCommented returns up to five posts with the longest comment lists,
// ties keeping input order.
func MostCommented(posts []models.Post) []models.Post {
	return top(Sort(posts, SortMostCommented))
}

// MostReacted returns up to five posts with the highest reaction totals,
// ties keeping input order.
func MostReacted(posts []models.Post) []models.Post {
	return top(Sort(posts, SortMostReacted))
}

func top(sorted []models.Post) []models.Post {
	if len(sorted) > topCount {
		return sorted[:topCount]
	}
	return sorted
}

// FeaturedPost picks one post uniformly at random among those that carry an
// image. It returns nil when no post qualifies.
func FeaturedPost(posts []models.Post) *models.Post {
	withImages := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.Image != "" {
			withImages = append(withImages, p)
		}
	}
	if len(withImages) == 0 {
		return nil
	}
	pick := withImages[rand.Intn(len(withImages))]
	return &pick
}
