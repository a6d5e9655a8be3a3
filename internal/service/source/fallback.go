package source

import "time"

// Fixed fallback datasets served when a live fetch is unavailable. Values
// mirror realistic source output so downstream rendering and analysis keep
// working without the external APIs.

func fallbackSearchTopics(category string) []SearchItem {
	type topic struct {
		title  string
		score  float64
		change float64
	}

	var topics []topic
	switch category {
	case "Entertainment":
		topics = []topic{
			{"New Marvel Series", 92, 15},
			{"Grammy Awards 2025", 88, 12},
			{"Blockbuster Summer Movies", 84, 8},
			{"Netflix Original Series", 78, 5},
			{"Music Festival Season", 75, 10},
		}
	case "Shopping":
		topics = []topic{
			{"Spring Fashion Trends", 90, 18},
			{"Sustainable Clothing Brands", 85, 20},
			{"Tech Gadget Releases", 82, 7},
			{"Home Decor Trends", 76, 9},
			{"Fitness Equipment Sales", 72, 6},
		}
	default: // Pop Culture
		topics = []topic{
			{"Viral TikTok Challenge", 95, 25},
			{"Celebrity Fashion Moment", 89, 14},
			{"Viral Internet Meme", 86, 22},
			{"Social Media Platform Update", 80, 11},
			{"Online Creator Controversy", 77, 8},
		}
	}

	items := make([]SearchItem, 0, len(topics))
	for _, t := range topics {
		items = append(items, SearchItem{
			Title:        t.title,
			Type:         "daily",
			Region:       "US",
			Category:     category,
			TrafficScore: t.score,
			Change:       t.change,
		})
	}
	return items
}

func minimalSearchFallback() []SearchItem {
	return []SearchItem{
		{
			Title:        "Spring Fashion 2025",
			Type:         "daily",
			Region:       "US",
			Category:     "Shopping",
			TrafficScore: 95,
			Change:       20,
		},
		{
			Title:        "Viral Social Media Dance",
			Type:         "daily",
			Region:       "US",
			Category:     "Pop Culture",
			TrafficScore: 90,
			Change:       15,
		},
		{
			Title:        "Streaming Platform Originals",
			Type:         "daily",
			Region:       "US",
			Category:     "Entertainment",
			TrafficScore: 88,
			Change:       12,
		},
	}
}

func fallbackRedditPosts() []RedditPost {
	now := float64(time.Now().Unix())

	return []RedditPost{
		{
			Title:      "Discussion: What fashion trends are you seeing emerge this spring?",
			Subreddit:  "femalefashionadvice",
			Score:      1842,
			URL:        "https://www.reddit.com/r/femalefashionadvice/comments/sample1",
			Permalink:  "https://www.reddit.com/r/femalefashionadvice/comments/sample1",
			CreatedUTC: now - 86400,
		},
		{
			Title:      "The latest TikTok viral dance explained: What makes it so popular?",
			Subreddit:  "AskTikTok",
			Score:      1569,
			URL:        "https://www.reddit.com/r/AskTikTok/comments/sample2",
			Permalink:  "https://www.reddit.com/r/AskTikTok/comments/sample2",
			CreatedUTC: now - 172800,
		},
		{
			Title:      "Celebrity fashion at last night's award show - who wore it best?",
			Subreddit:  "popculturechat",
			Score:      1438,
			URL:        "https://www.reddit.com/r/popculturechat/comments/sample3",
			Permalink:  "https://www.reddit.com/r/popculturechat/comments/sample3",
			CreatedUTC: now - 129600,
		},
		{
			Title:      "Interactive map showing cultural trends across different countries",
			Subreddit:  "internetisbeautiful",
			Score:      1367,
			URL:        "https://www.reddit.com/r/internetisbeautiful/comments/sample4",
			Permalink:  "https://www.reddit.com/r/internetisbeautiful/comments/sample4",
			CreatedUTC: now - 259200,
		},
		{
			Title:      "The 'coastal grandmother' aesthetic is taking over social media",
			Subreddit:  "femalefashionadvice",
			Score:      1243,
			URL:        "https://www.reddit.com/r/femalefashionadvice/comments/sample5",
			Permalink:  "https://www.reddit.com/r/femalefashionadvice/comments/sample5",
			CreatedUTC: now - 345600,
		},
		{
			Title:      "What's driving the resurgence of Y2K fashion among Gen Z?",
			Subreddit:  "popculturechat",
			Score:      1156,
			URL:        "https://www.reddit.com/r/popculturechat/comments/sample6",
			Permalink:  "https://www.reddit.com/r/popculturechat/comments/sample6",
			CreatedUTC: now - 432000,
		},
		{
			Title:      "Which viral TikTok product actually lived up to the hype?",
			Subreddit:  "AskTikTok",
			Score:      978,
			URL:        "https://www.reddit.com/r/AskTikTok/comments/sample7",
			Permalink:  "https://www.reddit.com/r/AskTikTok/comments/sample7",
			CreatedUTC: now - 518400,
		},
		{
			Title:      "This website visualizes music trends over the decades",
			Subreddit:  "internetisbeautiful",
			Score:      945,
			URL:        "https://www.reddit.com/r/internetisbeautiful/comments/sample8",
			Permalink:  "https://www.reddit.com/r/internetisbeautiful/comments/sample8",
			CreatedUTC: now - 604800,
		},
	}
}
