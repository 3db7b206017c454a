package anniversary

// Item is an Entry formatted for the anniversaries list.
type Item struct {
	Name      string `json:"name"`
	Key       string `json:"key"`
	Date      string `json:"date"`
	DaysUntil int    `json:"days_until"`
	Label     string `json:"label"`
}

// Items formats entries with Polish dates and labels.
func Items(entries []Entry) []Item {
	out := make([]Item, 0, len(entries))
	for _, e := range entries {
		out = append(out, Item{
			Name:      e.Name,
			Key:       e.Key,
			Date:      FormatDate(e.Date),
			DaysUntil: e.DaysUntil,
			Label:     Describe(e.DaysUntil),
		})
	}
	return out
}
