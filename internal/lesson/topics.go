package lesson

// Topic is an entry of the learning path.
type Topic struct {
	Name     string
	Duration string
	XP       int
}

// Topics is the fixed learning path offered on the home screen.
var Topics = []Topic{
	{Name: "Grammar Basics", Duration: "10-15 mins", XP: CompletionXP},
	{Name: "Common Greetings", Duration: "10-15 mins", XP: CompletionXP},
	{Name: "Ordering Food", Duration: "10-15 mins", XP: CompletionXP},
	{Name: "Travel Vocabulary", Duration: "10-15 mins", XP: CompletionXP},
	{Name: "Business Etiquette", Duration: "10-15 mins", XP: CompletionXP},
}
