package parser

// Pattern vocabularies for heuristic entity recognition. These back the
// default recognizer only; a future statistical recognizer replaces the
// implementation, not the Parser contract.

var objectVocab = map[string]bool{
	"dog": true, "cat": true, "bird": true, "horse": true, "fish": true,
	"car": true, "bike": true, "boat": true, "plane": true, "train": true,
	"tree": true, "flower": true, "mountain": true, "lake": true, "river": true,
	"beach": true, "ocean": true, "snow": true, "sunset": true, "sunrise": true,
	"food": true, "cake": true, "pizza": true, "coffee": true,
	"building": true, "house": true, "bridge": true, "church": true,
	"waterfall": true, "forest": true, "desert": true, "sky": true,
}

var sceneVocab = map[string]bool{
	"portrait": true, "landscape": true, "party": true, "wedding": true,
	"concert": true, "nature": true, "city": true, "indoor": true,
	"outdoor": true, "night": true, "vacation": true, "holiday": true,
	"birthday": true, "graduation": true, "hiking": true, "camping": true,
	"picnic": true, "barbecue": true,
}

var moodVocab = map[string]bool{
	"happy": true, "sad": true, "cozy": true, "calm": true, "peaceful": true,
	"dramatic": true, "romantic": true, "fun": true, "energetic": true,
	"moody": true, "bright": true, "dark": true,
}

var relationshipVocab = map[string]bool{
	"family": true, "friends": true, "kids": true, "children": true,
	"baby": true, "couple": true, "parents": true, "grandparents": true,
	"mom": true, "dad": true, "grandma": true, "grandpa": true,
}

var seasonVocab = map[string]bool{
	"winter": true, "spring": true, "summer": true, "fall": true, "autumn": true,
}

var monthVocab = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5,
	"june": 6, "july": 7, "august": 8, "september": 9, "october": 10,
	"november": 11, "december": 12,
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6, "jul": 7,
	"aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// stopwords are query scaffolding that never becomes a search criterion.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "with": true, "and": true, "or": true,
	"from": true, "by": true, "near": true, "me": true, "my": true, "our": true,
	"all": true, "any": true, "some": true, "that": true, "this": true,
	"those": true, "these": true, "ones": true, "one": true, "it": true,
	"is": true, "are": true, "was": true, "were": true, "i": true, "we": true,
	"photo": true, "photos": true, "picture": true, "pictures": true,
	"pic": true, "pics": true, "image": true, "images": true, "shot": true,
	"shots": true, "taken": true, "during": true, "between": true,
	"find": true, "show": true, "search": true, "look": true, "looking": true,
	"get": true, "give": true, "display": true, "want": true, "see": true,
	"only": true, "just": true, "but": true, "also": true, "too": true,
	"please": true, "more": true, "last": true, "recent": true,
	"recently": true, "year": true, "years": true, "month": true,
	"months": true, "week": true, "weeks": true, "day": true, "days": true,
	"time": true, "yesterday": true, "today": true,
}
