package emotion

// emotionKeywords maps each emotion category to the keywords that signal it.
// Matching is case-insensitive substring search.
var emotionKeywords = map[string][]string{
	"love": {"love", "adore", "cherish", "care for", "feelings for", "crush", "attracted", "fond",
		"in love", "falling for", "deeply care", "heart", "soulmate", "forever", "always", "yours"},
	"affection": {"miss you", "thinking of you", "like you", "affection", "care about", "special to me",
		"sweet", "dear", "darling", "honey", "babe", "cute", "adorable", "precious"},
	"happiness": {"happy", "joy", "glad", "excited", "delighted", "pleased", "enjoy", "fun", "smile", "laugh",
		"thrilled", "ecstatic", "overjoyed", "grin", "cheerful", "content", "elated", "blissful"},
	"sadness": {"sad", "upset", "down", "depressed", "unhappy", "hurt", "cry", "tearful", "miss", "lonely",
		"heartbroken", "devastated", "blue", "gloomy", "melancholy", "grief", "sorrow", "disappointed"},
	"anger": {"angry", "mad", "upset", "frustrated", "annoyed", "irritated", "hate", "despise",
		"furious", "rage", "outraged", "enraged", "pissed", "resentful", "hostile"},
	"fear": {"afraid", "scared", "worried", "anxious", "nervous", "terrified", "frightened",
		"panic", "dread", "alarmed", "uneasy", "stressed", "concerned", "apprehensive"},
	"surprise": {"wow", "omg", "surprised", "shocked", "amazed", "astonished", "unexpected",
		"stunned", "startled", "unbelievable", "incredible", "no way", "speechless"},
	"admiration": {"admire", "respect", "look up to", "impressed", "amazing", "awesome", "cool", "great",
		"adore", "hero", "idol", "inspiration", "remarkable", "brilliant", "talented"},
	"gratitude": {"thank", "grateful", "appreciate", "thanks", "thankful",
		"indebted", "touched", "moved", "blessed", "appreciated"},
	"interest": {"interested", "curious", "tell me more", "fascinating", "intriguing",
		"captivated", "engaged", "absorbed", "hooked", "drawn to", "enthralled"},
	"flirting": {"flirt", "tease", "wink", "handsome", "beautiful", "cute", "hot", "sexy", "attractive",
		"charming", "stunning", "gorgeous", "pretty", "date", "smooch", "kiss", "hug", "hold"},
	"trust":         {"trust", "believe", "faith", "rely", "depend", "confide", "open up", "vulnerable", "honest"},
	"longing":       {"yearn", "desire", "want", "need", "crave", "long for", "wish", "dream of", "pine for"},
	"comfort":       {"safe", "comfort", "secure", "peaceful", "calm", "relaxed", "soothed", "at ease"},
	"vulnerability": {"vulnerable", "exposed", "raw", "emotional", "sensitive", "fragile", "delicate", "tender"},
	"connection":    {"connected", "bond", "close", "intimate", "together", "relationship", "us", "we", "our"},
	"pride":         {"proud", "accomplished", "achievement", "success", "triumph", "pleased", "honor", "dignity"},
	"embarrassment": {"embarrassed", "shy", "blush", "awkward", "uncomfortable", "self-conscious", "nervous"},
	"jealousy":      {"jealous", "envious", "possessive", "protective", "threatened", "compared", "competition"},
	"hope":          {"hope", "optimistic", "looking forward", "anticipate", "expect", "wish", "future", "dream"},
}

// Categories that raise or lower the sentiment score.
var (
	positiveCategories = []string{"love", "affection", "happiness", "admiration", "gratitude",
		"interest", "flirting", "trust", "comfort", "connection", "pride", "hope"}
	negativeCategories = []string{"sadness", "anger", "fear", "jealousy"}
)
