package emotion

import "strings"

// Label names a mood value on the 1..10 scale.
func Label(mood float64) string {
	switch {
	case mood >= 9:
		return "Ecstatic"
	case mood >= 8:
		return "Very happy"
	case mood >= 7:
		return "Happy"
	case mood >= 6:
		return "Content"
	case mood >= 5:
		return "Neutral"
	case mood >= 4:
		return "Slightly annoyed"
	case mood >= 3:
		return "Frustrated"
	case mood >= 2:
		return "Upset"
	default:
		return "Angry"
	}
}

// LabelEmoji is Label prefixed with a matching emoji for display.
func LabelEmoji(mood float64) string {
	switch {
	case mood >= 9:
		return "😍 Ecstatic"
	case mood >= 8:
		return "😄 Very happy"
	case mood >= 7:
		return "😊 Happy"
	case mood >= 6:
		return "🙂 Content"
	case mood >= 5:
		return "😐 Neutral"
	case mood >= 4:
		return "😕 Slightly annoyed"
	case mood >= 3:
		return "😒 Frustrated"
	case mood >= 2:
		return "😠 Upset"
	default:
		return "😡 Angry"
	}
}

// StatBar renders a value as a filled bar out of max, e.g. "███████░░░".
func StatBar(value, max int) string {
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	return strings.Repeat("█", value) + strings.Repeat("░", max-value)
}

// RelationshipStatus describes the relationship from the current mood and
// how long the two have been talking.
func RelationshipStatus(mood float64, conversationCount int) string {
	m := int(mood)
	switch {
	case conversationCount < 3:
		switch {
		case m >= 7:
			return "Getting to know each other (Positive)"
		case m >= 5:
			return "Just met (Neutral)"
		default:
			return "Awkward introduction (Tense)"
		}
	case conversationCount < 10:
		switch {
		case m >= 8:
			return "Building strong connection"
		case m >= 6:
			return "Becoming friends"
		case m >= 4:
			return "Casual acquaintances"
		default:
			return "Relationship is strained"
		}
	default:
		switch {
		case m >= 9:
			return "Deep emotional bond"
		case m >= 7:
			return "Close friends"
		case m >= 5:
			return "Regular companions"
		case m >= 3:
			return "Complicated relationship"
		default:
			return "Relationship needs repair"
		}
	}
}
