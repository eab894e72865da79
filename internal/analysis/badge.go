package analysis

// Badge is a non-exclusive achievement earned by a set of marks.
type Badge string

const (
	BadgeGold        Badge = "Gold Medalist"
	BadgeSilver      Badge = "Silver Achiever"
	BadgeBronze      Badge = "Bronze Performer"
	BadgeConsistency Badge = "Consistency Champion"
	BadgePerfect     Badge = "Perfect Score"
	BadgeAllRounder  Badge = "All-Rounder"
)

// AllBadges returns every badge in award order.
func AllBadges() []Badge {
	return []Badge{BadgeGold, BadgeSilver, BadgeBronze, BadgeConsistency, BadgePerfect, BadgeAllRounder}
}

// Icon returns the display icon for the badge.
func (b Badge) Icon() string {
	switch b {
	case BadgeGold:
		return "🥇"
	case BadgeSilver:
		return "🥈"
	case BadgeBronze:
		return "🥉"
	case BadgeConsistency:
		return "🎯"
	case BadgePerfect:
		return "💯"
	case BadgeAllRounder:
		return "🌈"
	default:
		return "✦"
	}
}

// awardBadges evaluates every badge rule in order. The medal badges are
// mutually exclusive; the rest are independent. The result is never nil.
func awardBadges(percentage float64, stats Stats, values []int) []Badge {
	out := make([]Badge, 0, 4)

	switch {
	case percentage >= 90:
		out = append(out, BadgeGold)
	case percentage >= 80:
		out = append(out, BadgeSilver)
	case percentage >= 70:
		out = append(out, BadgeBronze)
	}

	if stats.StdDev < 8 {
		out = append(out, BadgeConsistency)
	}
	if stats.Max == 100 {
		out = append(out, BadgePerfect)
	}

	allRounder := true
	for _, v := range values {
		if v < 75 {
			allRounder = false
			break
		}
	}
	if allRounder {
		out = append(out, BadgeAllRounder)
	}

	return out
}
