package videos

import "slices"

// Reaction is a user's opinion of a video.
type Reaction int

const (
	ReactionLike Reaction = iota
	ReactionDislike
)

func (r Reaction) String() string {
	if r == ReactionDislike {
		return "dislike"
	}
	return "like"
}

// ToggleReaction applies a like or dislike from userID to the two reaction
// sets and returns the new sets. The opposite reaction is always cleared;
// the requested one is added, or removed if the user already had it.
// The inputs are not modified.
func ToggleReaction(likedBy, dislikedBy []string, userID string, r Reaction) ([]string, []string) {
	target, opposite := likedBy, dislikedBy
	if r == ReactionDislike {
		target, opposite = dislikedBy, likedBy
	}

	opposite = without(opposite, userID)
	if slices.Contains(target, userID) {
		target = without(target, userID)
	} else {
		target = append(slices.Clone(target), userID)
	}

	if r == ReactionDislike {
		return opposite, target
	}
	return target, opposite
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
