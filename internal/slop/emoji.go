package slop

// countEmoji runs on the input as given, before lowercasing.
// Bullets are lines whose first non-space character is a pictograph or a
// shortcode; dingbats and misc symbols count as emoji but not as bullets.
func countEmoji(text string) (count int, asBullets bool) {
	count = len(emojiPattern.FindAllStringIndex(text, -1))
	asBullets = emojiBulletPattern.MatchString(text)
	return count, asBullets
}
