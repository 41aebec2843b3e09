package cache

import "fmt"

// messagePrefixLen bounds how much of the user message feeds the fingerprint.
// Responses are coarse-grained, so a bounded prefix plus presence flags is
// enough to distinguish requests without hashing full payloads.
const messagePrefixLen = 100

// Fingerprint derives a short, stable cache key from the bounded subset of
// request fields that determine response semantics: a prefix of the message
// text, the conversation length, and which modalities are present. Image and
// audio payloads contribute presence only, never content, which keeps key
// computation O(1) in payload size.
//
// Collisions across distinct conversations sharing the same prefix, history
// length, and modality flags are possible and accepted: a collision degrades
// cache correctness for at most one TTL window, it does not violate any
// invariant.
func Fingerprint(message string, historyLen int, hasImage, hasAudio, hasWearables bool) string {
	prefix := message
	if runes := []rune(message); len(runes) > messagePrefixLen {
		prefix = string(runes[:messagePrefixLen])
	}

	canonical := fmt.Sprintf("%s_%d_%t_%t_%t", prefix, historyLen, hasImage, hasAudio, hasWearables)

	// 32-bit multiply-add rolling hash over the canonical string.
	var h int32
	for _, c := range canonical {
		h = h*31 + int32(c)
	}
	// Widen before negating so math.MinInt32 has an absolute value.
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return fmt.Sprintf("cache_%d", v)
}
