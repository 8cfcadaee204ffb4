// Package anon derives stable anonymous display names.
//
// A pseudonym is a pure function of (user id, entity type, entity id): the
// same user always appears under the same name within an entity's thread,
// without a pseudonym table anywhere. Nothing here touches the network or
// storage, so callers may recompute on every render.
package anon

import "strconv"

// SentinelName is returned when no stable user identifier is available.
const SentinelName = "Anonymous User"

// stems is the fixed, ordered list of name stems a hash indexes into.
// Order matters: changing it changes every derived pseudonym.
var stems = []string{
	"Senior Student",
	"Campus Explorer",
	"Night Owl",
	"Library Regular",
	"Quiet Achiever",
	"Coffee Scholar",
	"Study Buddy",
	"Curious Mind",
	"Future Grad",
	"Bold Thinker",
	"Lecture Lurker",
	"Deadline Dancer",
	"Lab Partner",
	"Campus Legend",
	"Wandering Fresher",
	"Exam Survivor",
}

// Pseudonym returns the anonymous display name for userID within the scope of
// one entity, formatted as "{stem} {number}" with 1 <= number <= 999.
// An empty userID yields SentinelName.
func Pseudonym(userID, entityType, entityID string) string {
	if userID == "" {
		return SentinelName
	}
	h := hash(userID + entityType + entityID)
	stem := stems[h%int64(len(stems))]
	suffix := h%999 + 1
	return stem + " " + strconv.FormatInt(suffix, 10)
}

// hash computes a non-negative 32-bit polynomial rolling hash of s.
// Runes are treated as opaque code points; any input is fine.
func hash(s string) int64 {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r) // wraps, masking to 32 bits
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return n
}
