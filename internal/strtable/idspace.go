package strtable

// The game reserves a contiguous id range for mod strings. The range is
// partitioned into numbered sub-spaces of 1000 ids each so that
// independently authored mods can stay out of each other's way.
const (
	ModIDRangeStart = 2110000000
	ModIDRangeEnd   = 2120000000
	IDSpaceWidth    = 1000
	IDSpaceCount    = (ModIDRangeEnd - ModIDRangeStart) / IDSpaceWidth
)

// IsVanillaID reports whether id belongs to the base game rather than the
// reserved modding range.
func IsVanillaID(id int) bool {
	return id < ModIDRangeStart || id >= ModIDRangeEnd
}

// IDSpaceOf returns the sub-space number for a mod-range id. The second
// return is false for vanilla ids, which belong to no sub-space.
func IDSpaceOf(id int) (int, bool) {
	if IsVanillaID(id) {
		return 0, false
	}
	return (id - ModIDRangeStart) / IDSpaceWidth, true
}

// IDSpaceBase returns the first id of a sub-space.
func IDSpaceBase(space int) int {
	return ModIDRangeStart + space*IDSpaceWidth
}

// ValidIDSpace reports whether space is a legal sub-space number.
func ValidIDSpace(space int) bool {
	return space >= 0 && space < IDSpaceCount
}
