package desc

import "fmt"

// Version is a class file format version. It governs which instructions
// and constant kinds a generated type may use.
type Version struct {
	Major uint16
	Minor uint16
}

// Known class file versions.
var (
	V1_1 = Version{Major: 45, Minor: 3}
	V1_4 = Version{Major: 48}
	V1_5 = Version{Major: 49}
	V1_6 = Version{Major: 50}
	V1_7 = Version{Major: 51}
	V1_8 = Version{Major: 52}
	V11  = Version{Major: 55}
	V17  = Version{Major: 61}
	V21  = Version{Major: 65}
)

// ForJava returns the class file version emitted by the given Java release (1.1 through 21+).
func ForJava(release int) (Version, error) {
	switch {
	case release == 1:
		return V1_1, nil
	case release >= 2 && release < 1000:
		return Version{Major: uint16(44 + release)}, nil
	}
	return Version{}, fmt.Errorf("unknown java release %d", release)
}

// AtLeast reports whether v is the same as or newer than other.
func (v Version) AtLeast(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	return v.Minor >= other.Minor
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
