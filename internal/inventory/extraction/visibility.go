package extraction

import "strings"

// Visibility classifies a Python identifier:
//   - dunder:  starts and ends with "__" and is longer than 4 characters
//   - private: starts with "_" (but is not dunder)
//   - public:  everything else
func Visibility(name string) string {
	if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") && len(name) > 4 {
		return VisibilityDunder
	}
	if strings.HasPrefix(name, "_") {
		return VisibilityPrivate
	}
	return VisibilityPublic
}
