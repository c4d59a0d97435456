package slice

// FindIndex returns the first index of vs that matches t, or -1.
func FindIndex(vs []string, t string) int {
	for i, v := range vs {
		if v == t {
			return i
		}
	}

	return -1
}

// Contains returns true if the string exists in the slice and false otherwise
func Contains(vs []string, t string) bool {
	return FindIndex(vs, t) > -1
}
