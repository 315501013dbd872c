package utils

// AppendUnique adds value to slice unless it is already present, giving
// plain slices set semantics.
func AppendUnique[T comparable](slice []T, value T) []T {
	for _, v := range slice {
		if v == value {
			return slice
		}
	}
	return append(slice, value)
}

// RemoveValue removes the first occurrence of value from slice.
func RemoveValue[T comparable](slice []T, value T) []T {
	for i, v := range slice {
		if v == value {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}

// Contains reports whether slice holds value.
func Contains[T comparable](slice []T, value T) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}
