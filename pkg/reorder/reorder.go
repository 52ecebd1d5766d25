// Package reorder has the small slice helpers shared by every drag-and-drop
// surface. All functions return new slices and leave their input untouched.
package reorder

// Move relocates the element at from to index to. Out of range indexes
// return an unchanged copy.
func Move[T any](list []T, from, to int) []T {
	out := make([]T, len(list))
	copy(out, list)
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) || from == to {
		return out
	}
	item := out[from]
	out = append(out[:from], out[from+1:]...)
	return Insert(out, to, item)
}

// Insert places item at index, clamping index into [0, len(list)].
func Insert[T any](list []T, index int, item T) []T {
	if index < 0 {
		index = 0
	}
	if index > len(list) {
		index = len(list)
	}
	out := make([]T, 0, len(list)+1)
	out = append(out, list[:index]...)
	out = append(out, item)
	out = append(out, list[index:]...)
	return out
}

// RemoveAt drops the element at index; out of range returns a copy.
func RemoveAt[T any](list []T, index int) []T {
	out := make([]T, 0, len(list))
	for i, v := range list {
		if i != index {
			out = append(out, v)
		}
	}
	return out
}

// IndexFunc returns the first index where match is true, or -1.
func IndexFunc[T any](list []T, match func(T) bool) int {
	for i, v := range list {
		if match(v) {
			return i
		}
	}
	return -1
}

// MoveByKey moves the element keyed active to the position of the element
// keyed over. Unknown keys return an unchanged copy.
func MoveByKey[T any, K comparable](list []T, key func(T) K, active, over K) []T {
	from := IndexFunc(list, func(v T) bool { return key(v) == active })
	to := IndexFunc(list, func(v T) bool { return key(v) == over })
	return Move(list, from, to)
}
