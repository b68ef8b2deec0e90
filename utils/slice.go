package utils

import "slices"

func Filter[T any](s []T, f func(T) bool) []T {
	var r []T
	for _, v := range s {
		if f(v) {
			r = append(r, v)
		}
	}
	return r
}

func Map[T, U any](s []T, f func(T) U) []U {
	r := make([]U, len(s))
	for i, v := range s {
		r[i] = f(v)
	}
	return r
}

func Flat[T any](s [][]T) []T {
	var r []T
	for _, v := range s {
		r = append(r, v...)
	}
	return r
}

func Contains[T comparable](s []T, el T) bool {
	return slices.Contains(s, el)
}
