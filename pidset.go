package kp

import "sort"

// PIDSet is a deduplicated set of process IDs.
// The zero value is not usable; create one with NewPIDSet.
type PIDSet map[int]struct{}

// NewPIDSet returns a set holding the positive values of pids.
func NewPIDSet(pids ...int) PIDSet {
	s := make(PIDSet, len(pids))
	s.Merge(pids)
	return s
}

// Add inserts pid and reports whether it was new.
// Zero and negative values are never stored.
func (s PIDSet) Add(pid int) bool {
	if pid <= 0 {
		return false
	}
	if _, ok := s[pid]; ok {
		return false
	}
	s[pid] = struct{}{}
	return true
}

// Merge adds every pid and returns how many were new.
func (s PIDSet) Merge(pids []int) int {
	added := 0
	for _, pid := range pids {
		if s.Add(pid) {
			added++
		}
	}
	return added
}

// Contains reports whether pid is in the set.
func (s PIDSet) Contains(pid int) bool {
	_, ok := s[pid]
	return ok
}

// Len returns the number of PIDs in the set.
func (s PIDSet) Len() int {
	return len(s)
}

// Sorted returns the PIDs in ascending order.
func (s PIDSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for pid := range s {
		out = append(out, pid)
	}
	sort.Ints(out)
	return out
}
