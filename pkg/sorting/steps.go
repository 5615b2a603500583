package sorting

import "iter"

// Steps returns the step sequence of alg over values. The sequence sorts
// values in place as it is consumed; abandoning it early leaves values
// partially sorted. An unknown algorithm yields nothing.
func Steps(values []int, alg Algorithm) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		s := &stepper{a: values, yield: yield}
		switch alg {
		case Bubble:
			s.bubble()
		case Selection:
			s.selection()
		case Insertion:
			s.insertion()
		case Merge:
			s.mergeSort(0, len(values)-1)
		case Quick:
			s.quickSort(0, len(values)-1)
		case Heap:
			s.heap()
		}
	}
}

// Sort sorts values in place with alg, discarding the steps.
func Sort(values []int, alg Algorithm) {
	for range Steps(values, alg) {
	}
}

type stepper struct {
	a     []int
	yield func(Step) bool
	done  bool
}

// emit forwards a step unless the consumer has stopped.
func (s *stepper) emit(kind StepKind, indices ...int) bool {
	if s.done {
		return false
	}
	if !s.yield(Step{Kind: kind, Indices: indices}) {
		s.done = true
	}
	return !s.done
}

func (s *stepper) swap(i, j int) {
	s.a[i], s.a[j] = s.a[j], s.a[i]
}

func (s *stepper) bubble() {
	n := len(s.a)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if !s.emit(Checkpoint) || !s.emit(Compare, j, j+1) {
				return
			}
			if s.a[j] > s.a[j+1] {
				if !s.emit(Swap, j, j+1) {
					return
				}
				s.swap(j, j+1)
				if !s.emit(Commit, j, j+1) {
					return
				}
			}
			if !s.emit(Clear, j, j+1) {
				return
			}
		}
		if !s.emit(Sorted, n-1-i) {
			return
		}
	}
	if n > 0 {
		s.emit(Sorted, 0)
	}
}

func (s *stepper) selection() {
	n := len(s.a)
	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			if !s.emit(Checkpoint) || !s.emit(Compare, j, minIdx) {
				return
			}
			if s.a[j] < s.a[minIdx] {
				minIdx = j
			}
			if !s.emit(Clear, j) {
				return
			}
		}
		if minIdx != i {
			if !s.emit(Swap, i, minIdx) {
				return
			}
			s.swap(i, minIdx)
			if !s.emit(Commit, i, minIdx) {
				return
			}
		}
		if !s.emit(Clear, i, minIdx) || !s.emit(Sorted, i) {
			return
		}
	}
	if n > 0 {
		s.emit(Sorted, n-1)
	}
}

func (s *stepper) insertion() {
	n := len(s.a)
	if n == 0 || !s.emit(Sorted, 0) {
		return
	}
	for i := 1; i < n; i++ {
		key := s.a[i]
		j := i - 1
		if !s.emit(Compare, i) {
			return
		}
		for j >= 0 && s.a[j] > key {
			if !s.emit(Checkpoint) || !s.emit(Swap, j, j+1) {
				return
			}
			s.a[j+1] = s.a[j]
			if !s.emit(Commit, j+1) {
				return
			}
			j--
		}
		s.a[j+1] = key
		if !s.emit(Commit, j+1) || !s.emit(Clear, i, j+1) || !s.emit(Sorted, i) {
			return
		}
	}
}

func (s *stepper) mergeSort(left, right int) {
	if left >= right || s.done {
		return
	}
	mid := (left + right) / 2
	s.mergeSort(left, mid)
	s.mergeSort(mid+1, right)
	s.merge(left, mid, right)
}

func (s *stepper) merge(left, mid, right int) {
	if s.done {
		return
	}
	l := append([]int(nil), s.a[left:mid+1]...)
	r := append([]int(nil), s.a[mid+1:right+1]...)

	i, j, k := 0, 0, left
	for i < len(l) && j < len(r) {
		if !s.emit(Checkpoint) || !s.emit(Compare, k) {
			return
		}
		if l[i] <= r[j] {
			s.a[k] = l[i]
			i++
		} else {
			s.a[k] = r[j]
			j++
		}
		if !s.emit(Commit, k) || !s.emit(Clear, k) {
			return
		}
		k++
	}
	for ; i < len(l); i, k = i+1, k+1 {
		s.a[k] = l[i]
		if !s.emit(Commit, k) {
			return
		}
	}
	for ; j < len(r); j, k = j+1, k+1 {
		s.a[k] = r[j]
		if !s.emit(Commit, k) {
			return
		}
	}
}

func (s *stepper) quickSort(low, high int) {
	if low >= high || s.done {
		return
	}
	p, ok := s.partition(low, high)
	if !ok {
		return
	}
	s.quickSort(low, p-1)
	s.quickSort(p+1, high)
}

func (s *stepper) partition(low, high int) (int, bool) {
	pivot := s.a[high]
	i := low - 1
	for j := low; j < high; j++ {
		if !s.emit(Checkpoint) || !s.emit(Compare, j, high) {
			return 0, false
		}
		if s.a[j] < pivot {
			i++
			if i != j {
				if !s.emit(Swap, i, j) {
					return 0, false
				}
				s.swap(i, j)
				if !s.emit(Commit, i, j) {
					return 0, false
				}
			}
		}
		clearIdx := []int{j, high}
		if i >= 0 {
			clearIdx = append(clearIdx, i)
		}
		if !s.emit(Clear, clearIdx...) {
			return 0, false
		}
	}
	s.swap(i+1, high)
	if !s.emit(Commit, i+1, high) {
		return 0, false
	}
	return i + 1, true
}

func (s *stepper) heap() {
	n := len(s.a)
	for i := n/2 - 1; i >= 0; i-- {
		if !s.heapify(n, i) {
			return
		}
	}
	for i := n - 1; i > 0; i-- {
		if !s.emit(Checkpoint) || !s.emit(Swap, 0, i) {
			return
		}
		s.swap(0, i)
		if !s.emit(Commit, 0, i) || !s.emit(Sorted, i) {
			return
		}
		if !s.heapify(i, 0) || !s.emit(Clear, 0, i) {
			return
		}
	}
	if n > 0 {
		s.emit(Sorted, 0)
	}
}

// heapify sifts a[i] down within a[:n].
func (s *stepper) heapify(n, i int) bool {
	for {
		largest := i
		left, right := 2*i+1, 2*i+2
		if left < n && s.a[left] > s.a[largest] {
			largest = left
		}
		if right < n && s.a[right] > s.a[largest] {
			largest = right
		}
		if largest == i {
			return true
		}
		if !s.emit(Swap, i, largest) {
			return false
		}
		s.swap(i, largest)
		if !s.emit(Commit, i, largest) || !s.emit(Clear, i, largest) {
			return false
		}
		i = largest
	}
}
