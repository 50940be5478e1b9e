package lower

import (
	"sort"

	"tmc/token"
)

// ReuseTemps performs stage E's temp-reuse half: for every temp in fn,
// compute its [firstUse, lastUse] interval over the function body (in
// textual/line order, ignoring which branch of an if/else is actually
// taken at runtime — the same conservative sweep spec.md 4.E describes),
// then greedily color overlapping intervals to the smallest free slot,
// producing a renaming to temp0..temp(k-1) with k equal to the maximum
// overlap. Declaration hoisting and the return-to-RAX rewrite (the rest of
// stage E) happen in callconv.go, alongside stage F, since both need the
// same "every variable this function ever touches" inventory.
func ReuseTemps(fn *FlatFunc) {
	type interval struct{ first, last int }
	intervals := map[string]*interval{}

	idx := 0
	touch := func(name string) {
		if !token.IsTemp(name) {
			return
		}
		if iv, ok := intervals[name]; ok {
			iv.last = idx
		} else {
			intervals[name] = &interval{first: idx, last: idx}
		}
	}
	walkFlat(fn.Body, func(n Flat) {
		switch f := n.(type) {
		case *FAssignVar:
			touch(f.Dst)
			touch(f.Src)
		case *FAssignLit:
			touch(f.Dst)
		case *FUnary:
			touch(f.X)
			touch(f.Dst)
		case *FCall:
			for _, a := range f.Args {
				touch(a)
			}
			touch(f.Dst)
		case *FIf:
			touch(f.Cond)
		case *FReturn:
			touch(f.Value)
		}
		idx++
	})

	names := make([]string, 0, len(intervals))
	for n := range intervals {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		return intervals[names[i]].first < intervals[names[j]].first
	})

	colorOf := map[string]int{}
	type active struct {
		name  string
		last  int
		color int
	}
	var actives []active
	for _, name := range names {
		iv := intervals[name]
		// Release colors whose interval has already closed.
		kept := actives[:0]
		freed := map[int]bool{}
		for _, a := range actives {
			if a.last < iv.first {
				freed[a.color] = true
			} else {
				kept = append(kept, a)
			}
		}
		actives = kept

		used := map[int]bool{}
		for _, a := range actives {
			used[a.color] = true
		}
		color := 0
		for used[color] {
			color++
		}
		colorOf[name] = color
		actives = append(actives, active{name: name, last: iv.last, color: color})
	}

	fn.Body = renameVars(fn.Body, func(name string) string {
		if !token.IsTemp(name) {
			return name
		}
		c, ok := colorOf[name]
		if !ok {
			return name
		}
		return token.TempName(c)
	})
}
