package domain

import "sort"

// SummaryEntry aggregates every packing item and bag item of a trip that
// share a name and category.
type SummaryEntry struct {
	Name          string
	Category      Category
	Count         int
	Packed        bool // true only when every contributing row is packed
	OnPackingList bool
	Bags          []string
}

// SummaryCategory holds the entries of one category.
type SummaryCategory struct {
	Category Category
	Entries  []SummaryEntry
}

// TripSummary is the consolidated, trip-wide view of what to pack.
type TripSummary struct {
	TotalItems  int
	PackedItems int
	Categories  []SummaryCategory
}

type summaryKey struct {
	name     string
	category Category
}

// Summarize merges packing items and bag items, grouping by (name, category).
// Categories appear in enumeration order; entries within a category keep
// first-seen order, packing items before bag items.
func Summarize(items []PackingItem, bags []Bag) TripSummary {
	var (
		sum   TripSummary
		order []summaryKey
		index = map[summaryKey]*SummaryEntry{}
	)

	add := func(name string, cat Category, packed bool) *SummaryEntry {
		sum.TotalItems++
		if packed {
			sum.PackedItems++
		}
		k := summaryKey{name: name, category: cat}
		e, ok := index[k]
		if !ok {
			e = &SummaryEntry{Name: name, Category: cat, Packed: true, Bags: []string{}}
			index[k] = e
			order = append(order, k)
		}
		e.Count++
		e.Packed = e.Packed && packed
		return e
	}

	for _, it := range items {
		add(it.Name, it.Category, it.IsPacked).OnPackingList = true
	}
	for _, b := range bags {
		for _, it := range b.Items {
			e := add(it.Name, it.Category, it.Packed)
			if !contains(e.Bags, b.Name) {
				e.Bags = append(e.Bags, b.Name)
			}
		}
	}

	byCategory := map[Category]*SummaryCategory{}
	for _, k := range order {
		sc, ok := byCategory[k.category]
		if !ok {
			sc = &SummaryCategory{Category: k.category}
			byCategory[k.category] = sc
		}
		sc.Entries = append(sc.Entries, *index[k])
	}

	sum.Categories = make([]SummaryCategory, 0, len(byCategory))
	for _, sc := range byCategory {
		sum.Categories = append(sum.Categories, *sc)
	}
	sort.Slice(sum.Categories, func(i, j int) bool {
		ri, rj := sum.Categories[i].Category.rank(), sum.Categories[j].Category.rank()
		if ri != rj {
			return ri < rj
		}
		return sum.Categories[i].Category < sum.Categories[j].Category
	})
	return sum
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
