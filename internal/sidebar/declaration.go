package sidebar

// NotesSidebar is the id the navbar's Notes item points at.
const NotesSidebar = "notes"

// Declaration returns the site's literal sidebar registry. Each call builds
// a fresh tree.
func Declaration() *Registry {
	r := NewRegistry()
	_ = r.Add(NotesSidebar,
		NewDoc("readme", "README"),
		NewCategory("C",
			NewDoc("C/C-style-string", "C style string"),
		).WithIndex("/C"),
		NewCategory("Computer Architecture",
			NewDoc("computer-architecture/big-and-little-endian", "Big and Little Endian"),
			NewDoc("computer-architecture/instruction-set-architecture", "Instruction Set Architecture"),
		).WithIndex("/computer-architecture"),
		NewCategory("Data structures and Algorithms",
			NewDoc("dsa/asymptotic-notation", "Asymptotic Notation"),
			NewCategory("Sortings",
				NewDoc("dsa/sortings/insertion-sort", "Insertion Sort"),
				NewDoc("dsa/sortings/selection-sort", "Selection Sort"),
				NewDoc("dsa/sortings/mergesort", "Mergesort"),
				NewDoc("dsa/sortings/quicksort", "Quicksort"),
			),
			NewDoc("dsa/probability-review", "Probability Review"),
		).WithIndex("/dsa"),
	)
	return r
}
