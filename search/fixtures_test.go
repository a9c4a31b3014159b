package search

var (
	opEqual    = Option{Key: "=", Name: "=", SubText: "is"}
	opNotEqual = Option{Key: "!=", Name: "!=", SubText: "is not"}
)

func domainOnlyForest() []*Filter {
	return []*Filter{
		{
			Option:    Option{Key: "domain", Name: "Domain"},
			Operators: []Option{opEqual, opNotEqual},
			Options:   []Option{{Key: "a", Name: "a"}, {Key: "b", Name: "b"}},
		},
	}
}

// groupedForest mirrors a catalog with two groups sharing an author filter.
func groupedForest() []*Filter {
	author := func() *Filter {
		return &Filter{
			Option:    Option{Key: "author", Name: "Author"},
			Operators: []Option{opEqual},
		}
	}
	return []*Filter{
		{
			Option: Option{Key: "attributes", Name: "Attributes"},
			Children: []*Filter{
				{
					Option:          Option{Key: "domain", Name: "Domain"},
					Operators:       []Option{opEqual, opNotEqual},
					Options:         []Option{{Key: "x"}, {Key: "y"}, {Key: "z"}},
					HasMultiOptions: true,
				},
				author(),
				{
					Option: Option{Key: "nested", Name: "Nested"},
					Children: []*Filter{
						{Option: Option{Key: "leaf"}, Operators: []Option{opEqual}},
					},
				},
			},
		},
		{
			Option: Option{Key: "segments", Name: "Segments"},
			Children: []*Filter{
				{Option: Option{Key: "namespace"}, Operators: []Option{opEqual, opNotEqual}},
				author(),
			},
		},
		author(),
	}
}
