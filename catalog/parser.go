package catalog

import (
	"fmt"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/yaml.v3"

	"github.com/boolean-maybe/structsearch/search"
	"github.com/boolean-maybe/structsearch/store"
)

// parseFile parses filters.yaml data
func parseFile(data []byte, source string) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	return &f, nil
}

// Build turns a parsed file into a filter forest. Values of filters that
// suggest from the store are registered with st.
func Build(f *File, source string, st store.OptionStore) (*Catalog, error) {
	if len(f.Filters) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoFilters)
	}

	operators, err := operatorIndex(f.Operators)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	b := &builder{operators: operators, defaults: f.Operators, store: st}
	filters, err := b.buildLevel(f.Filters, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	defaultKey := f.DefaultQueryKey
	if defaultKey == "" {
		defaultKey = search.DefaultQueryKey
	}
	if search.ContainsOperatorChar(defaultKey) {
		return nil, fmt.Errorf("%s: default query key %q contains an operator character", source, defaultKey)
	}

	return &Catalog{DefaultQueryKey: defaultKey, Filters: filters, Source: source}, nil
}

func operatorIndex(ops []OptionConfig) (map[string]search.Option, error) {
	index := make(map[string]search.Option, len(ops))
	for i, op := range ops {
		if op.Key == "" {
			return nil, fmt.Errorf("operator %d missing key", i)
		}
		if strings.Trim(op.Key, search.OperatorChars) != "" {
			return nil, fmt.Errorf("operator %q must consist of operator characters", op.Key)
		}
		if _, dup := index[op.Key]; dup {
			return nil, fmt.Errorf("duplicate operator %q", op.Key)
		}
		index[op.Key] = toOption(op)
	}
	return index, nil
}

type builder struct {
	operators map[string]search.Option
	defaults  []OptionConfig
	store     store.OptionStore
}

func (b *builder) buildLevel(configs []FilterConfig, parent string) ([]*search.Filter, error) {
	seen := mapset.NewThreadUnsafeSet[string]()
	filters := make([]*search.Filter, 0, len(configs))
	for i, cfg := range configs {
		if cfg.Key == "" {
			return nil, fmt.Errorf("filter %d under %q missing key", i, parent)
		}
		if search.ContainsOperatorChar(cfg.Key) {
			return nil, fmt.Errorf("filter %q: key contains an operator character", cfg.Key)
		}
		if !seen.Add(cfg.Key) {
			return nil, fmt.Errorf("duplicate filter %q under %q", cfg.Key, parent)
		}
		f, err := b.buildFilter(cfg)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func (b *builder) buildFilter(cfg FilterConfig) (*search.Filter, error) {
	f := &search.Filter{
		Option: search.Option{
			Key:          cfg.Key,
			Name:         cfg.Name,
			Icon:         cfg.Icon,
			SubText:      cfg.SubText,
			DisabledHint: cfg.DisabledHint,
			Disabled:     whenPresent(cfg.DisabledWhen),
			Hidden:       whenPresent(cfg.HiddenWhen),
		},
		TagColor:        cfg.TagColor,
		HasMultiOptions: cfg.Multi,
	}

	if len(cfg.Children) > 0 {
		if len(cfg.Operators) > 0 || len(cfg.Options) > 0 || len(cfg.Values) > 0 {
			return nil, fmt.Errorf("group %q cannot have operators or values", cfg.Key)
		}
		children, err := b.buildLevel(cfg.Children, cfg.Key)
		if err != nil {
			return nil, err
		}
		f.Children = children
		return f, nil
	}

	operators, err := b.resolveOperators(cfg)
	if err != nil {
		return nil, err
	}
	f.Operators = operators

	options := make([]search.Option, 0, len(cfg.Options)+len(cfg.Values))
	for _, opt := range cfg.Options {
		options = append(options, toOption(opt))
	}
	for _, v := range cfg.Values {
		options = append(options, search.Option{Key: v, Name: v})
	}

	switch cfg.Suggest {
	case "", SuggestStatic:
		f.Options = options
	case SuggestPrefix:
		f.OptionsFunc = prefixOptions(options)
	case SuggestStore:
		if b.store == nil {
			return nil, fmt.Errorf("filter %q suggests from the store but none is configured", cfg.Key)
		}
		for _, opt := range options {
			b.store.AddValue(cfg.Key, opt.Key)
		}
		f.Typeahead = store.Provider(b.store, cfg.Key)
	default:
		return nil, fmt.Errorf("filter %q: unknown suggest mode %q", cfg.Key, cfg.Suggest)
	}
	return f, nil
}

// resolveOperators maps operator references to their definitions. A leaf
// without operators gets the first catalog operator, or "=".
func (b *builder) resolveOperators(cfg FilterConfig) ([]search.Option, error) {
	if len(cfg.Operators) == 0 {
		if len(b.defaults) > 0 {
			return []search.Option{toOption(b.defaults[0])}, nil
		}
		return []search.Option{{Key: search.FreeTextOperator, Name: search.FreeTextOperator}}, nil
	}

	ops := make([]search.Option, 0, len(cfg.Operators))
	for _, key := range cfg.Operators {
		op, ok := b.operators[key]
		if !ok {
			return nil, fmt.Errorf("filter %q: unknown operator %q", cfg.Key, key)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func toOption(cfg OptionConfig) search.Option {
	return search.Option{Key: cfg.Key, Name: cfg.Name, Icon: cfg.Icon, SubText: cfg.SubText}
}

// whenPresent returns a predicate that holds while any token uses one of keys.
func whenPresent(keys []string) search.Predicate {
	if len(keys) == 0 {
		return nil
	}
	set := mapset.NewThreadUnsafeSet(keys...)
	return func(tokens []string) bool {
		return slices.ContainsFunc(tokens, func(token string) bool {
			return set.Contains(search.Decode(token).FilterKey)
		})
	}
}

// prefixOptions narrows options to those whose key or name starts with the
// typed text, ignoring case.
func prefixOptions(options []search.Option) search.OptionsFunc {
	return func(text string) []search.Option {
		prefix := strings.ToLower(strings.TrimSpace(text))
		if prefix == "" {
			return options
		}
		var out []search.Option
		for _, opt := range options {
			if strings.HasPrefix(strings.ToLower(opt.Key), prefix) ||
				strings.HasPrefix(strings.ToLower(opt.Name), prefix) {
				out = append(out, opt)
			}
		}
		return out
	}
}
