package placeholder

import "github.com/yaklabco/tmplpatch/pkg/sample"

// GenerateDummyData builds sample data for every name referenced by source
// using the default resolver.
func GenerateDummyData(source string, lookup sample.Lookup) Data {
	return defaultResolver.GenerateDummyData(source, lookup)
}

// GenerateDummyData builds a Data tree holding one sample value per
// collected name. The value is chosen by lookup from the last path segment
// and stored at the full dotted path. A nil lookup uses sample.Default.
//
// Names are applied in collection order, so a bare name that is also the
// prefix of a later path is replaced by the nested map for that path.
func (r *Resolver) GenerateDummyData(source string, lookup sample.Lookup) Data {
	if lookup == nil {
		lookup = sample.Default()
	}
	data := Data{}
	for _, name := range r.CollectNames(source) {
		data.Set(name, lookup.Value(sample.LastSegment(name)))
	}
	return data
}
