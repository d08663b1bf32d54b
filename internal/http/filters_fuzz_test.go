package httpserver

import (
	"net/url"
	"testing"
)

func FuzzBuildStoreFilters(f *testing.F) {
	f.Add("name=corner&address=main&sortBy=ratings&order=DESC")
	f.Add("sortBy=bogus")
	f.Add("name=%20%20&order=")
	f.Add("name=a&name=b")
	f.Add("%zz")

	f.Fuzz(func(t *testing.T, raw string) {
		query, err := url.ParseQuery(raw)
		if err != nil {
			t.Skip()
		}
		filters := buildStoreFilters(query)

		// Set pointers always carry trimmed, non-empty values.
		if filters.Name != nil && *filters.Name == "" {
			t.Fatalf("Name set to empty string for query %q", raw)
		}
		if filters.Address != nil && *filters.Address == "" {
			t.Fatalf("Address set to empty string for query %q", raw)
		}
		if filters.IncludeOwner {
			t.Fatalf("IncludeOwner leaked from query %q", raw)
		}
	})
}
