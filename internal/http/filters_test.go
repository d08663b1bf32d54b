package httpserver

import (
	"net/url"
	"testing"

	"github.com/ratehub/ratehub/internal/domain"
)

func TestBuildStoreFilters(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantName    string
		wantAddress string
		wantSort    string
		wantOrder   string
	}{
		{"empty query", "", "", "", "", ""},
		{"name only", "name=corner", "corner", "", "", ""},
		{"trims whitespace", "name=+corner+&address=+main+", "corner", "main", "", ""},
		{"sort passthrough", "sortBy=ratings&order=DESC", "", "", "ratings", "DESC"},
		{"bogus sort still passes through", "sortBy=bogus&order=sideways", "", "", "bogus", "sideways"},
		{"blank values ignored", "name=++&address=", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			filters := buildStoreFilters(query)

			gotName := ""
			if filters.Name != nil {
				gotName = *filters.Name
			}
			gotAddress := ""
			if filters.Address != nil {
				gotAddress = *filters.Address
			}
			if gotName != tt.wantName {
				t.Fatalf("Name = %q, want %q", gotName, tt.wantName)
			}
			if gotAddress != tt.wantAddress {
				t.Fatalf("Address = %q, want %q", gotAddress, tt.wantAddress)
			}
			if filters.SortField != tt.wantSort {
				t.Fatalf("SortField = %q, want %q", filters.SortField, tt.wantSort)
			}
			if filters.SortOrder != tt.wantOrder {
				t.Fatalf("SortOrder = %q, want %q", filters.SortOrder, tt.wantOrder)
			}
			if filters.IncludeOwner {
				t.Fatalf("IncludeOwner must never come from the query string")
			}
		})
	}
}

func TestBuildUserFilters(t *testing.T) {
	t.Run("valid role filter", func(t *testing.T) {
		query, _ := url.ParseQuery("role=STORE_OWNER&name=jo&email=jo@&sortBy=email&order=DESC")
		filters, err := buildUserFilters(query)
		if err != nil {
			t.Fatalf("buildUserFilters: %v", err)
		}
		if filters.Role == nil || *filters.Role != domain.RoleStoreOwner {
			t.Fatalf("Role = %v, want STORE_OWNER", filters.Role)
		}
		if filters.NamePrefix == nil || *filters.NamePrefix != "jo" {
			t.Fatalf("NamePrefix = %v, want jo", filters.NamePrefix)
		}
		if filters.EmailPrefix == nil || *filters.EmailPrefix != "jo@" {
			t.Fatalf("EmailPrefix = %v, want jo@", filters.EmailPrefix)
		}
		if filters.SortField != "email" || filters.SortOrder != "DESC" {
			t.Fatalf("sort = %s/%s, want email/DESC", filters.SortField, filters.SortOrder)
		}
	})

	t.Run("unknown role is an error", func(t *testing.T) {
		query, _ := url.ParseQuery("role=MODERATOR")
		if _, err := buildUserFilters(query); err == nil {
			t.Fatalf("expected an error for an unknown role")
		}
	})

	t.Run("empty query", func(t *testing.T) {
		filters, err := buildUserFilters(url.Values{})
		if err != nil {
			t.Fatalf("buildUserFilters: %v", err)
		}
		if filters.Role != nil || filters.NamePrefix != nil || filters.EmailPrefix != nil {
			t.Fatalf("expected all filters unset, got %+v", filters)
		}
	})
}
