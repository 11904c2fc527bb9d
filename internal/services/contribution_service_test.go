package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/plfelter/verbatims-utn-vdl/internal/models"
	"gorm.io/gorm"
)

func seedContribution(t *testing.T, db *gorm.DB, id uint, contributor, body string) {
	t.Helper()
	c := models.Contribution{
		ID:          id,
		Contributor: contributor,
		Body:        body,
		Time:        time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed contribution %d: %v", id, err)
	}
}

func resultIDs(r *SearchResult) []uint {
	ids := make([]uint, len(r.Items))
	for i, item := range r.Items {
		ids[i] = item.ID
	}
	return ids
}

func TestSearchAndOfOrSemantics(t *testing.T) {
	db := openTestDB(t)
	svc := NewContributionService(db, NewAnonymizer(false))

	seedContribution(t, db, 1, "Alice", "apple pie")
	seedContribution(t, db, 2, "Bob", "apple tart")
	seedContribution(t, db, 3, "Carol", "banana pie")

	cases := []struct {
		query string
		want  []uint
	}{
		{"apple pie", []uint{1}},
		{"pie", []uint{1, 3}},
		{"apple", []uint{1, 2}},
		{"", []uint{1, 2, 3}},
	}

	for _, tc := range cases {
		result, err := svc.Search(tc.query, 1)
		if err != nil {
			t.Fatalf("Search(%q): %v", tc.query, err)
		}
		got := resultIDs(result)
		if len(got) != len(tc.want) {
			t.Fatalf("Search(%q) returned ids %v, want %v", tc.query, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("Search(%q) returned ids %v, want %v", tc.query, got, tc.want)
				break
			}
		}
		if result.Total != int64(len(tc.want)) {
			t.Errorf("Search(%q) total = %d, want %d", tc.query, result.Total, len(tc.want))
		}
	}
}

// A record holding each keyword in some field, but never all of them,
// must not match.
func TestSearchEveryKeywordMustMatchSomewhere(t *testing.T) {
	db := openTestDB(t)
	svc := NewContributionService(db, NewAnonymizer(false))

	// "apple" only in contributor of 1, "pie" only in body of 2.
	seedContribution(t, db, 1, "apple grower", "something else")
	seedContribution(t, db, 2, "someone", "a pie recipe")
	// 3 satisfies both keywords across different fields.
	seedContribution(t, db, 3, "apple grower", "a pie recipe")

	result, err := svc.Search("apple pie", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	got := resultIDs(result)
	if len(got) != 1 || got[0] != 3 {
		t.Fatalf("Search returned ids %v, want [3]", got)
	}
}

func TestSearchMatchesAnonymizedNameNotRawName(t *testing.T) {
	db := openTestDB(t)
	svc := NewContributionService(db, NewAnonymizer(true))

	seedContribution(t, db, 1, "Jean Dupont", "premier corps")
	seedContribution(t, db, 2, "Anonyme", "second corps")

	// Searching the displayed label finds the anonymized row.
	result, err := svc.Search("anonymisé", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := resultIDs(result); len(got) != 1 || got[0] != 1 {
		t.Fatalf("Search(anonymisé) returned ids %v, want [1]", got)
	}

	// The raw name is no longer reachable once anonymized.
	result, err = svc.Search("dupont", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Total != 0 {
		t.Fatalf("Search(dupont) total = %d, want 0", result.Total)
	}

	// The sentinel keeps its own name and stays searchable by it.
	result, err = svc.Search("anonyme", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := resultIDs(result); len(got) != 1 || got[0] != 2 {
		t.Fatalf("Search(anonyme) returned ids %v, want [2]", got)
	}
}

func TestSearchMatchesIDAndFormattedTime(t *testing.T) {
	db := openTestDB(t)
	svc := NewContributionService(db, NewAnonymizer(false))

	seedContribution(t, db, 42, "Alice", "rien de notable")
	c := models.Contribution{
		ID:          7,
		Contributor: "Bob",
		Body:        "autre chose",
		Time:        time.Date(2021, 12, 25, 9, 30, 0, 0, time.UTC),
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed contribution: %v", err)
	}

	result, err := svc.Search("42", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := resultIDs(result); len(got) != 1 || got[0] != 42 {
		t.Fatalf("Search(42) returned ids %v, want [42]", got)
	}

	result, err = svc.Search("25/12/2021", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := resultIDs(result); len(got) != 1 || got[0] != 7 {
		t.Fatalf("Search(25/12/2021) returned ids %v, want [7]", got)
	}
}

func TestSearchEscapesLikeWildcards(t *testing.T) {
	db := openTestDB(t)
	svc := NewContributionService(db, NewAnonymizer(false))

	seedContribution(t, db, 1, "Alice", "une hausse de 100% du budget")
	seedContribution(t, db, 2, "Bob", "un texte quelconque")

	result, err := svc.Search("100%", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := resultIDs(result); len(got) != 1 || got[0] != 1 {
		t.Fatalf("Search(100%%) returned ids %v, want [1]", got)
	}
}

func TestSearchPaginationBoundaries(t *testing.T) {
	for _, n := range []int{PerPage, PerPage + 1} {
		t.Run(fmt.Sprintf("%d records", n), func(t *testing.T) {
			db := openTestDB(t)
			svc := NewContributionService(db, NewAnonymizer(false))

			for i := 1; i <= n; i++ {
				seedContribution(t, db, uint(i), "Alice", "velo en ville")
			}

			page1, err := svc.Search("velo", 1)
			if err != nil {
				t.Fatalf("Search page 1: %v", err)
			}
			if len(page1.Items) != PerPage {
				t.Fatalf("page 1 returned %d items, want %d", len(page1.Items), PerPage)
			}
			wantMore := n > PerPage
			if page1.HasMore != wantMore {
				t.Errorf("page 1 HasMore = %v, want %v", page1.HasMore, wantMore)
			}
			if page1.Total != int64(n) {
				t.Errorf("page 1 Total = %d, want %d", page1.Total, n)
			}

			page2, err := svc.Search("velo", 2)
			if err != nil {
				t.Fatalf("Search page 2: %v", err)
			}
			if len(page2.Items) != n-PerPage {
				t.Errorf("page 2 returned %d items, want %d", len(page2.Items), n-PerPage)
			}
			if page2.HasMore {
				t.Errorf("page 2 HasMore = true, want false")
			}
			// The total reflects the filtered set whatever page is asked.
			if page2.Total != page1.Total {
				t.Errorf("page 2 Total = %d, differs from page 1 Total %d", page2.Total, page1.Total)
			}
		})
	}
}

func TestSearchOrdersByIDAscending(t *testing.T) {
	db := openTestDB(t)
	svc := NewContributionService(db, NewAnonymizer(false))

	// Insert out of order; ids come from the dataset, not insertion.
	seedContribution(t, db, 9, "Alice", "velo")
	seedContribution(t, db, 2, "Bob", "velo")
	seedContribution(t, db, 5, "Carol", "velo")

	result, err := svc.Search("velo", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	got := resultIDs(result)
	want := []uint{2, 5, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Search order = %v, want %v", got, want)
		}
	}
}
