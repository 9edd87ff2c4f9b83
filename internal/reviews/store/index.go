package store

import (
	"slices"

	"chocolate/internal/reviews/models"
	id "chocolate/pkg/domain"
)

// Index is the review index: entries sorted by (owner, project_id), at most
// one per key. It only answers membership and ordering questions; reviews are
// loaded by the ReviewID each entry carries.
type Index []models.IndexEntry

func compareEntryKey(e models.IndexEntry, key models.ReviewKey) int {
	return e.Key.Compare(key)
}

// Find binary-searches for key. When absent, pos is where it would be inserted.
func (ix Index) Find(key models.ReviewKey) (pos int, found bool) {
	return slices.BinarySearchFunc(ix, key, compareEntryKey)
}

// Lookup returns the entry for key.
func (ix Index) Lookup(key models.ReviewKey) (models.IndexEntry, bool) {
	pos, found := ix.Find(key)
	if !found {
		return models.IndexEntry{}, false
	}
	return ix[pos], true
}

// Insert places entry at pos. pos must come from a Find that reported absent.
func (ix Index) Insert(pos int, entry models.IndexEntry) Index {
	return slices.Insert(ix, pos, entry)
}

// ForProject returns the entries for one project, in index order.
func (ix Index) ForProject(projectID id.ProjectID) []models.IndexEntry {
	var out []models.IndexEntry
	for _, e := range ix {
		if e.Key.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out
}

// ForOwner returns the contiguous run of entries written by owner.
func (ix Index) ForOwner(owner id.AccountID) []models.IndexEntry {
	start, _ := ix.Find(models.ReviewKey{Owner: owner, ProjectID: 0})
	end := start
	for end < len(ix) && ix[end].Key.Owner == owner {
		end++
	}
	return slices.Clone(ix[start:end])
}
