package knowledge

// Store exposes read-only access to the support knowledge base.
type Store interface {
	List() []Category
	FindByKey(key string) (Category, bool)
	FindAnswer(question string) (string, bool)
}

// MemoryStore implements Store with an in-memory slice. It is never mutated
// after construction and is safe to share between sessions.
type MemoryStore struct {
	items []Category
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied categories.
func NewMemoryStore(items []Category) *MemoryStore {
	copied := make([]Category, len(items))
	for i, item := range items {
		item.Questions = append([]QA(nil), item.Questions...)
		copied[i] = item
	}
	return &MemoryStore{items: copied}
}

// List returns the categories in display order.
func (s *MemoryStore) List() []Category {
	out := make([]Category, len(s.items))
	for i, item := range s.items {
		item.Questions = append([]QA(nil), item.Questions...)
		out[i] = item
	}
	return out
}

// FindByKey looks up a category by key.
func (s *MemoryStore) FindByKey(key string) (Category, bool) {
	for _, item := range s.items {
		if item.Key == key {
			item.Questions = append([]QA(nil), item.Questions...)
			return item, true
		}
	}
	return Category{}, false
}

// FindAnswer returns the answer of the first question, across all categories
// in order, whose label equals question exactly.
func (s *MemoryStore) FindAnswer(question string) (string, bool) {
	for _, item := range s.items {
		for _, qa := range item.Questions {
			if qa.Question == question {
				return qa.Answer, true
			}
		}
	}
	return "", false
}
