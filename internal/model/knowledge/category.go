package knowledge

// Category keys recognised by the assistant.
const (
	Products = "products"
	Ordering = "ordering"
	Shipping = "shipping"
	Support  = "support"
	General  = "general"
)

// QA is one canned question and its answer.
type QA struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Category groups the canned questions of one support topic.
type Category struct {
	Key       string `json:"key" yaml:"key"`
	Title     string `json:"title" yaml:"title"`
	Icon      string `json:"icon" yaml:"icon"`
	Questions []QA   `json:"questions" yaml:"questions"`
}

// Labels returns the question labels in display order.
func (c Category) Labels() []string {
	labels := make([]string, len(c.Questions))
	for i, qa := range c.Questions {
		labels[i] = qa.Question
	}
	return labels
}
