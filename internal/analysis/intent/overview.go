package intent

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/farmstead/backend/internal/model/knowledge"
)

// Overview lists a category's questions as a numbered menu and offers them
// as selectable options.
func Overview(category knowledge.Category) Reply {
	labels := category.Labels()

	var b strings.Builder
	fmt.Fprintf(&b, "Here are common questions about %s:\n", strings.ToLower(category.Title))
	for i, label := range labels {
		fmt.Fprintf(&b, "%d. %s\n", i+1, label)
	}
	b.WriteString("\nReply with a number to pick a question.")

	return Reply{Text: b.String(), Options: labels}
}
